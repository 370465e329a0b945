package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllTags_Vocabulary(t *testing.T) {
	assert.Equal(t, []string{
		"title", "subtitle", "h1", "h2", "h3", "h4", "h5", "h6",
		"paragraph", "image_caption", "image", "header", "footer",
		"form_label", "checkbox",
	}, AllTags)
}

func TestIsValidTag(t *testing.T) {
	for _, tag := range AllTags {
		assert.True(t, IsValidTag(tag), tag)
	}
	assert.False(t, IsValidTag(""))
	assert.False(t, IsValidTag("H1"))
	assert.False(t, IsValidTag("table"))
}

func TestTagIndex(t *testing.T) {
	assert.Equal(t, 0, TagIndex(TagTitle))
	assert.Equal(t, 14, TagIndex(TagCheckbox))
	assert.Equal(t, -1, TagIndex("list"))
}

func TestRoleFor(t *testing.T) {
	tests := map[string]string{
		TagTitle:        "Title",
		TagSubtitle:     "H1",
		TagH3:           "H3",
		TagParagraph:    "P",
		TagImage:        "Figure",
		TagImageCaption: "Caption",
		TagFormLabel:    "Lbl",
		TagCheckbox:     "Form",
		TagHeader:       "P",
		"unknown":       "P",
	}
	for tag, role := range tests {
		assert.Equal(t, role, RoleFor(tag), tag)
	}
}
