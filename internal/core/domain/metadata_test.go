package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataField_IsEditable(t *testing.T) {
	for _, f := range EditableFields {
		assert.True(t, f.IsEditable(), f)
	}
	assert.False(t, FieldFilename.IsEditable())
	assert.False(t, FieldCreationDate.IsEditable())
	assert.False(t, FieldModDate.IsEditable())
	assert.False(t, MetadataField("colour").IsEditable())
}

func TestMetadataField_Label(t *testing.T) {
	assert.Equal(t, "Title", FieldTitle.Label())
	assert.Equal(t, "Creation Date", FieldCreationDate.Label())
	assert.Equal(t, "Mod Date", FieldModDate.Label())
}

func TestMetadata_GetWith(t *testing.T) {
	fields := []MetadataField{
		FieldFilename, FieldTitle, FieldAuthor, FieldSubject, FieldKeywords,
		FieldCreator, FieldProducer, FieldCreationDate, FieldModDate,
	}

	var m Metadata
	for _, f := range fields {
		updated := m.With(f, "value-"+string(f))
		assert.Equal(t, "value-"+string(f), updated.Get(f))
		assert.Equal(t, "", m.Get(f), "With must not modify the receiver")
		m = updated
	}

	assert.Equal(t, m, m.With("unknown", "x"))
	assert.Equal(t, "", m.Get("unknown"))
}

func TestMetadata_DisplayValue(t *testing.T) {
	m := Metadata{
		Title:        "  Report  ",
		Author:       "   ",
		CreationDate: "D:20250519045555-07'00'",
		ModDate:      "",
	}

	assert.Equal(t, "Report", m.DisplayValue(FieldTitle))
	assert.Equal(t, "None", m.DisplayValue(FieldAuthor))
	assert.Equal(t, "May 19, 2025, 04:55:55 AM", m.DisplayValue(FieldCreationDate))
	assert.Equal(t, "None", m.DisplayValue(FieldModDate))
}
