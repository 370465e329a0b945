package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() TagResponse {
	return TagResponse{
		Pages: []PageInfo{{Page: 0, Width: 612, Height: 792}},
		Structure: []Region{
			{
				Page:    0,
				Type:    "text",
				Content: "Introduction to the report",
				BBox:    [4]float64{72, 90, 540, 130},
				Tag:     TagParagraph,
				Spans: []Span{
					{Text: "Introduction", Font: "Helvetica", Size: 12, BBox: [4]float64{72, 90, 200, 104}, Color: [3]float64{0, 0, 0}},
				},
			},
			{Page: 0, Type: "text", Content: "Annual Report", BBox: [4]float64{72, 40, 540, 70}, Tag: TagTitle},
			{Page: 0, Type: "image", Content: "<image data>", BBox: [4]float64{72, 200, 300, 400}, Tag: TagImage},
		},
		Metadata: Metadata{
			Filename:     "report.pdf",
			Title:        "Report",
			Author:       "Jane",
			CreationDate: "D:20250519045555-07'00'",
		},
	}
}

func TestTagResponse_ReplaceRegionTag(t *testing.T) {
	original := testSnapshot()

	updated := original.ReplaceRegionTag(1, TagH1)

	assert.Equal(t, []string{TagParagraph, TagH1, TagImage}, updated.Tags())
	assert.Equal(t, []string{TagParagraph, TagTitle, TagImage}, original.Tags(), "receiver must not change")
	assert.Equal(t, original.Structure[1].BBox, updated.Structure[1].BBox)
	assert.Equal(t, original.Structure[1].Content, updated.Structure[1].Content)
	assert.Equal(t, original.Metadata, updated.Metadata)
}

func TestTagResponse_ReplaceRegionTag_IndexStability(t *testing.T) {
	original := testSnapshot()
	edits := []struct {
		index int
		tag   string
	}{
		{0, TagH2},
		{2, TagImageCaption},
		{1, TagSubtitle},
		{0, TagParagraph},
		{1, TagH1},
	}

	current := original
	for _, e := range edits {
		current = current.ReplaceRegionTag(e.index, e.tag)
	}

	require.Len(t, current.Structure, len(original.Structure))
	for i := range original.Structure {
		want := original.Structure[i]
		got := current.Structure[i]
		want.Tag = ""
		got.Tag = ""
		assert.Equal(t, want, got, "region %d changed beyond its tag", i)
	}
	assert.Equal(t, []string{TagParagraph, TagH1, TagImageCaption}, current.Tags())
}

func TestTagResponse_ReplaceMetadata(t *testing.T) {
	original := testSnapshot()
	meta := Metadata{Filename: "other.pdf", Title: "New Title"}

	updated := original.ReplaceMetadata(meta)

	assert.Equal(t, meta, updated.Metadata)
	assert.Equal(t, original.Structure, updated.Structure)
	assert.Equal(t, "Report", original.Metadata.Title)
}

func TestTagResponse_InRange(t *testing.T) {
	s := testSnapshot()

	assert.True(t, s.InRange(0))
	assert.True(t, s.InRange(2))
	assert.False(t, s.InRange(3))
	assert.False(t, s.InRange(-1))
	assert.False(t, TagResponse{}.InRange(0))
}
