package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	assert.NotEmpty(t, string(theme.Primary))
	assert.NotEmpty(t, string(theme.Heading))
	assert.NotEmpty(t, string(theme.Figure))
	assert.NotEmpty(t, string(theme.Furniture))
	assert.NotEmpty(t, string(theme.Form))
}

func TestNewStyles_NilThemeUsesDefault(t *testing.T) {
	s := NewStyles(nil)

	require.NotNil(t, s.Theme())
	assert.Equal(t, DefaultTheme().Primary, s.Theme().Primary)
}

func TestStyles_TagColour(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	tests := []struct {
		tag  string
		want lipgloss.Color
	}{
		{domain.TagTitle, theme.Heading},
		{domain.TagH3, theme.Heading},
		{domain.TagImage, theme.Figure},
		{domain.TagImageCaption, theme.Figure},
		{domain.TagFooter, theme.Furniture},
		{domain.TagCheckbox, theme.Form},
		{domain.TagParagraph, theme.Foreground},
		{"table", theme.Warning},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, s.TagColour(tt.tag))
		})
	}
}

func TestStyles_Tag(t *testing.T) {
	s := DefaultStyles()

	assert.Contains(t, s.Tag(domain.TagH1), "h1")
}
