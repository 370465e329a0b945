// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// Heading colours title, subtitle and heading tags.
	Heading lipgloss.Color

	// Figure colours image and caption tags.
	Figure lipgloss.Color

	// Furniture colours header and footer tags.
	Furniture lipgloss.Color

	// Form colours form label and checkbox tags.
	Form lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"), // Blue
		Secondary:  lipgloss.Color("#06B6D4"), // Cyan
		Foreground: lipgloss.Color("#CDD6F4"),
		Muted:      lipgloss.Color("#6C7086"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
		Border:     lipgloss.Color("#45475A"),
		Heading:    lipgloss.Color("#CBA6F7"), // Mauve
		Figure:     lipgloss.Color("#FAB387"), // Peach
		Furniture:  lipgloss.Color("#9399B2"),
		Form:       lipgloss.Color("#94E2D5"), // Teal
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style

	// Label is used for field names in key/value listings.
	Label lipgloss.Style

	// Draft highlights an uncommitted edit.
	Draft lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		Label: lipgloss.NewStyle().
			Bold(true).
			Width(16).
			Foreground(theme.Secondary),

		Draft: lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Foreground(theme.Warning),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// TagColour returns the colour a tag is rendered in.
func (s *Styles) TagColour(tag string) lipgloss.Color {
	switch tag {
	case domain.TagTitle, domain.TagSubtitle,
		domain.TagH1, domain.TagH2, domain.TagH3, domain.TagH4, domain.TagH5, domain.TagH6:
		return s.theme.Heading
	case domain.TagImage, domain.TagImageCaption:
		return s.theme.Figure
	case domain.TagHeader, domain.TagFooter:
		return s.theme.Furniture
	case domain.TagFormLabel, domain.TagCheckbox:
		return s.theme.Form
	case domain.TagParagraph:
		return s.theme.Foreground
	default:
		return s.theme.Warning
	}
}

// Tag renders a tag name in its category colour.
func (s *Styles) Tag(tag string) string {
	return lipgloss.NewStyle().Foreground(s.TagColour(tag)).Render(tag)
}
