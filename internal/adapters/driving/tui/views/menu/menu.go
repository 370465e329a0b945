// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
)

// Item represents a single menu option.
type Item struct {
	Label string
	View  messages.ViewType
	Quit  bool // If true, selecting this item quits the app

	// NeedsSession hides the item until a document has been tagged.
	NeedsSession bool
}

// View represents the main menu view.
type View struct {
	styles     *styles.Styles
	items      []Item
	selected   int
	hasSession bool
	width      int
	height     int
	ready      bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		items: []Item{
			{Label: "Upload PDF", View: messages.ViewUpload},
			{Label: "Review Tags", View: messages.ViewReview, NeedsSession: true},
			{Label: "Edit Metadata", View: messages.ViewMetadata, NeedsSession: true},
			{Label: "Generate PDF", View: messages.ViewGenerate, NeedsSession: true},
			{Label: "Settings", View: messages.ViewSettings},
			{Label: "Help", View: messages.ViewHelp},
			{Label: "Quit", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		items := v.visible()
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(items)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			item := items[v.selected]
			if item.Quit {
				return v, tea.Quit
			}
			if item.View == messages.ViewGenerate {
				return v, func() tea.Msg { return messages.GenerationRequested{} }
			}
			return v, func() tea.Msg {
				return messages.ViewChanged{View: item.View}
			}

		case "q":
			return v, tea.Quit
		}
	}

	return v, nil
}

func (v *View) visible() []Item {
	items := make([]Item, 0, len(v.items))
	for _, item := range v.items {
		if item.NeedsSession && !v.hasSession {
			continue
		}
		items = append(items, item)
	}
	return items
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Tagger"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("PDF Accessibility Tagging"))
	b.WriteString("\n\n")

	for i, item := range v.visible() {
		if i == v.selected {
			b.WriteString("> " + v.styles.Subtitle.Render(item.Label))
		} else {
			b.WriteString("  " + v.styles.Normal.Render(item.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))

	return b.String()
}

// SetSession shows or hides the items that need a tagged document.
func (v *View) SetSession(has bool) {
	v.hasSession = has
	if v.selected >= len(v.visible()) {
		v.selected = 0
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}
