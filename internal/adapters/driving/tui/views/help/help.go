// Package help renders the keybinding reference.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
)

// View shows every keybinding grouped by purpose.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model
}

// NewView creates a new help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	h := help.New()
	h.ShowAll = true
	h.Styles.FullKey = s.Subtitle
	h.Styles.FullDesc = s.Normal
	h.Styles.FullSeparator = s.Muted

	return &View{styles: s, keymap: km, help: h}
}

// Update returns to the menu on esc.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	}
	return v, nil
}

// View renders the help text.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	b.WriteString(v.help.FullHelpView(v.keymap.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Esc] Back to menu"))
	return b.String()
}

// SetDimensions sets the view width.
func (v *View) SetDimensions(width, _ int) {
	v.help.Width = width
}
