// Package metadata provides the document metadata view and editor.
package metadata

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

// View shows the snapshot metadata and edits the editable fields.
type View struct {
	styles *styles.Styles
	editor *services.MetadataEditor
	fields []*input.Field
	focus  int
	err    error
	width  int
	height int
}

// NewView creates a new metadata view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	fields := make([]*input.Field, len(domain.EditableFields))
	for i, f := range domain.EditableFields {
		fields[i] = input.NewField(s, f.Label(), "")
	}

	return &View{
		styles: s,
		editor: services.NewMetadataEditor(session),
		fields: fields,
		width:  80,
		height: 24,
	}
}

// Init resets the view to read-only display.
func (v *View) Init() tea.Cmd {
	v.cancel()
	v.err = nil
	return nil
}

// Update handles messages for the metadata view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if !v.editor.Editing() {
		switch keyMsg.String() {
		case "esc", "q":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewReview} }
		case "e", "enter":
			return v, v.begin()
		}
		return v, nil
	}

	switch keyMsg.String() {
	case "esc":
		v.cancel()
		return v, nil
	case "enter", "ctrl+s":
		return v, v.confirm()
	case "tab", "down":
		return v, v.move(1)
	case "shift+tab", "up":
		return v, v.move(-1)
	}

	var cmd tea.Cmd
	v.fields[v.focus], cmd = v.fields[v.focus].Update(keyMsg)
	return v, cmd
}

func (v *View) begin() tea.Cmd {
	if err := v.editor.Begin(); err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	draft := v.editor.Draft()
	for i, f := range domain.EditableFields {
		v.fields[i].SetValue(draft.Get(f))
		v.fields[i].Blur()
	}
	v.focus = 0
	return v.fields[0].Focus()
}

func (v *View) move(delta int) tea.Cmd {
	v.fields[v.focus].Blur()
	n := len(v.fields)
	v.focus = ((v.focus+delta)%n + n) % n
	return v.fields[v.focus].Focus()
}

func (v *View) confirm() tea.Cmd {
	for i, f := range domain.EditableFields {
		if err := v.editor.Set(f, v.fields[i].Value()); err != nil {
			v.err = err
			return nil
		}
	}
	if err := v.editor.Confirm(); err != nil {
		v.err = err
		return nil
	}
	v.cancel()
	return func() tea.Msg { return messages.SnapshotUpdated{} }
}

func (v *View) cancel() {
	v.editor.Cancel()
	for _, f := range v.fields {
		f.Blur()
		f.Reset()
	}
	v.focus = 0
}

// View renders the metadata table or the edit form.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Document Metadata"))
	b.WriteString("\n\n")

	if v.editor.Editing() {
		for _, f := range v.fields {
			b.WriteString(f.View())
			b.WriteString("\n")
		}
	} else {
		meta := v.editor.Draft()
		for _, f := range domain.AllFields {
			value := meta.DisplayValue(f)
			style := v.styles.Normal
			if value == domain.NoneValue {
				style = v.styles.Muted
			}
			b.WriteString(v.styles.Label.Render(f.Label()) + style.Render(value))
			b.WriteString("\n")
		}
	}

	if v.err != nil {
		b.WriteString("\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editor.Editing() {
		b.WriteString(v.styles.Help.Render("[Tab] Next field  [Enter] Save  [Esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[e] Edit  [Esc] Back"))
	}
	return b.String()
}

// Editing reports whether the edit form is open.
func (v *View) Editing() bool {
	return v.editor.Editing()
}

// Focused returns the index of the focused form field.
func (v *View) Focused() int {
	return v.focus
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	for _, f := range v.fields {
		f.SetWidth(width)
	}
}
