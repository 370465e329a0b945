// Package upload provides the view that selects a PDF for tagging.
package upload

import (
	"errors"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// View prompts for a file path and shows upload progress.
type View struct {
	styles  *styles.Styles
	path    *input.Field
	loading bool
	current string
	err     error
	width   int
	height  int
}

// NewView creates a new upload view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		path:   input.NewField(s, "PDF file", "path/to/document.pdf"),
		width:  80,
		height: 24,
	}
}

// Init focuses the path input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.path.Focus(), v.path.Init())
}

// Update handles messages for the upload view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case "enter":
			path := strings.TrimSpace(v.path.Value())
			if path == "" {
				v.err = domain.ErrInvalidInput
				return v, nil
			}
			if !strings.EqualFold(filepath.Ext(path), ".pdf") {
				v.err = domain.ErrNotPDF
				return v, nil
			}
			v.err = nil
			return v, func() tea.Msg { return messages.UploadRequested{Path: path} }
		}
	}

	var cmd tea.Cmd
	v.path, cmd = v.path.Update(msg)
	return v, cmd
}

// View renders the upload prompt.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Upload PDF"))
	b.WriteString("\n\n")
	b.WriteString(v.path.View())
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Tagging " + v.current + "..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[Enter] Upload  [Esc] Back"))
	return b.String()
}

func errorText(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "Enter the path of a PDF file."
	case errors.Is(err, domain.ErrNotPDF):
		return "Only PDF files can be tagged."
	default:
		return "Upload failed: " + err.Error()
	}
}

// SetLoading marks an upload of path as in flight.
func (v *View) SetLoading(path string) {
	v.loading = true
	v.current = filepath.Base(path)
	v.err = nil
}

// SetError shows err and ends the loading state.
func (v *View) SetError(err error) {
	v.loading = false
	v.err = err
}

// Done ends the loading state after a successful upload.
func (v *View) Done() {
	v.loading = false
	v.err = nil
}

// Loading reports whether an upload is shown as in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the error on display.
func (v *View) Err() error {
	return v.err
}

// SetPath prefills the path input.
func (v *View) SetPath(path string) {
	v.path.SetValue(path)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.path.SetWidth(width)
}
