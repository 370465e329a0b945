// Package generate provides the generation dialog: it shows the progress of
// a render request and what can be done with the resulting PDF.
package generate

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// View renders one GenerationState.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	state  domain.GenerationState
	url    string

	savedPath string
	saveErr   error
	openErr   error

	width  int
	height int
}

// NewView creates a new generation dialog.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		keymap: keymap.DefaultKeyMap(),
		width:  80,
		height: 24,
	}
}

// Update handles messages for the generation dialog.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	key := keyMsg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.GenerationClosed{} }
	case keymap.Matches(key, v.keymap.Retry):
		if v.state.Status == domain.GenerationRequesting {
			return v, nil
		}
		return v, func() tea.Msg { return messages.GenerationRequested{} }
	case keymap.Matches(key, v.keymap.Open):
		if v.state.Status != domain.GenerationReady {
			return v, nil
		}
		return v, func() tea.Msg { return messages.ArtifactOpenRequested{} }
	case keymap.Matches(key, v.keymap.Save):
		if v.state.Status != domain.GenerationReady {
			return v, nil
		}
		return v, func() tea.Msg { return messages.ArtifactSaveRequested{} }
	}
	return v, nil
}

// View renders the dialog.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Generate PDF"))
	b.WriteString("\n\n")

	switch v.state.Status {
	case domain.GenerationIdle:
		b.WriteString(v.styles.Muted.Render("No generation requested."))
	case domain.GenerationRequesting:
		b.WriteString(v.styles.Muted.Render("Generating tagged PDF..."))
	case domain.GenerationFailed:
		b.WriteString(v.styles.Error.Render(v.state.Message))
	case domain.GenerationReady:
		b.WriteString(v.renderArtifact())
	}

	b.WriteString("\n\n")
	switch v.state.Status {
	case domain.GenerationReady:
		b.WriteString(v.styles.Help.Render("[o] Open  [s] Save  [r] Regenerate  [Esc] Close"))
	case domain.GenerationFailed:
		b.WriteString(v.styles.Help.Render("[r] Retry  [Esc] Close"))
	default:
		b.WriteString(v.styles.Help.Render("[Esc] Close"))
	}
	return b.String()
}

func (v *View) renderArtifact() string {
	a := v.state.Artifact
	lines := []string{v.styles.Success.Render("Tagged PDF ready.")}
	if a != nil {
		lines = append(lines, v.styles.Label.Render("Size")+formatSize(a.Size))
		if a.PageCount > 0 {
			lines = append(lines, v.styles.Label.Render("Pages")+fmt.Sprintf("%d", a.PageCount))
		}
	}
	if v.url != "" {
		lines = append(lines, v.styles.Label.Render("Preview")+v.url)
	}
	if v.savedPath != "" {
		lines = append(lines, v.styles.Success.Render("Saved to "+v.savedPath))
	}
	if v.saveErr != nil {
		lines = append(lines, v.styles.Error.Render("Save failed: "+v.saveErr.Error()))
	}
	if v.openErr != nil {
		lines = append(lines, v.styles.Error.Render("Could not open browser: "+v.openErr.Error()))
	}
	return strings.Join(lines, "\n")
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SetState shows state. url is where the artifact can be previewed, if anywhere.
func (v *View) SetState(state domain.GenerationState, url string) {
	v.state = state
	v.url = url
	v.savedPath = ""
	v.saveErr = nil
	v.openErr = nil
}

// State returns the state on display.
func (v *View) State() domain.GenerationState {
	return v.state
}

// SetSaved records the outcome of a save.
func (v *View) SetSaved(path string, err error) {
	v.savedPath = ""
	v.saveErr = err
	if err == nil {
		v.savedPath = path
	}
}

// SetOpenError records a failure to open the preview.
func (v *View) SetOpenError(err error) {
	v.openErr = err
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
