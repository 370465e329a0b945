// Package review provides the region review view, where each region's tag
// can be inspected and changed.
package review

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

// View lists the regions of the session snapshot.
type View struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	session driving.SessionService
	editor  *services.RegionTagEditor
	regions *list.RegionList

	details bool
	err     error
	width   int
	height  int
}

// NewView creates a new review view.
func NewView(s *styles.Styles, session driving.SessionService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:  s,
		keymap:  keymap.DefaultKeyMap(),
		session: session,
		editor:  services.NewRegionTagEditor(session),
		regions: list.NewRegionList(s),
		width:   80,
		height:  24,
	}
}

// Init loads the snapshot into the list.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads regions from the session, dropping any open draft.
func (v *View) Refresh() {
	v.editor.Cancel()
	v.regions.ClearDraft()
	v.err = nil

	snapshot, ok := v.session.Snapshot()
	if !ok {
		v.regions.SetRegions(nil)
		return
	}
	v.regions.SetRegions(snapshot.Structure)
}

// Update handles messages for the review view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	if v.editor.Editing() {
		return v.updateEditing(keyMsg)
	}

	key := keyMsg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(key, v.keymap.Select), keymap.Matches(key, v.keymap.Edit):
		v.begin()
		return v, nil
	case key == "d":
		v.details = !v.details
		return v, nil
	case keymap.Matches(key, v.keymap.Metadata):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMetadata} }
	case keymap.Matches(key, v.keymap.Generate):
		return v, func() tea.Msg { return messages.GenerationRequested{} }
	}

	v.regions, _ = v.regions.Update(keyMsg)
	return v, nil
}

func (v *View) begin() {
	if err := v.editor.Begin(v.regions.Selected()); err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.regions.SetDraft(v.editor.Index(), v.editor.Draft())
}

func (v *View) updateEditing(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		v.editor.Cancel()
		v.regions.ClearDraft()
		return v, nil
	case keymap.Matches(key, v.keymap.NextTag), keymap.Matches(key, v.keymap.Down):
		v.editor.Next()
	case keymap.Matches(key, v.keymap.PrevTag), keymap.Matches(key, v.keymap.Up):
		v.editor.Prev()
	case keymap.Matches(key, v.keymap.Select):
		if err := v.editor.Confirm(); err != nil {
			v.err = err
			return v, nil
		}
		selected := v.regions.Selected()
		v.Refresh()
		v.regions.SetSelected(selected)
		return v, func() tea.Msg { return messages.SnapshotUpdated{} }
	default:
		return v, nil
	}
	v.regions.SetDraft(v.editor.Index(), v.editor.Draft())
	return v, nil
}

// View renders the region list and, if toggled, the selected region's details.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Review Tags"))
	b.WriteString("\n\n")
	b.WriteString(v.regions.View())

	if v.details {
		if region := v.regions.SelectedRegion(); region != nil {
			b.WriteString("\n\n")
			b.WriteString(v.renderDetails(region))
		}
	}

	if v.err != nil {
		b.WriteString("\n\n")
		b.WriteString(v.styles.Error.Render(v.err.Error()))
	}

	b.WriteString("\n\n")
	if v.editor.Editing() {
		b.WriteString(v.styles.Help.Render("[←/→] Change tag  [Enter] Confirm  [Esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[Enter] Edit tag  [d] Details  [m] Metadata  [g] Generate  [Esc] Back"))
	}
	return b.String()
}

func (v *View) renderDetails(region *domain.Region) string {
	lines := []string{
		v.styles.Label.Render("Page") + fmt.Sprintf("%d", region.Page),
		v.styles.Label.Render("Type") + region.Type,
		v.styles.Label.Render("Tag") + v.styles.Tag(region.Tag) + " (" + domain.RoleFor(region.Tag) + ")",
		v.styles.Label.Render("BBox") + FormatBBox(region.BBox),
	}
	if region.ImageWidth != nil && region.ImageHeight != nil {
		lines = append(lines, v.styles.Label.Render("Image")+
			fmt.Sprintf("%dx%d", *region.ImageWidth, *region.ImageHeight))
	}
	for i := range region.Spans {
		span := &region.Spans[i]
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf(
			"  %q %s %.1fpt %s %s",
			span.Text, span.Font, span.Size, FormatColour(span.Color), FormatBBox(span.BBox),
		)))
	}
	return v.styles.Border.Width(v.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// FormatBBox renders a bounding box with one decimal per coordinate.
func FormatBBox(b [4]float64) string {
	return fmt.Sprintf("[%.1f, %.1f, %.1f, %.1f]", b[0], b[1], b[2], b[3])
}

// FormatColour renders a 0..1 RGB triple as rgb(r,g,b).
func FormatColour(c [3]float64) string {
	channel := func(f float64) int {
		switch {
		case f <= 0:
			return 0
		case f >= 1:
			return 255
		}
		return int(f*255 + 0.5)
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", channel(c[0]), channel(c[1]), channel(c[2]))
}

// Editing reports whether a tag draft is open.
func (v *View) Editing() bool {
	return v.editor.Editing()
}

// Selected returns the selected region index.
func (v *View) Selected() int {
	return v.regions.Selected()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.regions.SetDimensions(width, height-6)
}
