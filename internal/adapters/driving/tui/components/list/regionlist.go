// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// RegionList displays the regions of a snapshot in a navigable list.
type RegionList struct {
	regions  []domain.Region
	selected int
	styles   *styles.Styles
	width    int
	height   int

	// draftIndex is the region whose tag is being edited, or -1.
	draftIndex int
	draftTag   string
}

// NewRegionList creates a new region list component.
func NewRegionList(s *styles.Styles) *RegionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RegionList{
		styles:     s,
		width:      80,
		height:     10,
		draftIndex: -1,
	}
}

// Update handles list navigation messages.
func (r *RegionList) Update(msg tea.Msg) (*RegionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.selected = 0
		case "end", "G":
			if len(r.regions) > 0 {
				r.selected = len(r.regions) - 1
			}
		}
	}
	return r, nil
}

// View renders the visible window of regions.
func (r *RegionList) View() string {
	if len(r.regions) == 0 {
		return r.styles.Muted.Render("No regions")
	}

	lines := make([]string, 0, r.height)
	lines = append(lines,
		r.styles.Subtitle.Render(fmt.Sprintf("Regions (%d)", len(r.regions))),
		"",
	)

	start, end := r.window()
	for i := start; i < end; i++ {
		lines = append(lines, r.renderRegion(i))
	}

	return strings.Join(lines, "\n")
}

func (r *RegionList) window() (int, int) {
	visible := r.height - 3
	if visible < 1 {
		visible = 1
	}

	start := 0
	if r.selected >= visible {
		start = r.selected - visible + 1
	}
	end := start + visible
	if end > len(r.regions) {
		end = len(r.regions)
	}
	return start, end
}

func (r *RegionList) renderRegion(index int) string {
	region := &r.regions[index]

	indicator := "  "
	if index == r.selected {
		indicator = "> "
	}

	tagName := region.Tag
	tag := r.styles.Tag(tagName)
	if index == r.draftIndex {
		tagName = r.draftTag
		tag = r.styles.Draft.Render(tagName)
	}
	tag += r.styles.Muted.Render(" /" + domain.RoleFor(tagName))

	content := strings.Join(strings.Fields(region.Content), " ")
	if content == "" && region.XRef != nil {
		content = fmt.Sprintf("[image xref %d]", *region.XRef)
	}
	maxContent := r.width - 40
	if maxContent < 10 {
		maxContent = 10
	}
	if len([]rune(content)) > maxContent {
		content = string([]rune(content)[:maxContent-3]) + "..."
	}

	prefix := fmt.Sprintf("%s%3d  p%-3d %-14s ", indicator, index, region.Page, region.Type)
	if index == r.selected {
		return r.styles.Selected.Render(prefix) + " " + tag + "  " + r.styles.Normal.Render(content)
	}
	return r.styles.Muted.Render(prefix) + " " + tag + "  " + r.styles.Normal.Render(content)
}

// SetRegions replaces the regions. The selection is kept when still in range.
func (r *RegionList) SetRegions(regions []domain.Region) {
	r.regions = regions
	if r.selected >= len(regions) {
		r.selected = 0
	}
}

// Regions returns the current regions.
func (r *RegionList) Regions() []domain.Region {
	return r.regions
}

// Selected returns the index of the selected region.
func (r *RegionList) Selected() int {
	return r.selected
}

// SetSelected sets the selected index.
func (r *RegionList) SetSelected(index int) {
	if index >= 0 && index < len(r.regions) {
		r.selected = index
	}
}

// SelectedRegion returns the selected region, or nil if the list is empty.
func (r *RegionList) SelectedRegion() *domain.Region {
	if r.selected < 0 || r.selected >= len(r.regions) {
		return nil
	}
	return &r.regions[r.selected]
}

// SetDraft shows tag in place of the stored tag of the region at index.
func (r *RegionList) SetDraft(index int, tag string) {
	r.draftIndex = index
	r.draftTag = tag
}

// ClearDraft stops showing a drafted tag.
func (r *RegionList) ClearDraft() {
	r.draftIndex = -1
	r.draftTag = ""
}

// MoveUp moves selection up.
func (r *RegionList) MoveUp() {
	if r.selected > 0 {
		r.selected--
	}
}

// MoveDown moves selection down.
func (r *RegionList) MoveDown() {
	if r.selected < len(r.regions)-1 {
		r.selected++
	}
}

// SetDimensions sets the list dimensions.
func (r *RegionList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}
