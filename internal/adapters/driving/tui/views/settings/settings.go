// Package settings provides the settings view for the TUI.
package settings

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
)

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View lists configuration keys and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService
	ctx             context.Context

	settings *domain.AppSettings
	path     string
	err      error

	selected int
	editing  bool
	field    *input.Field

	checking bool
	checked  bool
	checkErr error

	width  int
	height int
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:          s,
		settingsService: settingsService,
		ctx:             context.Background(),
		field:           input.NewField(s, "", ""),
	}
}

// WithContext sets the context used for service checks.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the current settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := v.settingsService.Get()
		return messages.SettingsLoaded{
			Settings: settings,
			Path:     v.settingsService.ConfigPath(),
			Err:      err,
		}
	}
}

func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingSaved{Key: key, Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

func (v *View) checkService() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.ServiceChecked{Err: fmt.Errorf("settings service not available")}
		}
		return messages.ServiceChecked{Err: v.settingsService.Check(v.ctx)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.settings = msg.Settings
			v.path = msg.Path
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.stopEditing()
		return v, v.loadSettings()

	case messages.ServiceChecked:
		v.checking = false
		v.checked = true
		v.checkErr = msg.Err
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKeys(msg)
		}
		return v.handleListKeys(msg)
	}

	return v, nil
}

func (v *View) handleListKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(domain.SettingKeys)-1 {
			v.selected++
		}
	case keyEnter:
		if v.settings == nil {
			return v, nil
		}
		key := domain.SettingKeys[v.selected]
		value, _ := v.settings.Value(key)
		v.field = input.NewField(v.styles, key, "")
		v.field.SetWidth(v.width)
		v.field.SetValue(value)
		v.editing = true
		return v, v.field.Focus()
	case "c":
		v.checking = true
		v.checked = false
		return v, v.checkService()
	}
	return v, nil
}

func (v *View) handleEditKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		v.err = nil
		return v, nil
	case keyEnter:
		return v, v.saveSetting(domain.SettingKeys[v.selected], strings.TrimSpace(v.field.Value()))
	}

	var cmd tea.Cmd
	v.field, cmd = v.field.Update(msg)
	return v, cmd
}

func (v *View) stopEditing() {
	v.editing = false
	v.field.Blur()
}

// View renders the settings.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n")
	if v.path != "" {
		b.WriteString(v.styles.Muted.Render(v.path))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if v.settings == nil && v.err == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
	}

	if v.settings != nil {
		for i, key := range domain.SettingKeys {
			if v.editing && i == v.selected {
				b.WriteString(v.field.View())
				b.WriteString("\n")
				continue
			}
			value, _ := v.settings.Value(key)
			if value == "" {
				value = v.styles.Muted.Render("(unset)")
			}
			cursor := "  "
			name := v.styles.Normal.Render(fmt.Sprintf("%-26s", key))
			if i == v.selected {
				cursor = "> "
				name = v.styles.Subtitle.Render(fmt.Sprintf("%-26s", key))
			}
			b.WriteString(cursor + name + value + "\n")
		}
	}

	switch {
	case v.checking:
		b.WriteString("\n" + v.styles.Muted.Render("Checking service..."))
	case v.checked && v.checkErr != nil:
		b.WriteString("\n" + v.styles.Error.Render("Service unreachable: "+v.checkErr.Error()))
	case v.checked:
		b.WriteString("\n" + v.styles.Success.Render("Service reachable"))
	}

	if v.err != nil {
		b.WriteString("\n" + v.styles.Error.Render(v.err.Error()))
	}

	b.WriteString("\n\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[Enter] Save  [Esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[Enter] Edit  [c] Check service  [Esc] Back"))
	}
	return b.String()
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset clears view state before the view is shown again.
func (v *View) Reset() {
	v.selected = 0
	v.stopEditing()
	v.err = nil
	v.checking = false
	v.checked = false
	v.checkErr = nil
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.field.SetWidth(width)
}
