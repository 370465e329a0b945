package generate

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func ready() domain.GenerationState {
	return domain.GenerationState{
		Status:   domain.GenerationReady,
		Artifact: &domain.Artifact{ID: "artifact-1", Size: 2048, PageCount: 3},
	}
}

func TestView_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state domain.GenerationState
		want  []string
	}{
		{"idle", domain.GenerationState{}, []string{"No generation requested"}},
		{"requesting", domain.GenerationState{Status: domain.GenerationRequesting}, []string{"Generating"}},
		{
			"failed",
			domain.GenerationState{Status: domain.GenerationFailed, Message: "generation failed: service error (500)"},
			[]string{"generation failed", "Retry"},
		},
		{"ready", ready(), []string{"ready", "2.0 KB", "Pages", "http://127.0.0.1:9/artifacts/artifact-1", "Open"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.SetState(tt.state, "http://127.0.0.1:9/artifacts/artifact-1")

			out := view.View()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestView_Update_Keys(t *testing.T) {
	tests := []struct {
		name   string
		status domain.GenerationStatus
		key    tea.KeyMsg
		want   tea.Msg
	}{
		{"close", domain.GenerationRequesting, tea.KeyMsg{Type: tea.KeyEsc}, messages.GenerationClosed{}},
		{"retry after failure", domain.GenerationFailed, runes("r"), messages.GenerationRequested{}},
		{"regenerate", domain.GenerationReady, runes("r"), messages.GenerationRequested{}},
		{"open", domain.GenerationReady, runes("o"), messages.ArtifactOpenRequested{}},
		{"save", domain.GenerationReady, runes("s"), messages.ArtifactSaveRequested{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.SetState(domain.GenerationState{Status: tt.status}, "")

			_, cmd := view.Update(tt.key)

			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestView_Update_IgnoredWhileNotReady(t *testing.T) {
	view := NewView(nil)
	view.SetState(domain.GenerationState{Status: domain.GenerationRequesting}, "")

	for _, k := range []string{"o", "s", "r"} {
		_, cmd := view.Update(runes(k))
		assert.Nil(t, cmd, k)
	}
}

func TestView_SetSaved(t *testing.T) {
	view := NewView(nil)
	view.SetState(ready(), "")

	view.SetSaved("/tmp/out/remediated.pdf", nil)
	assert.Contains(t, view.View(), "Saved to /tmp/out/remediated.pdf")

	view.SetSaved("", errors.New("disk full"))
	assert.Contains(t, view.View(), "disk full")
	assert.NotContains(t, view.View(), "Saved to")
}

func TestView_SetState_ClearsNotices(t *testing.T) {
	view := NewView(nil)
	view.SetState(ready(), "")
	view.SetOpenError(errors.New("no browser"))
	assert.Contains(t, view.View(), "no browser")

	view.SetState(ready(), "")
	assert.NotContains(t, view.View(), "no browser")
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", formatSize(512))
	assert.Equal(t, "1.5 KB", formatSize(1536))
	assert.Equal(t, "2.0 MB", formatSize(2<<20))
}
