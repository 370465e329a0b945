package upload

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func TestNewView(t *testing.T) {
	view := NewView(nil)

	require.NotNil(t, view)
	assert.False(t, view.Loading())
	assert.NoError(t, view.Err())
}

func TestView_Init_FocusesInput(t *testing.T) {
	view := NewView(nil)

	assert.NotNil(t, view.Init())
	assert.True(t, view.path.Focused())
}

func TestView_Update_EnterRequestsUpload(t *testing.T) {
	view := NewView(nil)
	view.Init()
	view.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("report.PDF")})

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.UploadRequested{Path: "report.PDF"}, cmd())
}

func TestView_Update_EnterValidatesPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want error
	}{
		{"empty", "  ", domain.ErrInvalidInput},
		{"not a pdf", "notes.txt", domain.ErrNotPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := NewView(nil)
			view.SetPath(tt.path)

			_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})

			assert.Nil(t, cmd)
			assert.ErrorIs(t, view.Err(), tt.want)
		})
	}
}

func TestView_Update_EscGoesBack(t *testing.T) {
	view := NewView(nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_LoadingLifecycle(t *testing.T) {
	view := NewView(nil)

	view.SetLoading("/tmp/docs/report.pdf")
	assert.True(t, view.Loading())
	assert.Contains(t, view.View(), "Tagging report.pdf")

	view.SetError(errors.New("upload failed: boom"))
	assert.False(t, view.Loading())
	assert.Contains(t, view.View(), "boom")

	view.SetLoading("/tmp/docs/report.pdf")
	view.Done()
	assert.False(t, view.Loading())
	assert.NoError(t, view.Err())
}
