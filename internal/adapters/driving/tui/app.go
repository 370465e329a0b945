package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/generate"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/help"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/metadata"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/review"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/settings"
	"github.com/custodia-labs/tagger-cli/internal/adapters/driving/tui/views/upload"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
//
// Remote calls run as tea.Cmds and come back as messages carrying their
// request ID. The session and pipeline decide whether a result is still
// current, so replies to superseded requests are dropped here.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap
	status *status.Bar

	menuView     *menu.View
	uploadView   *upload.View
	reviewView   *review.View
	metadataView *metadata.View
	generateView *generate.View
	settingsView *settings.View
	helpView     *help.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// document is the name of the tagged document, pending the one in flight.
	document string
	pending  string

	// initialPath is uploaded as soon as the program starts.
	initialPath string

	// err holds the last error that occurred.
	err error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		status:       status.NewBar(s, km),
		menuView:     menu.NewView(s),
		uploadView:   upload.NewView(s),
		reviewView:   review.NewView(s, ports.Session),
		metadataView: metadata.NewView(s, ports.Session),
		generateView: generate.NewView(s),
		settingsView: settings.NewView(s, ports.Settings),
		helpView:     help.NewView(s, km),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.settingsView.WithContext(ctx)
	return a
}

// WithFile uploads path as soon as the program starts.
func (a *App) WithFile(path string) *App {
	a.initialPath = path
	a.uploadView.SetPath(path)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("tagger - PDF accessibility tagging"),
		a.waitForChange(),
	}
	if a.initialPath != "" {
		path := a.initialPath
		cmds = append(cmds, func() tea.Msg { return messages.UploadRequested{Path: path} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
//
//nolint:gocognit,gocyclo,funlen // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if msg.String() == "?" && a.currentView == messages.ViewMenu {
			return a, a.switchTo(messages.ViewHelp)
		}
		return a, a.forward(msg)

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.UploadRequested:
		return a, a.startUpload(msg.Path)

	case messages.FileChanged:
		return a, tea.Batch(a.startUpload(msg.Path), a.waitForChange())

	case messages.UploadCompleted:
		return a, a.finishUpload(msg.Result)

	case messages.SnapshotUpdated:
		a.status.Clear()
		a.status.SetMessage("Changes applied")
		return a, nil

	case messages.GenerationRequested:
		return a, a.startGeneration()

	case messages.GenerationCompleted:
		a.finishGeneration(msg.Result)
		return a, nil

	case messages.GenerationClosed:
		gen := a.ports.Session.Generation()
		if err := gen.Close(); err != nil {
			a.setError(err)
		} else {
			a.status.Clear()
		}
		a.generateView.SetState(gen.State(), "")
		return a, a.switchTo(messages.ViewReview)

	case messages.ArtifactSaveRequested:
		return a, a.saveArtifact()

	case messages.ArtifactSaved:
		a.generateView.SetSaved(msg.Path, msg.Err)
		if msg.Err == nil {
			a.status.SetMessage(fmt.Sprintf("Saved %s", msg.Path))
		}
		return a, nil

	case messages.ArtifactOpenRequested:
		return a, a.openArtifact()

	case messages.ErrorOccurred:
		a.setError(msg.Err)
		if a.currentView == messages.ViewGenerate {
			a.generateView.SetOpenError(msg.Err)
		}
		return a, nil

	case messages.SettingsLoaded, messages.SettingSaved, messages.ServiceChecked:
		var cmd tea.Cmd
		a.settingsView, cmd = a.settingsView.Update(msg)
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.forward(msg)
}

// forward passes msg to the active view.
func (a *App) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewUpload:
		a.uploadView, cmd = a.uploadView.Update(msg)
	case messages.ViewReview:
		a.reviewView, cmd = a.reviewView.Update(msg)
		a.syncEditingState(a.reviewView.Editing())
	case messages.ViewMetadata:
		a.metadataView, cmd = a.metadataView.Update(msg)
		a.syncEditingState(a.metadataView.Editing())
	case messages.ViewGenerate:
		a.generateView, cmd = a.generateView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
	}
	return cmd
}

func (a *App) syncEditingState(editing bool) {
	switch {
	case editing:
		a.status.SetState(status.StateEditing)
		a.status.SetHints(a.keymap.EditingHelp())
	case a.status.State() == status.StateEditing:
		a.status.SetState(status.StateReady)
		a.status.SetHints(a.keymap.ReviewHelp())
	}
}

// switchTo makes view active and initialises it.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	if a.needsSession(view) {
		if _, ok := a.ports.Session.Snapshot(); !ok {
			a.setError(domain.ErrNoSession)
			return nil
		}
	}

	a.currentView = view
	a.status.SetHints(nil)

	switch view {
	case messages.ViewUpload:
		return a.uploadView.Init()
	case messages.ViewReview:
		a.status.SetHints(a.keymap.ReviewHelp())
		return a.reviewView.Init()
	case messages.ViewMetadata:
		return a.metadataView.Init()
	case messages.ViewGenerate:
		a.status.SetHints(a.keymap.GenerateHelp())
	case messages.ViewSettings:
		a.settingsView.Reset()
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

func (a *App) needsSession(view messages.ViewType) bool {
	switch view {
	case messages.ViewReview, messages.ViewMetadata, messages.ViewGenerate:
		return true
	case messages.ViewMenu, messages.ViewUpload, messages.ViewSettings, messages.ViewHelp:
	}
	return false
}

// startUpload reads path and begins a tagging request that supersedes any
// request still in flight.
func (a *App) startUpload(path string) tea.Cmd {
	data, err := os.ReadFile(path)
	if err != nil {
		a.uploadView.SetError(err)
		a.setError(err)
		return nil
	}

	name := filepath.Base(path)
	req := a.ports.Session.BeginUpload(domain.SourceFile{Name: name, Path: path, Data: data})

	a.pending = name
	a.uploadView.SetLoading(path)
	a.status.SetMessage("")
	a.status.SetDocument(name)
	a.status.SetState(status.StateUploading)

	session, ctx := a.ports.Session, a.ctx
	return func() tea.Msg {
		return messages.UploadCompleted{Result: session.ExecuteUpload(ctx, req)}
	}
}

func (a *App) finishUpload(result domain.UploadResult) tea.Cmd {
	applied, err := a.ports.Session.ResolveUpload(result)
	if !applied {
		return nil
	}

	if err != nil {
		a.uploadView.SetError(err)
		a.status.SetDocument(a.document)
		a.setError(err)
		return nil
	}

	a.document = a.pending
	a.uploadView.Done()
	a.menuView.SetSession(true)
	a.generateView.SetState(a.ports.Session.Generation().State(), "")
	a.status.Clear()
	a.status.SetDocument(a.document)
	return a.switchTo(messages.ViewReview)
}

// startGeneration opens a render request for the current snapshot. Any
// artifact from an earlier request is released first.
func (a *App) startGeneration() tea.Cmd {
	req, err := a.ports.Session.OpenGeneration()
	if err != nil {
		a.setError(err)
		return nil
	}

	gen := a.ports.Session.Generation()
	a.generateView.SetState(gen.State(), "")
	a.switchTo(messages.ViewGenerate)
	a.status.SetMessage("")
	a.status.SetState(status.StateGenerating)

	ctx := a.ctx
	return func() tea.Msg {
		return messages.GenerationCompleted{Result: gen.Execute(ctx, req)}
	}
}

func (a *App) finishGeneration(result domain.GenerationResult) {
	state, applied := a.ports.Session.Generation().Resolve(a.ctx, result)
	if !applied {
		return
	}

	a.generateView.SetState(state, a.artifactURL(state))
	if state.Status == domain.GenerationFailed {
		a.setError(state.Err)
		return
	}
	a.status.Clear()
	a.status.SetMessage("PDF ready")
}

func (a *App) artifactURL(state domain.GenerationState) string {
	if a.ports.Preview == nil || state.Status != domain.GenerationReady || state.Artifact == nil {
		return ""
	}
	return a.ports.Preview.ArtifactURL(state.Artifact.ID)
}

func (a *App) saveArtifact() tea.Cmd {
	gen := a.ports.Session.Generation()
	settingsService := a.ports.Settings

	return func() tea.Msg {
		cfg, err := settingsService.Get()
		if err != nil {
			return messages.ArtifactSaved{Err: err}
		}
		path := filepath.Join(cfg.OutputDir, cfg.OutputFilename)
		if cfg.OutputDir != "" {
			if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
				return messages.ArtifactSaved{Err: err}
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return messages.ArtifactSaved{Err: err}
		}
		n, err := gen.WriteArtifact(f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(path)
			return messages.ArtifactSaved{Err: err}
		}
		return messages.ArtifactSaved{Path: path, Bytes: n}
	}
}

func (a *App) openArtifact() tea.Cmd {
	url := a.artifactURL(a.ports.Session.Generation().State())
	if url == "" || a.ports.OpenURL == nil {
		a.generateView.SetOpenError(ErrNoPreview)
		return nil
	}

	open := a.ports.OpenURL
	return func() tea.Msg {
		if err := open(url); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return nil
	}
}

// waitForChange blocks on the watch channel and reports the next change.
func (a *App) waitForChange() tea.Cmd {
	if a.ports.Changes == nil {
		return nil
	}
	ch := a.ports.Changes
	return func() tea.Msg {
		path, ok := <-ch
		if !ok {
			return nil
		}
		return messages.FileChanged{Path: path}
	}
}

func (a *App) setError(err error) {
	a.err = err
	a.status.SetState(status.StateError)
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		a.status.SetMessage("generation failed")
		return
	}
	a.status.SetMessage(err.Error())
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case messages.ViewUpload:
		body = a.uploadView.View()
	case messages.ViewReview:
		body = a.reviewView.View()
	case messages.ViewMetadata:
		body = a.metadataView.View()
	case messages.ViewGenerate:
		body = a.generateView.View()
	case messages.ViewSettings:
		body = a.settingsView.View()
	case messages.ViewHelp:
		body = a.helpView.View()
	default:
		body = a.menuView.View()
	}

	bodyHeight := a.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(bodyHeight).Render(body),
		a.status.View(),
	)
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Document returns the name of the tagged document.
func (a *App) Document() string {
	return a.document
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	viewHeight := height - 1
	a.status.SetWidth(width)
	a.menuView.SetDimensions(width, viewHeight)
	a.uploadView.SetDimensions(width, viewHeight)
	a.reviewView.SetDimensions(width, viewHeight)
	a.metadataView.SetDimensions(width, viewHeight)
	a.generateView.SetDimensions(width, viewHeight)
	a.settingsView.SetDimensions(width, viewHeight)
	a.helpView.SetDimensions(width, viewHeight)
}
