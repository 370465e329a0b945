package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

// stubTagger returns three regions and echoes the file name.
type stubTagger struct {
	err     error
	pingErr error
	calls   int
}

func (s *stubTagger) Tag(_ context.Context, file domain.SourceFile) (*domain.TagResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	xref := 12
	return &domain.TagResponse{
		Pages: []domain.PageInfo{{Page: 1, Width: 612, Height: 792}},
		Structure: []domain.Region{
			{Page: 1, Type: "text", Content: "Annual  Report\n2025", BBox: [4]float64{72, 700.34, 540, 730}, Tag: domain.TagParagraph},
			{Page: 1, Type: "text", Content: "Revenue grew in every quarter.", BBox: [4]float64{72, 600, 540, 690}, Tag: domain.TagParagraph},
			{Page: 1, Type: "image", XRef: &xref, BBox: [4]float64{72, 300, 300, 500}, Tag: domain.TagImage},
		},
		Metadata: domain.Metadata{
			Filename:     file.Name,
			Title:        "Draft",
			CreationDate: "D:20250102030405Z",
		},
	}, nil
}

func (s *stubTagger) Ping(context.Context) error {
	return s.pingErr
}

// stubRenderer returns a fake PDF listing the region tags.
type stubRenderer struct {
	err   error
	calls int
}

func (r *stubRenderer) Render(_ context.Context, snapshot domain.TagResponse) ([]byte, string, error) {
	r.calls++
	if r.err != nil {
		return nil, "", r.err
	}
	data := "%PDF-1.7 " + snapshot.Metadata.Title
	for _, tag := range snapshot.Tags() {
		data += " " + tag
	}
	return []byte(data), domain.PDFContentType, nil
}

// stubPreview records Start and Stop calls.
type stubPreview struct {
	startErr error
	started  bool
	stopped  bool
}

func (p *stubPreview) Start() error {
	p.started = p.startErr == nil
	return p.startErr
}

func (p *stubPreview) Stop() error {
	p.stopped = true
	return nil
}

func (p *stubPreview) BaseURL() string {
	return "http://127.0.0.1:7000/"
}

func (p *stubPreview) ArtifactURL(id string) string {
	return p.BaseURL() + "artifacts/" + id
}

type testServices struct {
	session  *services.SessionService
	settings *services.SettingsService
	config   *memory.ConfigStore
	store    *memory.ArtifactStore
	tagger   *stubTagger
	renderer *stubRenderer
	preview  *stubPreview
}

// setupTestServices configures the commands against in-memory services
// and restores the previous configuration when the test ends.
func setupTestServices(t *testing.T) *testServices {
	t.Helper()

	tagger := &stubTagger{}
	renderer := &stubRenderer{}
	store := memory.NewArtifactStore()
	config := memory.NewConfigStoreWith(map[string]any{
		domain.KeyOutputDir: t.TempDir(),
	})
	session := services.NewSessionService(tagger, services.NewGenerationPipeline(renderer, store, nil), nil)
	settings := services.NewSettingsService(config, tagger)
	preview := &stubPreview{}

	prev := Services{
		Session:  sessionService,
		Settings: settingsService,
		Watcher:  fileWatcher,
		Preview:  previewServer,
		OpenURL:  openURL,
	}
	Configure(Services{
		Session:  session,
		Settings: settings,
		Preview:  preview,
	})
	resetFlags()

	t.Cleanup(func() {
		_ = session.Close()
		Configure(prev)
		resetFlags()
		rootCmd.SetArgs(nil)
	})

	return &testServices{
		session:  session,
		settings: settings,
		config:   config,
		store:    store,
		tagger:   tagger,
		renderer: renderer,
		preview:  preview,
	}
}

// resetFlags clears flag values left behind by earlier executions.
func resetFlags() {
	tagJSON = false
	tagOut = ""
	generateFrom = ""
	generateOutput = ""
	generateTags = nil
	generateMeta = nil
	configCheck = false
	tuiWatch = false
	verbose = false
	resetHelpFlags(rootCmd)
}

// resetHelpFlags clears --help on cmd and its children. cobra leaves it
// set after a help run, which turns every later execution into help.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, child := range cmd.Commands() {
		resetHelpFlags(child)
	}
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags()
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}

func writePDF(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n"), 0o600))
	return path
}

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "tagger", rootCmd.Use)
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	commands := rootCmd.Commands()
	commandNames := make([]string, 0, len(commands))
	for _, cmd := range commands {
		commandNames = append(commandNames, cmd.Name())
	}

	assert.Contains(t, commandNames, "version")
	assert.Contains(t, commandNames, "tag")
	assert.Contains(t, commandNames, "generate")
	assert.Contains(t, commandNames, "config")
	assert.Contains(t, commandNames, "tui")
	assert.Contains(t, commandNames, "mcp")
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	flag := rootCmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, flag)
	assert.Equal(t, "v", flag.Shorthand)
}

func TestCommands_RequireConfiguration(t *testing.T) {
	prev := Services{Session: sessionService, Settings: settingsService}
	Configure(Services{})
	defer Configure(prev)
	resetFlags()

	_, err := run(t, "tag", "report.pdf")
	assert.True(t, errors.Is(err, errNotConfigured))

	_, err = run(t, "generate", "report.pdf")
	assert.True(t, errors.Is(err, errNotConfigured))

	_, err = run(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "settings service not configured")
}
