package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/services"
)

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *mockSettingsService) Set(key, value string) error {
	return m.Called(key, value).Error(0)
}

func (m *mockSettingsService) ConfigPath() string {
	return m.Called().String(0)
}

func (m *mockSettingsService) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// stubTagger returns a fixed two-region snapshot named after the file.
type stubTagger struct {
	err error
}

func (s *stubTagger) Tag(_ context.Context, file domain.SourceFile) (*domain.TagResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TagResponse{
		Pages: []domain.PageInfo{{Page: 1, Width: 612, Height: 792}},
		Structure: []domain.Region{
			{Page: 1, Type: "text", Content: "Quarterly Report", Tag: domain.TagParagraph},
			{Page: 1, Type: "text", Content: "Revenue grew.", Tag: domain.TagParagraph},
		},
		Metadata: domain.Metadata{Filename: file.Name, Title: "Draft"},
	}, nil
}

func (s *stubTagger) Ping(context.Context) error {
	return nil
}

// stubRenderer returns a fake PDF carrying the document title.
type stubRenderer struct {
	err error
}

func (r *stubRenderer) Render(_ context.Context, snapshot domain.TagResponse) ([]byte, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("%PDF-1.7 " + snapshot.Metadata.Title), domain.PDFContentType, nil
}

type testEnv struct {
	server   *Server
	session  *services.SessionService
	store    *memory.ArtifactStore
	tagger   *stubTagger
	renderer *stubRenderer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewArtifactStore()
	tagger := &stubTagger{}
	renderer := &stubRenderer{}
	session := services.NewSessionService(tagger, services.NewGenerationPipeline(renderer, store, nil), nil)

	server, err := NewServer(&Ports{Session: session})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return &testEnv{
		server:   server,
		session:  session,
		store:    store,
		tagger:   tagger,
		renderer: renderer,
	}
}
