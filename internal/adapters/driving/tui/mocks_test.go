package tui

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// MockSettingsService is a mock implementation of driving.SettingsService.
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppSettings), args.Error(1)
}

func (m *MockSettingsService) Set(key, value string) error {
	args := m.Called(key, value)
	return args.Error(0)
}

func (m *MockSettingsService) ConfigPath() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockSettingsService) Check(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubTagger tags every file with a single paragraph named after the file.
type stubTagger struct {
	err error
}

func (s *stubTagger) Tag(_ context.Context, file domain.SourceFile) (*domain.TagResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.TagResponse{
		Structure: []domain.Region{{Page: 1, Type: "text", Content: file.Name, Tag: domain.TagParagraph}},
		Metadata:  domain.Metadata{Filename: file.Name},
	}, nil
}

func (s *stubTagger) Ping(context.Context) error {
	return nil
}

// stubRenderer returns a fake PDF carrying the snapshot filename.
type stubRenderer struct {
	err error
}

func (r *stubRenderer) Render(_ context.Context, snapshot domain.TagResponse) ([]byte, string, error) {
	if r.err != nil {
		return nil, "", r.err
	}
	return []byte("%PDF-1.7 " + snapshot.Metadata.Filename), domain.PDFContentType, nil
}

type stubPreview struct{}

func (stubPreview) ArtifactURL(id string) string {
	return "http://127.0.0.1:7000/artifacts/" + id
}
