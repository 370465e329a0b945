package services

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
)

// fakeTagger implements driven.TaggingService for testing.
type fakeTagger struct {
	mu      sync.Mutex
	byName  map[string]*domain.TagResponse
	err     error
	pingErr error
	calls   []string
}

func (f *fakeTagger) Tag(_ context.Context, file domain.SourceFile) (*domain.TagResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, file.Name)
	if f.err != nil {
		return nil, f.err
	}
	resp, ok := f.byName[file.Name]
	if !ok {
		return nil, &domain.ServiceError{StatusCode: 404, Message: "unknown file"}
	}
	return resp, nil
}

func (f *fakeTagger) Ping(_ context.Context) error {
	return f.pingErr
}

func (f *fakeTagger) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeRenderer implements driven.RenderService for testing.
type fakeRenderer struct {
	data     []byte
	err      error
	onRender func(domain.TagResponse)
	rendered []domain.TagResponse
}

func (f *fakeRenderer) Render(_ context.Context, snapshot domain.TagResponse) ([]byte, string, error) {
	f.rendered = append(f.rendered, snapshot)
	if f.onRender != nil {
		f.onRender(snapshot)
	}
	if f.err != nil {
		return nil, "", f.err
	}
	return f.data, domain.PDFContentType, nil
}

// fakeInspector implements driven.PDFInspector for testing.
type fakeInspector struct {
	pages int
	err   error
	calls int
}

func (f *fakeInspector) Inspect(_ io.ReadSeeker) (*driven.PDFInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &driven.PDFInfo{PageCount: f.pages}, nil
}

// failingStore wraps an ArtifactStore and fails every Create.
type failingStore struct {
	driven.ArtifactStore
}

func (failingStore) Create(context.Context, []byte, string) (*domain.Artifact, error) {
	return nil, errors.New("disk full")
}

func threeRegionDoc() *domain.TagResponse {
	return &domain.TagResponse{
		Pages: []domain.PageInfo{{Page: 1, Width: 612, Height: 792}},
		Structure: []domain.Region{
			{Page: 1, Type: "text", Content: "Body text", BBox: [4]float64{72, 200, 540, 240}, Tag: domain.TagParagraph},
			{Page: 1, Type: "text", Content: "Annual Report", BBox: [4]float64{72, 72, 540, 110}, Tag: domain.TagTitle},
			{Page: 1, Type: "image", Content: "", BBox: [4]float64{72, 300, 300, 500}, Tag: domain.TagImage},
		},
		Metadata: domain.Metadata{
			Filename:     "report.pdf",
			Title:        "Annual Report",
			CreationDate: "D:20240115103000Z",
		},
	}
}

func oneRegionDoc(name string) *domain.TagResponse {
	return &domain.TagResponse{
		Structure: []domain.Region{{Page: 1, Type: "text", Content: name, Tag: domain.TagParagraph}},
		Metadata:  domain.Metadata{Filename: name},
	}
}
