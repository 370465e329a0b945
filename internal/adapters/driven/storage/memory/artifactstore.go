package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore keeps generated artifacts in memory.
// It records every create and release so tests can check that handles
// are released exactly once and in order.
type ArtifactStore struct {
	mu       sync.Mutex
	seq      int
	live     map[string]storedArtifact
	released map[string]bool
	events   []string
}

type storedArtifact struct {
	data   []byte
	handle domain.Artifact
}

// NewArtifactStore creates an empty in-memory artifact store.
func NewArtifactStore() *ArtifactStore {
	return &ArtifactStore{
		live:     make(map[string]storedArtifact),
		released: make(map[string]bool),
	}
}

// Create stores a copy of data and returns its handle.
func (s *ArtifactStore) Create(_ context.Context, data []byte, contentType string) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := fmt.Sprintf("artifact-%d", s.seq)
	handle := domain.Artifact{
		ID:          id,
		URI:         "memory://" + id,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}
	s.live[id] = storedArtifact{data: append([]byte(nil), data...), handle: handle}
	s.events = append(s.events, "create:"+id)

	return &handle, nil
}

// Stat returns the handle of a live artifact.
func (s *ArtifactStore) Stat(id string) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.live[id]
	if !ok {
		return nil, s.missing(id)
	}
	handle := stored.handle
	return &handle, nil
}

// Open returns a reader over the artifact bytes.
func (s *ArtifactStore) Open(id string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.live[id]
	if !ok {
		return nil, s.missing(id)
	}
	return io.NopCloser(bytes.NewReader(stored.data)), nil
}

// Release drops the artifact. A second release of the same handle fails.
func (s *ArtifactStore) Release(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.live[id]; !ok {
		return s.missing(id)
	}
	delete(s.live, id)
	s.released[id] = true
	s.events = append(s.events, "release:"+id)
	return nil
}

// Close releases every live artifact.
func (s *ArtifactStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range s.live {
		delete(s.live, id)
		s.released[id] = true
		s.events = append(s.events, "release:"+id)
	}
	return nil
}

// Live returns the number of artifacts created and not yet released.
func (s *ArtifactStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.live)
}

// Events returns the create and release history, oldest first.
func (s *ArtifactStore) Events() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.events...)
}

func (s *ArtifactStore) missing(id string) error {
	if s.released[id] {
		return fmt.Errorf("%w: %s", domain.ErrArtifactReleased, id)
	}
	return fmt.Errorf("%w: artifact %s", domain.ErrNotFound, id)
}
