// Package file stores generated artifacts as files in a scratch directory.
package file

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// Ensure ArtifactStore implements the interface.
var _ driven.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes each artifact to its own file. Released artifacts
// are removed from disk; Close removes the directory if the store created it.
type ArtifactStore struct {
	dir      string
	ownsDir  bool
	mu       sync.Mutex
	live     map[string]*domain.Artifact
	paths    map[string]string
	released map[string]bool
	closed   bool
}

// NewArtifactStore stores artifacts under dir.
// If dir is empty, a fresh temporary directory is created.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	owns := false
	if dir == "" {
		tmp, err := os.MkdirTemp("", "tagger-artifacts-*")
		if err != nil {
			return nil, fmt.Errorf("create artifact dir: %w", err)
		}
		dir, owns = tmp, true
	} else if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}

	return &ArtifactStore{
		dir:      dir,
		ownsDir:  owns,
		live:     make(map[string]*domain.Artifact),
		paths:    make(map[string]string),
		released: make(map[string]bool),
	}, nil
}

// Dir returns the directory artifacts are written to.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Create writes data to a new file.
func (s *ArtifactStore) Create(ctx context.Context, data []byte, contentType string) (*domain.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("artifact store closed")
	}

	id := uuid.NewString()
	path := filepath.Join(s.dir, id+extensionFor(contentType))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	handle := &domain.Artifact{
		ID:          id,
		URI:         (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String(),
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now(),
	}
	s.live[id] = handle
	s.paths[id] = path
	logger.Debug("artifacts: wrote %s (%d bytes)", path, len(data))

	out := *handle
	return &out, nil
}

// Stat returns the handle of a live artifact.
func (s *ArtifactStore) Stat(id string) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.live[id]
	if !ok {
		return nil, missing(id, s.released[id])
	}
	out := *handle
	return &out, nil
}

// Open opens the artifact file for reading.
func (s *ArtifactStore) Open(id string) (io.ReadCloser, error) {
	s.mu.Lock()
	path, ok := s.paths[id]
	wasReleased := s.released[id]
	s.mu.Unlock()

	if !ok {
		return nil, missing(id, wasReleased)
	}
	return os.Open(path)
}

// Release deletes the artifact file.
func (s *ArtifactStore) Release(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, ok := s.paths[id]
	if !ok {
		return missing(id, s.released[id])
	}
	delete(s.live, id)
	delete(s.paths, id)
	s.released[id] = true

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove artifact: %w", err)
	}
	logger.Debug("artifacts: removed %s", path)
	return nil
}

// Close removes every live artifact, and the directory when owned.
func (s *ArtifactStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	for id, path := range s.paths {
		delete(s.live, id)
		delete(s.paths, id)
		s.released[id] = true
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove artifact: %w", err)
		}
	}
	if s.ownsDir {
		if err := os.RemoveAll(s.dir); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("remove artifact dir: %w", err)
		}
	}
	return firstErr
}

func missing(id string, released bool) error {
	if released {
		return fmt.Errorf("%w: %s", domain.ErrArtifactReleased, id)
	}
	return fmt.Errorf("%w: artifact %s", domain.ErrNotFound, id)
}

func extensionFor(contentType string) string {
	if contentType == domain.PDFContentType {
		return ".pdf"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
