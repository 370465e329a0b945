package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// ArtifactStore holds generated documents behind releasable handles.
// Every handle returned by Create must be released exactly once.
type ArtifactStore interface {
	// Create stores data and returns a new handle.
	Create(ctx context.Context, data []byte, contentType string) (*domain.Artifact, error)

	// Stat returns the handle of a live artifact as issued by Create.
	// Errors match Open.
	Stat(id string) (*domain.Artifact, error)

	// Open returns a reader over a live artifact.
	// Returns domain.ErrArtifactReleased after release and domain.ErrNotFound
	// for ids the store never issued.
	Open(id string) (io.ReadCloser, error)

	// Release frees the artifact. A second release returns domain.ErrArtifactReleased.
	Release(id string) error

	// Close releases every live artifact.
	Close() error
}

// ArtifactReader is the read side of ArtifactStore, used by preview servers.
type ArtifactReader interface {
	Stat(id string) (*domain.Artifact, error)
	Open(id string) (io.ReadCloser, error)
}
