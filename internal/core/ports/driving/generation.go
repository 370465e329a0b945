package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// GenerationService manages one render request at a time and the artifact
// handle it produces. See domain.GenerationStatus for the states.
type GenerationService interface {
	// Open releases any held artifact, supersedes any in-flight request
	// and starts a new request for snapshot.
	Open(snapshot domain.TagResponse) domain.GenerationRequest

	// Execute performs the remote call for req. It does not change state.
	Execute(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult

	// Resolve applies result if it belongs to the active request.
	// Returns the resulting state and whether the result was applied.
	Resolve(ctx context.Context, result domain.GenerationResult) (domain.GenerationState, bool)

	// Close releases any held artifact and returns to Idle. Results of a
	// request still in flight are discarded when they arrive.
	Close() error

	// State returns the current state.
	State() domain.GenerationState

	// Generate runs Open, Execute and Resolve in sequence.
	Generate(ctx context.Context, snapshot domain.TagResponse) (domain.GenerationState, error)

	// WriteArtifact copies the held artifact to w.
	// Returns domain.ErrNoArtifact unless the state is Ready.
	WriteArtifact(w io.Writer) (int64, error)
}
