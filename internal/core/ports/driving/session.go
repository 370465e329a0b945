package driving

import (
	"context"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// SessionService holds the current tagging snapshot and applies edits to it.
//
// Uploads are split into Begin/Execute/Resolve so an event loop can run the
// remote call off its own goroutine and apply the result later. Only the
// most recently begun upload is ever applied.
type SessionService interface {
	// BeginUpload marks an upload of file as active and returns its request.
	// Any earlier upload still in flight is superseded.
	BeginUpload(file domain.SourceFile) domain.UploadRequest

	// ExecuteUpload performs the remote call for req. It does not change state.
	ExecuteUpload(ctx context.Context, req domain.UploadRequest) domain.UploadResult

	// ResolveUpload applies result if it belongs to the active upload.
	// Returns false for stale results. A failed upload leaves the current
	// snapshot untouched and returns a *domain.TaggingError.
	ResolveUpload(result domain.UploadResult) (bool, error)

	// Upload runs Begin, Execute and Resolve in sequence.
	Upload(ctx context.Context, file domain.SourceFile) (domain.TagResponse, error)

	// Load replaces the snapshot with a previously saved one. Any upload
	// in flight is superseded and any generated artifact is released.
	Load(snapshot domain.TagResponse) error

	// Snapshot returns the current snapshot, false before the first upload.
	Snapshot() (domain.TagResponse, bool)

	// Current returns the snapshot together with the revision of the
	// document it belongs to. The revision changes whenever the document
	// is replaced by an upload, a load or Close, but not by edits.
	Current() (domain.TagResponse, uint64, bool)

	// Loading reports whether an upload is in flight.
	Loading() bool

	// UpdateMetadata replaces the snapshot metadata wholesale.
	UpdateMetadata(meta domain.Metadata) error

	// UpdateMetadataAt is UpdateMetadata for the document at revision.
	// Returns domain.ErrSuperseded once that document has been replaced.
	UpdateMetadataAt(revision uint64, meta domain.Metadata) error

	// UpdateRegionTag rewrites the tag of the region at index and returns
	// the region as committed.
	UpdateRegionTag(index int, tag string) (domain.Region, error)

	// UpdateRegionTagAt is UpdateRegionTag for the document at revision.
	// Returns domain.ErrSuperseded once that document has been replaced.
	UpdateRegionTagAt(revision uint64, index int, tag string) (domain.Region, error)

	// OpenGeneration hands the current snapshot to the generation pipeline.
	OpenGeneration() (domain.GenerationRequest, error)

	// Generation returns the pipeline owned by the session.
	Generation() GenerationService

	// Close ends the session, discarding in-flight work and releasing
	// any generated artifact.
	Close() error
}
