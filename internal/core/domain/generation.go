package domain

import "time"

// GenerationStatus is the state of the generation pipeline.
type GenerationStatus int

const (
	// GenerationIdle means no request is active and no artifact is held.
	GenerationIdle GenerationStatus = iota
	// GenerationRequesting means a render request is in flight.
	GenerationRequesting
	// GenerationReady means an artifact handle is held.
	GenerationReady
	// GenerationFailed means the last request failed.
	GenerationFailed
)

// String returns the string representation of the status.
func (s GenerationStatus) String() string {
	switch s {
	case GenerationIdle:
		return "idle"
	case GenerationRequesting:
		return "requesting"
	case GenerationReady:
		return "ready"
	case GenerationFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Artifact is a handle to a generated document held by an ArtifactStore.
// It must be released exactly once.
type Artifact struct {
	// ID identifies the artifact within its store.
	ID string

	// URI is where the store keeps the bytes (file path, memory:// URI).
	URI string

	// ContentType is the media type reported by the renderer.
	ContentType string

	// Size is the payload length in bytes.
	Size int64

	// PageCount is the number of pages, or 0 when it could not be read.
	PageCount int

	// CreatedAt is when the handle was created.
	CreatedAt time.Time
}

// GenerationState is a snapshot of the pipeline state.
// Artifact is set only when Ready; Message and Err only when Failed.
type GenerationState struct {
	Status    GenerationStatus
	RequestID string
	Artifact  *Artifact
	Message   string
	Err       error
}

// GenerationRequest is one outbound render request.
// Snapshot is the value captured when the request was opened.
type GenerationRequest struct {
	ID       string
	Snapshot TagResponse
}

// GenerationResult is the outcome of executing a GenerationRequest.
type GenerationResult struct {
	RequestID   string
	Data        []byte
	ContentType string

	// PageCount is filled by local inspection, 0 when unknown.
	PageCount int

	Err error
}
