package driven

import (
	"context"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

// TaggingService analyses a document and proposes a structural tagging.
// The analysis itself is opaque; only the request/response contract matters.
type TaggingService interface {
	// Tag uploads file and returns the tagged snapshot.
	// Transport failures are reported as *domain.NetworkError and non-2xx
	// answers as *domain.ServiceError.
	Tag(ctx context.Context, file domain.SourceFile) (*domain.TagResponse, error)

	// Ping checks the service is reachable.
	Ping(ctx context.Context) error
}

// RenderService renders a reviewed snapshot into an output document.
type RenderService interface {
	// Render sends snapshot and returns the artifact bytes with their content type.
	// Errors follow the same taxonomy as TaggingService.Tag.
	Render(ctx context.Context, snapshot domain.TagResponse) (data []byte, contentType string, err error)
}
