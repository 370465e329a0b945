package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// Ensure GenerationPipeline implements the interface.
var _ driving.GenerationService = (*GenerationPipeline)(nil)

// GenerationPipeline renders snapshots into PDF artifacts.
//
// At most one artifact is held at a time. It is created when a successful
// result is applied and released exactly once, either when the next request
// opens or when the pipeline closes. Results for any request other than
// the active one are dropped without touching the artifact store.
type GenerationPipeline struct {
	renderer  driven.RenderService
	artifacts driven.ArtifactStore
	inspector driven.PDFInspector
	newID     func() string

	mu    sync.Mutex
	state domain.GenerationState
}

// NewGenerationPipeline creates a pipeline in the Idle state.
// inspector may be nil, in which case artifacts carry no page count.
func NewGenerationPipeline(
	renderer driven.RenderService,
	artifacts driven.ArtifactStore,
	inspector driven.PDFInspector,
) *GenerationPipeline {
	return &GenerationPipeline{
		renderer:  renderer,
		artifacts: artifacts,
		inspector: inspector,
		newID:     uuid.NewString,
		state:     domain.GenerationState{Status: domain.GenerationIdle},
	}
}

// Open releases any held artifact and starts a new request for snapshot.
func (p *GenerationPipeline) Open(snapshot domain.TagResponse) domain.GenerationRequest {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.releaseLocked(); err != nil {
		logger.Warn("generation: release before open: %v", err)
	}
	if p.state.Status == domain.GenerationRequesting {
		logger.Debug("generation: superseding request %s", p.state.RequestID)
	}

	req := domain.GenerationRequest{ID: p.newID(), Snapshot: snapshot}
	p.state = domain.GenerationState{
		Status:    domain.GenerationRequesting,
		RequestID: req.ID,
	}
	logger.Debug("generation: opened request %s (%d regions)", req.ID, len(snapshot.Structure))
	return req
}

// Execute calls the render service for req and counts the pages of the
// rendered document. It does not touch pipeline state.
func (p *GenerationPipeline) Execute(ctx context.Context, req domain.GenerationRequest) domain.GenerationResult {
	data, contentType, err := p.renderer.Render(ctx, req.Snapshot)
	if err != nil {
		return domain.GenerationResult{RequestID: req.ID, Err: err}
	}

	result := domain.GenerationResult{
		RequestID:   req.ID,
		Data:        data,
		ContentType: contentType,
	}
	if p.inspector != nil {
		info, err := p.inspector.Inspect(bytes.NewReader(data))
		if err != nil {
			logger.Warn("generation: inspect result of %s: %v", req.ID, err)
		} else {
			result.PageCount = info.PageCount
		}
	}
	return result
}

// Resolve applies result if it belongs to the active request.
func (p *GenerationPipeline) Resolve(ctx context.Context, result domain.GenerationResult) (domain.GenerationState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Status != domain.GenerationRequesting || p.state.RequestID != result.RequestID {
		logger.Debug("generation: discarding stale result for %s", result.RequestID)
		return p.snapshotLocked(), false
	}

	if result.Err != nil {
		p.failLocked(result.Err)
		return p.snapshotLocked(), true
	}

	contentType := result.ContentType
	if contentType == "" {
		contentType = domain.PDFContentType
	}

	artifact, err := p.artifacts.Create(ctx, result.Data, contentType)
	if err != nil {
		p.failLocked(fmt.Errorf("store artifact: %w", err))
		return p.snapshotLocked(), true
	}

	artifact.PageCount = result.PageCount

	p.state = domain.GenerationState{
		Status:    domain.GenerationReady,
		RequestID: result.RequestID,
		Artifact:  artifact,
	}
	logger.Debug("generation: request %s ready as artifact %s (%d bytes)", result.RequestID, artifact.ID, artifact.Size)
	return p.snapshotLocked(), true
}

// Close releases any held artifact and returns to Idle.
func (p *GenerationPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.releaseLocked()
	if p.state.Status == domain.GenerationRequesting {
		logger.Debug("generation: abandoning request %s", p.state.RequestID)
	}
	p.state = domain.GenerationState{Status: domain.GenerationIdle}
	return err
}

// State returns a copy of the current state.
func (p *GenerationPipeline) State() domain.GenerationState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Generate runs a full request for snapshot and waits for it.
// Returns domain.ErrSuperseded if another request opened meanwhile.
func (p *GenerationPipeline) Generate(ctx context.Context, snapshot domain.TagResponse) (domain.GenerationState, error) {
	req := p.Open(snapshot)
	result := p.Execute(ctx, req)

	state, applied := p.Resolve(ctx, result)
	if !applied {
		return state, fmt.Errorf("generation %s: %w", req.ID, domain.ErrSuperseded)
	}
	if state.Status == domain.GenerationFailed {
		return state, state.Err
	}
	return state, nil
}

// WriteArtifact copies the held artifact to w.
func (p *GenerationPipeline) WriteArtifact(w io.Writer) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state.Status != domain.GenerationReady || p.state.Artifact == nil {
		return 0, domain.ErrNoArtifact
	}

	rc, err := p.artifacts.Open(p.state.Artifact.ID)
	if err != nil {
		return 0, fmt.Errorf("open artifact: %w", err)
	}
	defer rc.Close()

	return io.Copy(w, rc)
}

// releaseLocked drops the held artifact. The handle is forgotten even if
// the store fails, so it is never released twice.
func (p *GenerationPipeline) releaseLocked() error {
	if p.state.Artifact == nil {
		return nil
	}
	id := p.state.Artifact.ID
	p.state.Artifact = nil

	if err := p.artifacts.Release(id); err != nil {
		return fmt.Errorf("release artifact %s: %w", id, err)
	}
	logger.Debug("generation: released artifact %s", id)
	return nil
}

func (p *GenerationPipeline) failLocked(err error) {
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) {
		genErr = &domain.GenerationError{Err: err}
	}
	p.state = domain.GenerationState{
		Status:    domain.GenerationFailed,
		RequestID: p.state.RequestID,
		Message:   genErr.Error(),
		Err:       genErr,
	}
	logger.Debug("generation: request %s failed: %v", p.state.RequestID, err)
}

func (p *GenerationPipeline) snapshotLocked() domain.GenerationState {
	state := p.state
	if state.Artifact != nil {
		artifact := *state.Artifact
		state.Artifact = &artifact
	}
	return state
}
