package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService owns the current tagging snapshot.
//
// Each upload gets a fresh request ID. Only the result carrying the ID of
// the most recent upload is applied; anything else is logged and dropped.
// A successful upload replaces the snapshot and closes the generation
// pipeline, since its artifact belongs to the previous document.
type SessionService struct {
	tagger     driven.TaggingService
	generation driving.GenerationService
	inspector  driven.PDFInspector
	newID      func() string

	mu       sync.Mutex
	snapshot *domain.TagResponse
	revision uint64
	uploadID string
	loading  bool
}

// NewSessionService creates an empty session.
// When inspector is non-nil, source files are checked locally before upload.
func NewSessionService(
	tagger driven.TaggingService,
	generation driving.GenerationService,
	inspector driven.PDFInspector,
) *SessionService {
	return &SessionService{
		tagger:     tagger,
		generation: generation,
		inspector:  inspector,
		newID:      uuid.NewString,
	}
}

// BeginUpload marks file as the active upload.
func (s *SessionService) BeginUpload(file domain.SourceFile) domain.UploadRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		logger.Debug("session: upload %s superseded", s.uploadID)
	}
	req := domain.UploadRequest{ID: s.newID(), File: file}
	s.uploadID = req.ID
	s.loading = true
	logger.Debug("session: upload %s started for %s (%d bytes)", req.ID, file.Name, len(file.Data))
	return req
}

// ExecuteUpload sends the file to the tagging service.
func (s *SessionService) ExecuteUpload(ctx context.Context, req domain.UploadRequest) domain.UploadResult {
	if s.inspector != nil {
		if _, err := s.inspector.Inspect(bytes.NewReader(req.File.Data)); err != nil {
			return domain.UploadResult{RequestID: req.ID, Err: &domain.TaggingError{Err: err}}
		}
	}

	resp, err := s.tagger.Tag(ctx, req.File)
	if err != nil {
		return domain.UploadResult{RequestID: req.ID, Err: &domain.TaggingError{Err: err}}
	}
	return domain.UploadResult{RequestID: req.ID, Response: resp}
}

// ResolveUpload applies result if it belongs to the active upload.
func (s *SessionService) ResolveUpload(result domain.UploadResult) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loading || result.RequestID != s.uploadID {
		logger.Debug("session: discarding stale upload result %s", result.RequestID)
		return false, nil
	}
	s.loading = false
	s.uploadID = ""

	if result.Err != nil {
		var tagErr *domain.TaggingError
		if !errors.As(result.Err, &tagErr) {
			tagErr = &domain.TaggingError{Err: result.Err}
		}
		logger.Debug("session: upload %s failed: %v", result.RequestID, result.Err)
		return true, tagErr
	}
	if result.Response == nil {
		return true, &domain.TaggingError{Err: errors.New("empty response")}
	}

	snapshot := *result.Response
	s.replaceLocked(&snapshot)
	logger.Debug("session: upload %s tagged %d regions", result.RequestID, len(snapshot.Structure))

	if err := s.generation.Close(); err != nil {
		logger.Warn("session: close generation: %v", err)
	}
	return true, nil
}

// Upload tags file and waits for the result.
func (s *SessionService) Upload(ctx context.Context, file domain.SourceFile) (domain.TagResponse, error) {
	req := s.BeginUpload(file)
	applied, err := s.ResolveUpload(s.ExecuteUpload(ctx, req))
	if !applied {
		return domain.TagResponse{}, fmt.Errorf("upload %s: %w", req.ID, domain.ErrSuperseded)
	}
	if err != nil {
		return domain.TagResponse{}, err
	}

	snapshot, _ := s.Snapshot()
	return snapshot, nil
}

// Load replaces the snapshot with a saved one.
func (s *SessionService) Load(snapshot domain.TagResponse) error {
	s.mu.Lock()
	if s.loading {
		logger.Debug("session: upload %s superseded by load", s.uploadID)
	}
	s.replaceLocked(&snapshot)
	s.uploadID = ""
	s.loading = false
	s.mu.Unlock()

	return s.generation.Close()
}

// replaceLocked installs a new document and bumps the revision.
// Callers hold s.mu.
func (s *SessionService) replaceLocked(snapshot *domain.TagResponse) {
	s.snapshot = snapshot
	s.revision++
}

// Snapshot returns the current snapshot.
func (s *SessionService) Snapshot() (domain.TagResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return domain.TagResponse{}, false
	}
	return *s.snapshot, true
}

// Current returns the snapshot and the revision of the document it belongs to.
func (s *SessionService) Current() (domain.TagResponse, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshot == nil {
		return domain.TagResponse{}, s.revision, false
	}
	return *s.snapshot, s.revision, true
}

// Loading reports whether an upload is in flight.
func (s *SessionService) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// UpdateMetadata replaces the snapshot metadata.
func (s *SessionService) UpdateMetadata(meta domain.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateMetadataLocked(meta)
}

// UpdateMetadataAt replaces the snapshot metadata if the document is
// still at revision.
func (s *SessionService) UpdateMetadataAt(revision uint64, meta domain.Metadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRevisionLocked(revision); err != nil {
		return err
	}
	return s.updateMetadataLocked(meta)
}

func (s *SessionService) updateMetadataLocked(meta domain.Metadata) error {
	if s.snapshot == nil {
		return domain.ErrNoSession
	}
	next := s.snapshot.ReplaceMetadata(meta)
	s.snapshot = &next
	return nil
}

// UpdateRegionTag sets the tag of the region at index and returns the
// updated region.
func (s *SessionService) UpdateRegionTag(index int, tag string) (domain.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateRegionTagLocked(index, tag)
}

// UpdateRegionTagAt sets the tag of the region at index if the document
// is still at revision.
func (s *SessionService) UpdateRegionTagAt(revision uint64, index int, tag string) (domain.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRevisionLocked(revision); err != nil {
		return domain.Region{}, err
	}
	return s.updateRegionTagLocked(index, tag)
}

func (s *SessionService) updateRegionTagLocked(index int, tag string) (domain.Region, error) {
	if s.snapshot == nil {
		return domain.Region{}, domain.ErrNoSession
	}
	if !domain.IsValidTag(tag) {
		return domain.Region{}, fmt.Errorf("%w: %q", domain.ErrInvalidTag, tag)
	}
	if !s.snapshot.InRange(index) {
		return domain.Region{}, fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}

	next := s.snapshot.ReplaceRegionTag(index, tag)
	s.snapshot = &next
	return next.Structure[index], nil
}

func (s *SessionService) checkRevisionLocked(revision uint64) error {
	if s.snapshot == nil {
		return domain.ErrNoSession
	}
	if revision != s.revision {
		logger.Debug("session: edit for revision %d dropped, document is at %d", revision, s.revision)
		return fmt.Errorf("document replaced: %w", domain.ErrSuperseded)
	}
	return nil
}

// OpenGeneration starts a generation request for the current snapshot.
func (s *SessionService) OpenGeneration() (domain.GenerationRequest, error) {
	snapshot, ok := s.Snapshot()
	if !ok {
		return domain.GenerationRequest{}, domain.ErrNoSession
	}
	return s.generation.Open(snapshot), nil
}

// Generation returns the pipeline owned by the session.
func (s *SessionService) Generation() driving.GenerationService {
	return s.generation
}

// Close discards the session and releases any generated artifact.
func (s *SessionService) Close() error {
	s.mu.Lock()
	s.replaceLocked(nil)
	s.uploadID = ""
	s.loading = false
	s.mu.Unlock()

	return s.generation.Close()
}
