package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSession indicates no document has been tagged yet.
	ErrNoSession = errors.New("no tagged document in session")

	// ErrIndexOutOfRange indicates a region index outside the structure.
	// Callers derive indices from the current snapshot, so this is a defect.
	ErrIndexOutOfRange = errors.New("region index out of range")

	// ErrInvalidTag indicates a tag outside the closed vocabulary.
	ErrInvalidTag = errors.New("invalid region tag")

	// Editor Errors.

	// ErrNotEditable indicates a metadata field that cannot be edited.
	ErrNotEditable = errors.New("field is not editable")

	// ErrNotEditing indicates a draft operation outside an edit.
	ErrNotEditing = errors.New("editor has no open draft")

	// Artifact Errors.

	// ErrArtifactReleased indicates a handle used or released after release.
	ErrArtifactReleased = errors.New("artifact already released")

	// ErrNoArtifact indicates no generated artifact is available.
	ErrNoArtifact = errors.New("no generated artifact")

	// ErrSuperseded indicates a request replaced by a newer one before
	// its result could be applied.
	ErrSuperseded = errors.New("request superseded")

	// ErrNotPDF indicates the source file is not a readable PDF.
	ErrNotPDF = errors.New("file is not a valid PDF")
)

// NetworkError is a transport failure talking to a remote service.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-2xx answer from a remote service.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
}

// TaggingError is an upload failure: the tagging request did not
// produce a snapshot.
type TaggingError struct {
	Err error
}

func (e *TaggingError) Error() string {
	return fmt.Sprintf("upload failed: %v", e.Err)
}

func (e *TaggingError) Unwrap() error {
	return e.Err
}

// GenerationError is a generation failure: the render request did not
// produce an artifact.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// FailureKind classifies remote call failures for display.
type FailureKind string

const (
	FailureNetwork FailureKind = "network"
	FailureService FailureKind = "service"
	FailureUnknown FailureKind = "unknown"
)

// ClassifyFailure reports which kind of failure err wraps.
func ClassifyFailure(err error) FailureKind {
	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return FailureNetwork
	}
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return FailureService
	}
	return FailureUnknown
}
