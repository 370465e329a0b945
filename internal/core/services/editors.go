package services

import (
	"errors"
	"fmt"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
)

// MetadataEditor keeps a draft copy of the snapshot metadata.
// Nothing reaches the session until Confirm.
type MetadataEditor struct {
	session  driving.SessionService
	revision uint64
	draft    domain.Metadata
	editing  bool
}

// NewMetadataEditor creates an editor over session.
func NewMetadataEditor(session driving.SessionService) *MetadataEditor {
	return &MetadataEditor{session: session}
}

// Begin opens a draft seeded from the committed metadata.
// The draft is bound to the current document; Confirm fails with
// domain.ErrSuperseded if the document is replaced in between.
func (e *MetadataEditor) Begin() error {
	snapshot, revision, ok := e.session.Current()
	if !ok {
		return domain.ErrNoSession
	}
	e.revision = revision
	e.draft = snapshot.Metadata
	e.editing = true
	return nil
}

// Editing reports whether a draft is open.
func (e *MetadataEditor) Editing() bool {
	return e.editing
}

// Set changes one field of the draft.
func (e *MetadataEditor) Set(field domain.MetadataField, value string) error {
	if !e.editing {
		return domain.ErrNotEditing
	}
	if !field.IsEditable() {
		return fmt.Errorf("%w: %s", domain.ErrNotEditable, field)
	}
	e.draft = e.draft.With(field, value)
	return nil
}

// Draft returns the draft, or the committed metadata outside an edit.
func (e *MetadataEditor) Draft() domain.Metadata {
	if e.editing {
		return e.draft
	}
	snapshot, _ := e.session.Snapshot()
	return snapshot.Metadata
}

// Confirm commits the draft wholesale. The draft stays open on error,
// except when the document was replaced: that draft is discarded.
func (e *MetadataEditor) Confirm() error {
	if !e.editing {
		return domain.ErrNotEditing
	}
	if err := e.session.UpdateMetadataAt(e.revision, e.draft); err != nil {
		if errors.Is(err, domain.ErrSuperseded) {
			e.Cancel()
		}
		return err
	}
	e.Cancel()
	return nil
}

// Cancel discards the draft.
func (e *MetadataEditor) Cancel() {
	e.draft = domain.Metadata{}
	e.editing = false
}

// RegionTagEditor drafts a tag change for one region.
type RegionTagEditor struct {
	session  driving.SessionService
	revision uint64
	index    int
	draft    string
	editing  bool
}

// NewRegionTagEditor creates an editor over session.
func NewRegionTagEditor(session driving.SessionService) *RegionTagEditor {
	return &RegionTagEditor{session: session}
}

// Begin opens a draft for the region at index, seeded with its current tag.
func (e *RegionTagEditor) Begin(index int) error {
	snapshot, revision, ok := e.session.Current()
	if !ok {
		return domain.ErrNoSession
	}
	if !snapshot.InRange(index) {
		return fmt.Errorf("%w: %d", domain.ErrIndexOutOfRange, index)
	}
	e.revision = revision
	e.index = index
	e.draft = snapshot.Structure[index].Tag
	e.editing = true
	return nil
}

// Editing reports whether a draft is open.
func (e *RegionTagEditor) Editing() bool {
	return e.editing
}

// Index returns the region being edited.
func (e *RegionTagEditor) Index() int {
	return e.index
}

// Draft returns the drafted tag.
func (e *RegionTagEditor) Draft() string {
	return e.draft
}

// Select sets the drafted tag.
func (e *RegionTagEditor) Select(tag string) error {
	if !e.editing {
		return domain.ErrNotEditing
	}
	if !domain.IsValidTag(tag) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTag, tag)
	}
	e.draft = tag
	return nil
}

// Next moves the draft to the following tag in the vocabulary.
func (e *RegionTagEditor) Next() {
	e.step(1)
}

// Prev moves the draft to the preceding tag in the vocabulary.
func (e *RegionTagEditor) Prev() {
	e.step(-1)
}

func (e *RegionTagEditor) step(delta int) {
	if !e.editing {
		return
	}
	n := len(domain.AllTags)
	i := domain.TagIndex(e.draft)
	if i < 0 {
		// Tags from the service outside the vocabulary start the cycle over.
		e.draft = domain.AllTags[0]
		return
	}
	e.draft = domain.AllTags[((i+delta)%n+n)%n]
}

// Confirm writes the drafted tag to the session. The draft stays open on
// error, except when the document was replaced.
func (e *RegionTagEditor) Confirm() error {
	if !e.editing {
		return domain.ErrNotEditing
	}
	if _, err := e.session.UpdateRegionTagAt(e.revision, e.index, e.draft); err != nil {
		if errors.Is(err, domain.ErrSuperseded) {
			e.Cancel()
		}
		return err
	}
	e.Cancel()
	return nil
}

// Cancel discards the draft.
func (e *RegionTagEditor) Cancel() {
	e.draft = ""
	e.editing = false
}
