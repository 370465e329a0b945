package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func uploadedSession(t *testing.T) *SessionService {
	t.Helper()
	f := newSessionFixture()
	_, err := f.session.Upload(context.Background(), file("report.pdf"))
	require.NoError(t, err)
	return f.session
}

func TestMetadataEditor_NoSession(t *testing.T) {
	editor := NewMetadataEditor(newSessionFixture().session)

	assert.ErrorIs(t, editor.Begin(), domain.ErrNoSession)
	assert.False(t, editor.Editing())
	assert.ErrorIs(t, editor.Set(domain.FieldTitle, "x"), domain.ErrNotEditing)
	assert.ErrorIs(t, editor.Confirm(), domain.ErrNotEditing)
}

func TestMetadataEditor_ConfirmCommitsDraft(t *testing.T) {
	session := uploadedSession(t)
	editor := NewMetadataEditor(session)

	require.NoError(t, editor.Begin())
	require.NoError(t, editor.Set(domain.FieldAuthor, "Grace"))
	require.NoError(t, editor.Set(domain.FieldKeywords, "annual, finance"))

	committed, _ := session.Snapshot()
	assert.Empty(t, committed.Metadata.Author, "draft must not leak before confirm")
	assert.Equal(t, "Grace", editor.Draft().Author)

	require.NoError(t, editor.Confirm())
	assert.False(t, editor.Editing())

	committed, _ = session.Snapshot()
	assert.Equal(t, "Grace", committed.Metadata.Author)
	assert.Equal(t, "annual, finance", committed.Metadata.Keywords)
	assert.Equal(t, "Annual Report", committed.Metadata.Title)
	assert.Equal(t, "D:20240115103000Z", committed.Metadata.CreationDate)
}

func TestMetadataEditor_CancelDiscardsDraft(t *testing.T) {
	session := uploadedSession(t)
	editor := NewMetadataEditor(session)

	require.NoError(t, editor.Begin())
	require.NoError(t, editor.Set(domain.FieldTitle, "Draft title"))
	editor.Cancel()

	committed, _ := session.Snapshot()
	assert.Equal(t, "Annual Report", committed.Metadata.Title)
	assert.Equal(t, "Annual Report", editor.Draft().Title)

	// A new edit starts from the committed values.
	require.NoError(t, editor.Begin())
	assert.Equal(t, "Annual Report", editor.Draft().Title)
}

func TestMetadataEditor_ReadOnlyFields(t *testing.T) {
	editor := NewMetadataEditor(uploadedSession(t))
	require.NoError(t, editor.Begin())

	for _, field := range []domain.MetadataField{domain.FieldFilename, domain.FieldCreationDate, domain.FieldModDate} {
		err := editor.Set(field, "x")
		assert.ErrorIs(t, err, domain.ErrNotEditable, field)
	}
}

func TestRegionTagEditor_ConfirmAndCancel(t *testing.T) {
	session := uploadedSession(t)
	editor := NewRegionTagEditor(session)

	require.NoError(t, editor.Begin(1))
	assert.Equal(t, 1, editor.Index())
	assert.Equal(t, domain.TagTitle, editor.Draft())

	require.NoError(t, editor.Select(domain.TagH2))
	editor.Cancel()
	snapshot, _ := session.Snapshot()
	assert.Equal(t, domain.TagTitle, snapshot.Structure[1].Tag)

	require.NoError(t, editor.Begin(1))
	require.NoError(t, editor.Select(domain.TagH2))
	require.NoError(t, editor.Confirm())
	assert.False(t, editor.Editing())

	snapshot, _ = session.Snapshot()
	assert.Equal(t, []string{"paragraph", "h2", "image"}, snapshot.Tags())
}

func TestRegionTagEditor_Errors(t *testing.T) {
	editor := NewRegionTagEditor(newSessionFixture().session)
	assert.ErrorIs(t, editor.Begin(0), domain.ErrNoSession)

	editor = NewRegionTagEditor(uploadedSession(t))
	assert.ErrorIs(t, editor.Begin(7), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, editor.Select(domain.TagH1), domain.ErrNotEditing)

	require.NoError(t, editor.Begin(0))
	assert.ErrorIs(t, editor.Select("banner"), domain.ErrInvalidTag)
	assert.Equal(t, domain.TagParagraph, editor.Draft())
}

func TestRegionTagEditor_Cycle(t *testing.T) {
	editor := NewRegionTagEditor(uploadedSession(t))
	require.NoError(t, editor.Begin(1))

	editor.Prev()
	assert.Equal(t, domain.AllTags[len(domain.AllTags)-1], editor.Draft())

	editor.Next()
	editor.Next()
	assert.Equal(t, domain.AllTags[1], editor.Draft())
}

func TestRegionTagEditor_CycleFromUnknownTag(t *testing.T) {
	f := newSessionFixture()
	f.tagger.byName["odd.pdf"] = &domain.TagResponse{
		Structure: []domain.Region{{Page: 1, Type: "text", Tag: "marginalia"}},
	}
	_, err := f.session.Upload(context.Background(), file("odd.pdf"))
	require.NoError(t, err)

	editor := NewRegionTagEditor(f.session)
	require.NoError(t, editor.Begin(0))
	assert.Equal(t, "marginalia", editor.Draft())

	editor.Next()
	assert.Equal(t, domain.AllTags[0], editor.Draft())
}

func TestMetadataEditor_DocumentReplacedBeforeConfirm(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	_, err := f.session.Upload(ctx, file("report.pdf"))
	require.NoError(t, err)

	editor := NewMetadataEditor(f.session)
	require.NoError(t, editor.Begin())
	require.NoError(t, editor.Set(domain.FieldAuthor, "Grace"))

	_, err = f.session.Upload(ctx, file("a.pdf"))
	require.NoError(t, err)

	assert.ErrorIs(t, editor.Confirm(), domain.ErrSuperseded)
	assert.False(t, editor.Editing())

	snapshot, _ := f.session.Snapshot()
	assert.Equal(t, "a.pdf", snapshot.Metadata.Filename)
	assert.Empty(t, snapshot.Metadata.Author)
	assert.Empty(t, snapshot.Metadata.CreationDate)
}

func TestMetadataEditor_RetagDoesNotInvalidateDraft(t *testing.T) {
	session := uploadedSession(t)
	editor := NewMetadataEditor(session)
	require.NoError(t, editor.Begin())
	require.NoError(t, editor.Set(domain.FieldSubject, "Finance"))

	_, err := session.UpdateRegionTag(0, domain.TagH1)
	require.NoError(t, err)

	require.NoError(t, editor.Confirm())
	snapshot, _ := session.Snapshot()
	assert.Equal(t, "Finance", snapshot.Metadata.Subject)
	assert.Equal(t, domain.TagH1, snapshot.Structure[0].Tag)
}

func TestRegionTagEditor_DocumentReplacedBeforeConfirm(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()
	_, err := f.session.Upload(ctx, file("report.pdf"))
	require.NoError(t, err)

	editor := NewRegionTagEditor(f.session)
	require.NoError(t, editor.Begin(0))
	require.NoError(t, editor.Select(domain.TagH1))

	require.NoError(t, f.session.Load(*oneRegionDoc("saved.pdf")))

	assert.ErrorIs(t, editor.Confirm(), domain.ErrSuperseded)
	assert.False(t, editor.Editing())

	snapshot, _ := f.session.Snapshot()
	assert.Equal(t, []string{domain.TagParagraph}, snapshot.Tags())
}
