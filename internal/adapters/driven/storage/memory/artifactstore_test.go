package memory

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
)

func TestArtifactStore_CreateOpen(t *testing.T) {
	store := NewArtifactStore()

	artifact, err := store.Create(context.Background(), []byte("%PDF-1.7"), domain.PDFContentType)
	require.NoError(t, err)
	assert.Equal(t, "artifact-1", artifact.ID)
	assert.Equal(t, int64(8), artifact.Size)
	assert.Equal(t, domain.PDFContentType, artifact.ContentType)
	assert.Equal(t, 1, store.Live())

	rc, err := store.Open(artifact.ID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7", string(data))
}

func TestArtifactStore_CopiesInput(t *testing.T) {
	store := NewArtifactStore()
	buf := []byte("abc")

	artifact, err := store.Create(context.Background(), buf, domain.PDFContentType)
	require.NoError(t, err)
	buf[0] = 'x'

	rc, err := store.Open(artifact.ID)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "abc", string(data))
}

func TestArtifactStore_ReleaseOnce(t *testing.T) {
	store := NewArtifactStore()
	artifact, err := store.Create(context.Background(), []byte("x"), domain.PDFContentType)
	require.NoError(t, err)

	require.NoError(t, store.Release(artifact.ID))
	assert.Equal(t, 0, store.Live())

	err = store.Release(artifact.ID)
	assert.ErrorIs(t, err, domain.ErrArtifactReleased)

	_, err = store.Open(artifact.ID)
	assert.ErrorIs(t, err, domain.ErrArtifactReleased)

	assert.Equal(t, []string{"create:artifact-1", "release:artifact-1"}, store.Events())
}

func TestArtifactStore_Stat(t *testing.T) {
	store := NewArtifactStore()
	artifact, err := store.Create(context.Background(), []byte("%PDF-2.0"), "application/pdf; version=2.0")
	require.NoError(t, err)

	got, err := store.Stat(artifact.ID)
	require.NoError(t, err)
	assert.Equal(t, *artifact, *got)

	got.ContentType = "tampered"
	again, _ := store.Stat(artifact.ID)
	assert.Equal(t, "application/pdf; version=2.0", again.ContentType)

	require.NoError(t, store.Release(artifact.ID))
	_, err = store.Stat(artifact.ID)
	assert.ErrorIs(t, err, domain.ErrArtifactReleased)
	_, err = store.Stat("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtifactStore_UnknownID(t *testing.T) {
	store := NewArtifactStore()

	assert.ErrorIs(t, store.Release("nope"), domain.ErrNotFound)
	_, err := store.Open("nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArtifactStore_CloseReleasesAll(t *testing.T) {
	store := NewArtifactStore()
	ctx := context.Background()
	_, _ = store.Create(ctx, []byte("a"), domain.PDFContentType)
	_, _ = store.Create(ctx, []byte("b"), domain.PDFContentType)

	require.NoError(t, store.Close())

	assert.Equal(t, 0, store.Live())
	assert.Len(t, store.Events(), 4)
}
