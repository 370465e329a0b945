package preview

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tagger-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
)

// stubSession implements driving.SessionService with a fixed snapshot.
type stubSession struct {
	driving.SessionService
	snapshot *domain.TagResponse
}

func (s *stubSession) Snapshot() (domain.TagResponse, bool) {
	if s.snapshot == nil {
		return domain.TagResponse{}, false
	}
	return *s.snapshot, true
}

func newTestServer(t *testing.T, session *stubSession) (*httptest.Server, *memory.ArtifactStore) {
	t.Helper()
	store := memory.NewArtifactStore()
	srv := NewServer("127.0.0.1:0", "", store, session)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func TestServer_ServesArtifact(t *testing.T) {
	ts, store := newTestServer(t, &stubSession{})
	artifact, err := store.Create(context.Background(), []byte("%PDF-1.7 body"), domain.PDFContentType)
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/artifacts/" + artifact.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, domain.PDFContentType, resp.Header.Get("Content-Type"))
	assert.Equal(t, `inline; filename=remediated.pdf`, resp.Header.Get("Content-Disposition"))
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "%PDF-1.7 body", string(body))
}

func TestServer_ServesRecordedContentType(t *testing.T) {
	ts, store := newTestServer(t, &stubSession{})
	artifact, err := store.Create(context.Background(), []byte("%PDF-2.0"), "application/pdf; version=2.0")
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/artifacts/" + artifact.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf; version=2.0", resp.Header.Get("Content-Type"))
}

func TestServer_EmptyContentTypeFallsBackToPDF(t *testing.T) {
	ts, store := newTestServer(t, &stubSession{})
	artifact, err := store.Create(context.Background(), []byte("x"), "")
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/artifacts/" + artifact.ID + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, domain.PDFContentType, resp.Header.Get("Content-Type"))
}

func TestServer_DownloadDisposition(t *testing.T) {
	ts, store := newTestServer(t, &stubSession{})
	artifact, err := store.Create(context.Background(), []byte("x"), domain.PDFContentType)
	require.NoError(t, err)

	resp, err := http.Get(ts.URL + "/artifacts/" + artifact.ID + "/download")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, `attachment; filename=remediated.pdf`, resp.Header.Get("Content-Disposition"))
}

func TestServer_ReleasedArtifactIsGone(t *testing.T) {
	ts, store := newTestServer(t, &stubSession{})
	artifact, err := store.Create(context.Background(), []byte("x"), domain.PDFContentType)
	require.NoError(t, err)
	require.NoError(t, store.Release(artifact.ID))

	resp, err := http.Get(ts.URL + "/artifacts/" + artifact.ID)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusGone, resp.StatusCode)
}

func TestServer_UnknownArtifact(t *testing.T) {
	ts, _ := newTestServer(t, &stubSession{})

	resp, err := http.Get(ts.URL + "/artifacts/nope")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "artifact not found", body["detail"])
}

func TestServer_Session(t *testing.T) {
	snapshot := &domain.TagResponse{
		Structure: []domain.Region{{Page: 1, Type: "text", Tag: domain.TagH1}},
		Metadata:  domain.Metadata{Filename: "a.pdf"},
	}
	ts, _ := newTestServer(t, &stubSession{snapshot: snapshot})

	resp, err := http.Get(ts.URL + "/session")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got domain.TagResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"h1"}, got.Tags())
}

func TestServer_NoSession(t *testing.T) {
	ts, _ := newTestServer(t, &stubSession{})

	resp, err := http.Get(ts.URL + "/session")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_StartStop(t *testing.T) {
	store := memory.NewArtifactStore()
	srv := NewServer("127.0.0.1:0", "out.pdf", store, &stubSession{})
	assert.Empty(t, srv.BaseURL())
	assert.Empty(t, srv.ArtifactURL("x"))

	require.NoError(t, srv.Start())
	assert.Error(t, srv.Start())

	resp, err := http.Get(srv.BaseURL() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, srv.ArtifactURL("abc"), "/artifacts/abc")

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
	assert.Empty(t, srv.BaseURL())
}
