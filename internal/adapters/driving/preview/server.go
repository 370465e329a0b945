// Package preview serves generated artifacts over a loopback HTTP server
// so they can be opened in a browser or PDF viewer.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/custodia-labs/tagger-cli/internal/core/domain"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tagger-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tagger-cli/internal/logger"
)

// Server is the loopback preview server.
type Server struct {
	addr      string
	filename  string
	artifacts driven.ArtifactReader
	session   driving.SessionService

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
	errChan  chan error
}

// NewServer creates a server for addr, e.g. "127.0.0.1:0".
// filename is suggested to clients in Content-Disposition.
func NewServer(addr, filename string, artifacts driven.ArtifactReader, session driving.SessionService) *Server {
	if filename == "" {
		filename = domain.DefaultOutputFilename
	}
	return &Server{
		addr:      addr,
		filename:  filename,
		artifacts: artifacts,
		session:   session,
		errChan:   make(chan error, 1),
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/session", s.handleSession)
	r.Get("/artifacts/{id}", s.handleArtifact("inline"))
	r.Get("/artifacts/{id}/download", s.handleArtifact("attachment"))
	return r
}

// Start listens on the configured address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return fmt.Errorf("preview server already started")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			select {
			case s.errChan <- err:
			default:
			}
		}
	}()

	logger.Debug("preview: listening on %s", listener.Addr())
	return nil
}

// Err reports a serve failure after Start.
func (s *Server) Err() <-chan error {
	return s.errChan
}

// Stop shuts the server down.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.server.Shutdown(ctx)
	s.server = nil
	s.listener = nil
	return err
}

// BaseURL returns the server root, or "" before Start.
func (s *Server) BaseURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return "http://" + s.listener.Addr().String()
}

// ArtifactURL returns the preview address of artifact id.
func (s *Server) ArtifactURL(id string) string {
	base := s.BaseURL()
	if base == "" {
		return ""
	}
	return base + "/artifacts/" + id
}

func (s *Server) handleSession(w http.ResponseWriter, _ *http.Request) {
	snapshot, ok := s.session.Snapshot()
	if !ok {
		writeError(w, http.StatusNotFound, domain.ErrNoSession.Error())
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleArtifact(disposition string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		artifact, err := s.artifacts.Stat(id)
		if err != nil {
			writeArtifactError(w, id, err)
			return
		}
		rc, err := s.artifacts.Open(id)
		if err != nil {
			writeArtifactError(w, id, err)
			return
		}
		defer rc.Close()

		contentType := artifact.ContentType
		if contentType == "" {
			contentType = domain.PDFContentType
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": s.filename}))
		w.Header().Set("Cache-Control", "no-store")
		if _, err := io.Copy(w, rc); err != nil {
			logger.Debug("preview: write artifact %s: %v", id, err)
		}
	}
}

func writeArtifactError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrArtifactReleased):
		writeError(w, http.StatusGone, "artifact is no longer available")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "artifact not found")
	default:
		logger.Warn("preview: open artifact %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "could not open artifact")
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.Debug("preview: %s %s %d %s [%s]", r.Method, r.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
