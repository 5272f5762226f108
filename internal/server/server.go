// Package server implements the HTTP layout API.
//
// The API computes layouts once and archives them under a UUID, so a
// visualization can be fetched or re-rendered later without re-running the
// pipeline:
//
//	POST   /v1/layouts          compute and archive a layout
//	GET    /v1/layouts/{id}     fetch the archived layout JSON
//	GET    /v1/layouts/{id}/svg render the archived layout as SVG
//	DELETE /v1/layouts/{id}     remove an archived layout
//	GET    /healthz             liveness probe
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/t0mdavid-m/seqviz/pkg/errors"
	"github.com/t0mdavid-m/seqviz/pkg/pipeline"
	"github.com/t0mdavid-m/seqviz/pkg/render/dendrosvg"
	"github.com/t0mdavid-m/seqviz/pkg/render/nodelink"
	"github.com/t0mdavid-m/seqviz/pkg/store"
)

// Server wires the pipeline and the archive store into an HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
}

// New creates a server. A nil store gets an in-memory store.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger) *Server {
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, store: st, logger: logger}
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/layouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/{id}", s.handleGet)
		r.Get("/{id}/svg", s.handleSVG)
		r.Delete("/{id}", s.handleDelete)
	})
	return r
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

// createResponse is the POST /v1/layouts response body.
type createResponse struct {
	ID        string          `json:"id"`
	RunID     string          `json:"run_id"`
	CreatedAt time.Time       `json:"created_at"`
	Layout    json.RawMessage `json:"layout"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return
	}
	// The server returns artifacts on demand; creation only stores JSON.
	opts.Formats = []string{pipeline.FormatJSON}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.store.Put(r.Context(), result.Layout)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "archive layout"))
		return
	}
	s.logger.Info("layout archived", "id", rec.ID, "run_id", result.RunID, "leaves", result.Stats.LeafCount)

	s.writeJSON(w, http.StatusCreated, createResponse{
		ID:        rec.ID,
		RunID:     result.RunID,
		CreatedAt: rec.CreatedAt,
		Layout:    json.RawMessage(result.Artifacts[pipeline.FormatJSON]),
	})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, mapStoreError(err))
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, mapStoreError(err))
		return
	}

	var svg []byte
	if rec.Layout.IsNodelink() {
		svg, err = nodelink.RenderSVG(rec.Layout.DOT)
	} else {
		opts := []dendrosvg.Option{dendrosvg.WithLabels()}
		if r.URL.Query().Get("highlight") == "true" {
			opts = append(opts, dendrosvg.WithHighlight())
		}
		svg, err = dendrosvg.Render(rec.Layout, opts...)
	}
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render svg"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, mapStoreError(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func mapStoreError(err error) error {
	if err == store.ErrNotFound {
		return errors.Wrap(errors.ErrCodeLayoutNotFound, err, "layout not found")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "store")
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	s.writeJSON(w, statusFor(code), errorResponse{
		Code:    string(code),
		Message: errors.UserMessage(err),
	})
}

// statusFor maps the error taxonomy to HTTP status codes. Input and
// configuration mistakes are 400s, defective trees are 422s, and anything
// unclassified is a 500.
func statusFor(code errors.Code) int {
	switch {
	case strings.HasPrefix(string(code), "INVALID_"), code == errors.ErrCodeConfiguration:
		return http.StatusBadRequest
	case strings.HasPrefix(string(code), "STRUCTURAL"), code == errors.ErrCodeConsistency:
		return http.StatusUnprocessableEntity
	case code == errors.ErrCodeNotFound, code == errors.ErrCodeLayoutNotFound, code == errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}
