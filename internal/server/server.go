// Package server exposes the solve pipeline and the run history over HTTP.
//
// Routes:
//
//	GET    /healthz        build information
//	POST   /v1/solve       solve the input text in the request body
//	GET    /v1/runs        list saved runs, newest first
//	GET    /v1/runs/{id}   fetch one run with its slide order
//	DELETE /v1/runs/{id}   delete a run
//
// Errors are JSON objects of the form {"error": {"code": ..., "message": ...}}
// with the status derived from the error code.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/slideshow/pkg/buildinfo"
	errs "github.com/matzehuels/slideshow/pkg/errors"
	sio "github.com/matzehuels/slideshow/pkg/io"
	"github.com/matzehuels/slideshow/pkg/observability"
	"github.com/matzehuels/slideshow/pkg/pipeline"
	"github.com/matzehuels/slideshow/pkg/store"
)

const (
	// DefaultMaxBodyBytes bounds the size of a solve request body.
	DefaultMaxBodyBytes int64 = 64 << 20

	// DefaultListLimit is the number of runs listed when no limit is given.
	DefaultListLimit = 50

	// DefaultDataset labels uploads that do not name their dataset.
	DefaultDataset = "upload"

	shutdownTimeout = 5 * time.Second
)

// Options configures a [Server].
type Options struct {
	// MaxBodyBytes bounds solve request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64

	// Workers is passed to the pipeline for every solve.
	Workers int
}

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New creates a server. A nil store disables saving and the /v1/runs routes.
func New(runner *pipeline.Runner, st store.Store, logger *log.Logger, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		runner: runner,
		store:  st,
		logger: logger,
		opts:   opts,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.instrument("/healthz", s.handleHealth))
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.instrument("/v1/solve", s.handleSolve))
		if s.store != nil {
			r.Get("/runs", s.instrument("/v1/runs", s.handleListRuns))
			r.Get("/runs/{id}", s.instrument("/v1/runs/{id}", s.handleGetRun))
			r.Delete("/runs/{id}", s.instrument("/v1/runs/{id}", s.handleDeleteRun))
		}
	})
	return r
}

// Serve listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting HTTP server", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	}
}

// handlerFunc is an HTTP handler that reports failures by returning them.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// instrument adapts h to http.HandlerFunc, writes returned errors and fires
// the HTTP hooks under route.
func (s *Server) instrument(route string, h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		hooks := observability.HTTP()
		start := time.Now()
		hooks.OnRequest(ctx, r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		if err := h(ww, r); err != nil {
			hooks.OnError(ctx, r.Method, route, err)
			if ww.Status() == 0 {
				s.writeError(ww, r, err)
			} else {
				s.logger.Warn("write response", "path", r.URL.Path, "err", err)
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(ctx, r.Method, route, status, time.Since(start))
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
		buildinfo.Info
	}{"ok", buildinfo.Get()})
}

// solveResponse is the body of a successful solve.
type solveResponse struct {
	RunID  string `json:"run_id,omitempty"`
	Cached bool   `json:"cached"`
	Photos int    `json:"photos"`
	sio.Document
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) error {
	q := r.URL.Query()

	opts := pipeline.Options{Workers: s.opts.Workers}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "invalid seed %q", v)
		}
		opts.Seed = seed
	}
	if v := q.Get("drop_unpaired"); v != "" {
		drop, err := strconv.ParseBool(v)
		if err != nil {
			return errs.New(errs.ErrCodeInvalidInput, "invalid drop_unpaired %q", v)
		}
		opts.DropUnpaired = drop
	}
	opts.Refresh = q.Get("refresh") == "true"

	dataset := q.Get("dataset")
	if dataset == "" {
		dataset = DefaultDataset
	}
	if err := errs.ValidateDatasetName(dataset); err != nil {
		return err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		return err
	}
	in, err := sio.ReadInput(bytes.NewReader(body))
	if err != nil {
		return err
	}

	result, err := s.runner.Execute(r.Context(), in, opts)
	if err != nil {
		return err
	}

	resp := solveResponse{
		Cached:   result.CacheInfo.ResultHit,
		Photos:   len(result.Input.Photos),
		Document: pipeline.NewDocument(result, pipeline.RenderOptions{Dataset: dataset}),
	}
	if s.store != nil {
		run := store.NewRun(dataset, result)
		if err := s.store.Save(r.Context(), run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		resp.RunID = run.ID
	}
	return writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) error {
	limit := DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return errs.New(errs.ErrCodeInvalidInput, "invalid limit %q", v)
		}
		limit = n
	}
	runs, err := s.store.List(r.Context(), limit)
	if err != nil {
		return err
	}
	if runs == nil {
		runs = []*store.Run{}
	}
	return writeJSON(w, http.StatusOK, struct {
		Runs []*store.Run `json:"runs"`
	}{runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateRunID(id); err != nil {
		return err
	}
	run, err := s.store.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")
	if err := errs.ValidateRunID(id); err != nil {
		return err
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	var body errorBody
	body.Error.Code = string(errs.GetCode(err))
	body.Error.Message = errs.UserMessage(err)
	if body.Error.Code == "" {
		body.Error.Code = string(errs.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err)
		if errs.GetCode(err) == "" {
			body.Error.Message = "internal error"
		}
	}
	if status == http.StatusRequestEntityTooLarge {
		body.Error.Code = string(errs.ErrCodeInvalidInput)
		body.Error.Message = fmt.Sprintf("request body exceeds %d bytes", s.opts.MaxBodyBytes)
	}
	_ = writeJSON(w, status, body)
}

// statusFor maps an error to its HTTP status code.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	switch errs.GetCode(err) {
	case errs.ErrCodeInvalidInput, errs.ErrCodeInvalidFormat, errs.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errs.ErrCodeNotFound, errs.ErrCodeFileNotFound, errs.ErrCodeRunNotFound:
		return http.StatusNotFound
	case errs.ErrCodeUnpairedVertical, errs.ErrCodeConsistencyViolation:
		return http.StatusUnprocessableEntity
	case errs.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errs.ErrCodeNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
