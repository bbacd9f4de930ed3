package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/hemicycle/pkg/buildinfo"
	"github.com/matzehuels/hemicycle/pkg/chart"
	"github.com/matzehuels/hemicycle/pkg/config"
	herrors "github.com/matzehuels/hemicycle/pkg/errors"
	"github.com/matzehuels/hemicycle/pkg/export"
	"github.com/matzehuels/hemicycle/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 1 << 20

// Header names set on every chart response.
const (
	HeaderRequestID = "X-Request-ID"
	HeaderCache     = "X-Cache"
)

// Server handles chart requests.
type Server struct {
	runner       *pipeline.Runner
	logger       *log.Logger
	defaultScale float64
	maxRows      int
	maxBodyBytes int64
}

// Option configures a [Server].
type Option func(*Server)

// WithDefaultScale sets the scale used when a request omits one.
func WithDefaultScale(scale float64) Option {
	return func(s *Server) { s.defaultScale = scale }
}

// WithMaxRows bounds the row planner for every request. Zero keeps
// chart.DefaultMaxRows.
func WithMaxRows(n int) Option {
	return func(s *Server) { s.maxRows = n }
}

// WithMaxBodyBytes overrides [DefaultMaxBodyBytes].
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// New creates a server backed by runner. A nil logger uses the runner's.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{
		runner:       runner,
		logger:       logger,
		defaultScale: config.DefaultScale,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed HTTP handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/charts", func(r chi.Router) {
		r.Post("/", s.handleChart)
		r.Post("/{format}", s.handleExport)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// =============================================================================
// Handlers
// =============================================================================

// chartRequest is the request body of both chart endpoints. Scale is a
// pointer so an explicit zero is rejected instead of replaced by the default.
type chartRequest struct {
	Scale  *float64      `json:"scale"`
	Groups []chart.Group `json:"groups"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": buildinfo.Get(),
	})
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	s.serve(w, r, export.FormatJSON, false)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "format")
	format, err := export.ParseFormat(name)
	if err != nil {
		writeError(w, herrors.Wrap(herrors.ErrCodeNotFound, err, "no export format %q", name))
		return
	}
	s.serve(w, r, format, true)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request, format export.Format, attachment bool) {
	opts, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{string(format)}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		if !herrors.IsValidation(err) {
			s.logger.Error("chart request failed", "request_id", RequestIDFromContext(r.Context()), "err", err)
		}
		writeError(w, err)
		return
	}

	cacheState := "miss"
	if result.CacheInfo.ChartHit {
		cacheState = "hit"
	}
	w.Header().Set(HeaderCache, cacheState)
	w.Header().Set("Content-Type", format.ContentType())
	if attachment {
		w.Header().Set("Content-Disposition", `attachment; filename="chart`+format.Extension()+`"`)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[string(format)])
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request) (pipeline.Options, error) {
	var req chartRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return pipeline.Options{}, herrors.Wrap(herrors.ErrCodeInvalidInput, err, "decode request body")
	}

	opts := pipeline.Options{Scale: s.defaultScale, MaxRows: s.maxRows, Groups: req.Groups}
	if req.Scale != nil {
		opts.Scale = *req.Scale
	}
	return opts, nil
}
