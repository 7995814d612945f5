package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/bigpicture/pkg/buildinfo"
	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// Config configures a [Server].
type Config struct {
	// Layout is the starting geometry every session copies.
	Layout *layout.Layout
	// Title is shown in the viewer's header.
	Title string
	// SessionTTL overrides [DefaultSessionTTL].
	SessionTTL time.Duration
	// Logger receives request logs. Nil discards them.
	Logger *log.Logger
}

// Server serves the interactive viewer for one layout.
type Server struct {
	store  *Store
	title  string
	logger *log.Logger
	router chi.Router
}

// New creates a server for cfg.Layout.
func New(cfg Config) (*Server, error) {
	if cfg.Layout == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "server needs a layout")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	title := cfg.Title
	if title == "" {
		title = "bigpicture"
	}

	s := &Server{
		store:  NewStore(cfg.Layout.Export(), cfg.SessionTTL),
		title:  title,
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

// Store returns the session store.
func (s *Server) Store() *Store { return s.store }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthBody{
			Status:   "ok",
			Build:    buildinfo.Get(),
			Sessions: s.store.Len(),
		})
	})

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGeometry)
			r.Delete("/", s.handleDelete)
			r.Post("/toggle/{box}", s.handleToggle)
			r.Post("/expand-all", s.handleExpandAll)
			r.Post("/collapse-all", s.handleCollapseAll)
			r.Get("/search", s.handleSearch)
			r.Get("/svg", s.handleSVG)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully. Idle sessions are swept in the background.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.store.RunCleanup(ctx, time.Minute)

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("viewer listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		return srv.Shutdown(shutdownCtx)
	}
}

// healthBody is the JSON shape of /healthz.
type healthBody struct {
	Status   string         `json:"status"`
	Build    buildinfo.Info `json:"build"`
	Sessions int            `json:"sessions"`
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := code.HTTPStatus()
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "code", code, "error", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
