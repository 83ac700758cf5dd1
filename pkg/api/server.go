// Package api serves boards over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /metrics
//	GET    /boards
//	POST   /boards/{id}
//	GET    /boards/{id}
//	DELETE /boards/{id}
//	POST   /boards/{id}/templates/{name}
//	POST   /boards/{id}/templates/{name}/rows
//	POST   /boards/{id}/reflow/{name}
//	POST   /boards/{id}/events
//	POST   /boards/{id}/undo
//	POST   /boards/{id}/redo
//	GET    /boards/{id}/presence/{user}
//
// Requests act for the user named by the "user" query parameter, or by the
// body of an events request. Errors are returned as {"error", "code"} JSON
// with a status derived from the error code.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/brainboard/pkg/board"
	"github.com/matzehuels/brainboard/pkg/interaction"
	"github.com/matzehuels/brainboard/pkg/observability"
)

// Server routes HTTP requests to boards in a registry.
type Server struct {
	registry *board.Registry
	logger   *log.Logger
	metrics  http.Handler

	mu       sync.Mutex
	machines map[machineKey]*interaction.Machine
}

type machineKey struct{ board, user string }

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetricsHandler replaces the /metrics handler.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// New returns a server over reg.
func New(reg *board.Registry, opts ...Option) *Server {
	s := &Server{
		registry: reg,
		logger:   log.Default(),
		metrics:  promhttp.Handler(),
		machines: map[machineKey]*interaction.Machine{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", s.metrics)

	r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Post("/", s.handleCreate)
			r.Delete("/", s.handleDelete)
			r.Post("/templates/{name}", s.handleGenerate)
			r.Post("/templates/{name}/rows", s.handleAddRow)
			r.Post("/reflow/{name}", s.handleReflow)
			r.Post("/events", s.handleEvents)
			r.Post("/undo", s.handleUndo)
			r.Post("/redo", s.handleRedo)
			r.Get("/presence/{user}", s.handlePresence)
		})
	})
	return r
}

// observe logs each request and reports it to the HTTP hooks under its
// route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		d := time.Since(start)
		observability.HTTP().OnRequest(r.Context(), r.Method, route, status, d)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "duration", d)
	})
}

// machine returns the interaction machine for user on b, creating it on
// first use.
func (s *Server) machine(b *board.Board, user string) *interaction.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := machineKey{b.ID(), user}
	m, ok := s.machines[k]
	if !ok {
		m = interaction.New(b, user)
		s.machines[k] = m
	}
	return m
}

func (s *Server) forget(boardID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.machines {
		if k.board == boardID {
			delete(s.machines, k)
		}
	}
}
