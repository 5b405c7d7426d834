// Package server exposes the inspection pipeline over HTTP.
//
// All routes live under /api/v1 and speak JSON, except the diagram and render
// endpoints which return text and images. Documents to inspect are sent as
// the raw request body.
//
//	POST   /api/v1/transform            body: JSON document   → GraphNode tree
//	POST   /api/v1/diagram?format=&theme= body: JSON document → Mermaid or DOT text
//	POST   /api/v1/render?format=&theme=  body: JSON document → SVG or PNG
//	POST   /api/v1/diff?all=true        body: {"left": "...", "right": "..."}
//	POST   /api/v1/path                 body: {"path": ["root", "a", "0"]}
//	GET    /api/v1/documents
//	POST   /api/v1/documents            body: {"name": "...", "content": "..."}
//	GET    /api/v1/documents/{id}
//	GET    /api/v1/documents/{id}/tree
//	DELETE /api/v1/documents/{id}
//	GET    /healthz
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/jsonscope/pkg/pipeline"
	"github.com/matzehuels/jsonscope/pkg/store"
)

// Options configures a [Server]. Zero fields take the defaults below.
type Options struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

const (
	defaultAddr            = "127.0.0.1:8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultMaxBodyBytes    = 10 << 20
)

func (o *Options) setDefaults() {
	if o.Addr == "" {
		o.Addr = defaultAddr
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = defaultWriteTimeout
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	if o.MaxBodyBytes == 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
}

// Server is the HTTP API. Handlers share one Runner; it holds no
// per-request state.
type Server struct {
	runner *pipeline.Runner
	store  store.Store
	logger *log.Logger
	opts   Options
	router chi.Router
}

// New returns a server. docs may be nil, in which case the document routes
// answer 501.
func New(runner *pipeline.Runner, docs store.Store, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = log.Default()
	}
	opts.setDefaults()
	s := &Server{
		runner: runner,
		store:  docs,
		logger: logger,
		opts:   opts,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/transform", s.handleTransform)
		r.Post("/diagram", s.handleDiagram)
		r.Post("/render", s.handleRender)
		r.Post("/diff", s.handleDiff)
		r.Post("/path", s.handlePath)

		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleSaveDocument)
			r.Get("/{id}", s.handleGetDocument)
			r.Get("/{id}/tree", s.handleDocumentTree)
			r.Delete("/{id}", s.handleDeleteDocument)
		})
	})
	return r
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
