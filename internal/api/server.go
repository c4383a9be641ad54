// Package api exposes N-400 generation and intake submissions over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zed-charania/Meridian/internal/pdf"
	"github.com/zed-charania/Meridian/internal/store"
)

const shutdownTimeout = 10 * time.Second

// Options tunes the HTTP surface.
type Options struct {
	MaxBodySize int64
	CORSOrigin  string
	Debug       bool
}

// Server routes HTTP requests to the generation service and the optional
// submission store.
type Server struct {
	service *pdf.Service
	store   store.Store
	opts    Options
	router  chi.Router
}

// NewServer builds the router. st may be nil, in which case the /forms
// routes answer 503.
func NewServer(service *pdf.Service, st store.Store, opts Options) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if opts.MaxBodySize <= 0 {
		return nil, fmt.Errorf("max body size must be positive")
	}

	s := &Server{
		service: service,
		store:   st,
		opts:    opts,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.opts.Debug {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors(s.opts.CORSOrigin))

	r.Get("/health", s.handleHealth)
	r.Get("/fields", s.handleFields)
	r.Get("/test", s.handleTest)
	r.Post("/generate", s.handleGenerate)

	r.Route("/forms", func(r chi.Router) {
		r.Use(s.requireStore)
		r.Post("/", s.handleSaveForm)
		r.Get("/latest", s.handleLatestForm)
		r.Post("/latest/generate", s.handleGenerateLatest)
		r.Get("/{id}", s.handleGetForm)
		r.Post("/{id}/generate", s.handleGenerateForm)
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	log.Println("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
