// Package api serves blocks games over HTTP. Each session owns one engine;
// clients send key events and elapsed-time samples and read back state,
// the board and the raw vertex frame.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/tui-blocks/internal/config"
)

// Server is the HTTP session server.
type Server struct {
	cfg    config.APIConfig
	store  *Store
	router chi.Router
	server *http.Server
	logger *log.Logger
}

// NewServer builds the router and the underlying http.Server from cfg.
func NewServer(cfg config.APIConfig, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "blocks-api",
		})
	}

	s := &Server{
		cfg:    cfg,
		store:  NewStore(cfg.SessionTTL, cfg.MaxSession, logger),
		router: chi.NewRouter(),
		logger: logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(chimid.RequestID)
	r.Use(chimid.Recoverer)
	r.Use(accessLog(s.logger))
	r.Use(compress)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Delete("/", s.deleteSession)
			r.Post("/keys", s.postKey)
			r.Post("/update", s.postUpdate)
			r.Get("/frame", s.getFrame)
			r.Get("/board", s.getBoard)
		})
	})
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the session store.
func (s *Server) Store() *Store {
	return s.store
}

// ListenAndServe serves until SIGINT or SIGTERM, sweeping idle sessions in
// the background.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "address", s.cfg.Address, "session_ttl", s.cfg.SessionTTL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.store.RunSweeper(ctx, sweepInterval(s.cfg.SessionTTL))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("api: %w", err)
	case <-done:
	}

	s.logger.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Address
}

func sweepInterval(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return 0
	}
	if iv := ttl / 4; iv > time.Second {
		return iv
	}
	return time.Second
}
