// Package web serves the promotional landing page: the rendered page and
// its static assets, the signup API, and the per-page-view reveal sessions
// that drive staged section animations.
package web

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/daily-aivey/soundchain-landing-page-new/internal/platform/timeouts"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/reveal"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/services/web/static"
	"github.com/daily-aivey/soundchain-landing-page-new/internal/signup"
)

//go:embed manifest.yaml
var manifestYAML []byte

// PageElements loads the element manifest the landing page is built from.
func PageElements() ([]reveal.Element, error) {
	return reveal.LoadManifest(manifestYAML)
}

// Config carries the web service settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// FailSafe is the per-element failsafe delay before a queued section
	// is revealed regardless of its predecessor. Zero disables failsafes.
	FailSafe time.Duration
}

// Server hosts the landing page and its APIs.
type Server struct {
	cfg        Config
	signups    *signup.Service
	elements   []reveal.Element
	elementIDs map[string]struct{}
	registry   *sessionRegistry
	mux        *http.ServeMux
}

// NewServer builds a Server around the signup service and the page's
// element manifest.
func NewServer(cfg Config, signups *signup.Service, elements []reveal.Element) (*Server, error) {
	if signups == nil {
		return nil, fmt.Errorf("signup service is required")
	}
	if len(elements) == 0 {
		return nil, fmt.Errorf("element manifest is empty")
	}
	s := &Server{
		cfg:        cfg,
		signups:    signups,
		elements:   elements,
		elementIDs: make(map[string]struct{}, len(elements)),
		registry:   newSessionRegistry(elements, cfg.FailSafe),
		mux:        http.NewServeMux(),
	}
	for _, el := range elements {
		s.elementIDs[el.ID] = struct{}{}
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleLanding)
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", static.Handler()))

	s.mux.HandleFunc("POST /api/signups", s.handleSignup)
	s.mux.HandleFunc("GET /api/progress", s.handleProgress)

	s.mux.HandleFunc("POST /api/sessions", s.handleCreateSession)
	s.mux.HandleFunc("POST /api/sessions/{id}/events", s.handleSessionEvents)
	s.mux.HandleFunc("GET /api/sessions/{id}/stream", s.handleSessionStream)
	s.mux.HandleFunc("DELETE /api/sessions/{id}", s.handleDeleteSession)

	s.mux.HandleFunc("GET /up", s.handleUp)
}

// Handler exposes the routed mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the HTTP server and the session sweeper until ctx is
// cancelled, then shuts down gracefully and disposes all live sessions.
func (s *Server) ListenAndServe(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s", s.cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(timeouts.SessionSweep)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if n := s.registry.sweep(timeouts.SessionIdle); n > 0 {
					log.Printf("swept %d idle sessions", n)
				}
			}
		}
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	s.registry.disposeAll()
	if err == context.Canceled {
		return nil
	}
	return err
}
