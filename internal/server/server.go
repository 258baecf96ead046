package server

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/toonvert/toonvert/internal/backend"
	"github.com/toonvert/toonvert/internal/config"
	"github.com/toonvert/toonvert/internal/frame"
	"github.com/toonvert/toonvert/internal/store"
	"github.com/toonvert/toonvert/internal/style"
)

// Server wires the engine, the model backend and the output store behind
// the HTTP surface.
type Server struct {
	cfg     config.Config
	log     *zap.Logger
	engine  *style.Engine
	backend backend.Backend
	store   *store.Store

	started     time.Time
	conversions atomic.Int64
}

// New assembles a server. All dependencies are required.
func New(cfg config.Config, eng *style.Engine, be backend.Backend, st *store.Store, log *zap.Logger) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		engine:  eng,
		backend: be,
		store:   st,
		started: time.Now(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/styles", s.handleStyles)
	mux.HandleFunc("POST /api/convert", s.handleConvert)
	mux.HandleFunc("POST /api/batch-convert", s.handleBatchConvert)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("DELETE /api/cleanup", s.handleCleanup)
	mux.HandleFunc("GET /api/outputs/{name}", s.handleOutput)
	return s.logRequests(mux)
}

// RunCleanup sweeps expired outputs on a fixed interval until ctx is
// canceled. Run it in its own goroutine.
func (s *Server) RunCleanup(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			removed, err := s.store.Cleanup(s.cfg.RetentionAge)
			if err != nil {
				s.log.Error("retention sweep failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				s.log.Info("retention sweep", zap.Int("removed", removed))
			}
		}
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

// stylize routes a style name to whichever component serves it. Engine
// styles win on name collisions; the backend covers the rest.
func (s *Server) stylize(f *frame.Frame, name string) (*frame.Frame, error) {
	out, err := s.engine.Convert(f, name)
	if err == nil || !errors.Is(err, style.ErrUnknownStyle) {
		return out, err
	}
	bout, berr := s.backend.Stylize(f, name)
	if errors.Is(berr, backend.ErrUnsupportedStyle) {
		// Neither component knows the name; the engine's error carries it.
		return nil, err
	}
	return bout, berr
}

// allStyles merges the engine and backend listings, engine order first,
// duplicates dropped.
func (s *Server) allStyles() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range append(s.engine.Styles(), s.backend.Styles()...) {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func (s *Server) servesStyle(name string) bool {
	for _, got := range s.allStyles() {
		if got == name {
			return true
		}
	}
	return false
}
