package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aniaesther/reddit2reels-backend/internal/artifacts"
	"github.com/aniaesther/reddit2reels-backend/internal/reels"
	"github.com/aniaesther/reddit2reels-backend/internal/render"
)

// CapabilityProber answers the /status capability snapshot. Snapshot must be
// cheap enough to call on every poll; it never spawns the render engine.
type CapabilityProber interface {
	Snapshot(backgroundSelector string) render.CapabilityReport
}

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

type ServerConfig struct {
	Port        int
	ReelService reels.ReelService
	Repository  reels.Repository
	Runner      *reels.Runner
	Artifacts   *artifacts.Store
	Prober      CapabilityProber
	Logger      *slog.Logger
	StartTime   time.Time
	Version     string
}

func NewServer(cfg ServerConfig) *Server {
	router := NewRouter(cfg)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 0,
			IdleTimeout:  60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}
