// Package web serves linkdots over HTTP: a JSON API for levels, progress and
// solves, and a websocket endpoint that drives one engine per connection.
package web

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/vovakirdan/tui-linkdots/internal/config"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots"
	"github.com/vovakirdan/tui-linkdots/internal/games/linkdots/core"
	"github.com/vovakirdan/tui-linkdots/internal/storage"
)

// Options configures the HTTP server.
type Options struct {
	Address string
	Config  config.LinkDotsConfig
	Store   *storage.Store // Nil disables the progress and solves endpoints
	Logger  *log.Logger

	// Seed for generated levels. Zero gives each play session its own seed;
	// the levels endpoint uses it as is.
	Seed int64
}

// Server is the HTTP API and websocket play server.
type Server struct {
	opts     Options
	router   *way.Router
	http     *http.Server
	upgrader websocket.Upgrader
	sessions *sessionRegistry
	logger   *log.Logger
}

// NewServer creates a server and its routes.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	opts.Config.Validate()

	s := &Server{
		opts:     opts,
		sessions: newSessionRegistry(),
		logger:   opts.Logger.WithPrefix("http"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
	s.routes()
	s.http = &http.Server{
		Addr:              opts.Address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the root handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("starting HTTP server", "address", s.opts.Address)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, closes the play sockets and waits for
// handlers to return.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server", "sessions", s.sessions.Count())
	s.sessions.CloseAll()
	return s.http.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.opts.Address
}

// generate builds level index with a generator seeded by seed.
func (s *Server) generate(seed int64, index int) core.LevelDescriptor {
	params := linkdots.GenParamsFromConfig(s.opts.Config.Generator)
	return core.NewGenerator(rand.New(rand.NewSource(seed)), params).Generate(index)
}

// levelDisplay is the player-facing label of a level index.
func levelDisplay(level int) string {
	return linkdots.LevelLabel(level)
}
