// Package gateway exposes the HTTP surface: account and asset lookups,
// credential management, and the chat endpoints backing the trading
// agents.
package gateway

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jondoescoding/kryptt/internal/agent"
	"github.com/jondoescoding/kryptt/internal/alpaca"
	"github.com/jondoescoding/kryptt/internal/keys"
)

// ChatAgent is the slice of agent behavior the gateway needs.
type ChatAgent interface {
	Name() string
	Chat(ctx context.Context, message string) agent.ChatResponse
}

// Config holds the HTTP server settings.
type Config struct {
	Bind            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// defaults fills zero fields in place.
func (c *Config) defaults() {
	if c.Bind == "" {
		c.Bind = ":8000"
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout <= 0 {
		// Chat turns can run several provider rounds.
		c.WriteTimeout = 3 * time.Minute
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
}

// Server is the HTTP gateway.
type Server struct {
	config  Config
	logger  *slog.Logger
	keys    *keys.Store
	factory *alpaca.Factory
	agents  map[string]ChatAgent
	metrics *Metrics
	server  *http.Server
}

// New creates a Server. The agents map is keyed by URL agent name,
// e.g. "order-agent".
func New(cfg Config, ks *keys.Store, factory *alpaca.Factory, agents []ChatAgent, logger *slog.Logger) *Server {
	cfg.defaults()
	if logger == nil {
		logger = slog.Default()
	}

	byName := make(map[string]ChatAgent, len(agents))
	for _, a := range agents {
		byName[a.Name()] = a
	}

	return &Server{
		config:  cfg,
		logger:  logger,
		keys:    ks,
		factory: factory,
		agents:  byName,
		metrics: NewMetrics(),
	}
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.config.Bind,
		Handler:      s.buildRouter(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	var lc net.ListenConfig
	ln, err := lc.Listen(context.Background(), "tcp", s.config.Bind)
	if err != nil {
		return errors.New("gateway: listen failed: " + err.Error())
	}

	go func() {
		s.logger.Info("gateway listening", "addr", s.config.Bind)
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("gateway serve error", "error", err)
		}
	}()

	return nil
}

// Shutdown stops the server gracefully within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.logger.Info("gateway shutting down")
	return s.server.Shutdown(shutdownCtx)
}
