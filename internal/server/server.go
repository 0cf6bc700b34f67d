package server

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/roshambo/internal/display"
	"github.com/lox/roshambo/internal/game"
)

//go:embed static/index.html
var indexHTML []byte

const shutdownTimeout = 5 * time.Second

// EngineFactory builds the engine for a new browser session.
type EngineFactory func() (*game.Engine, error)

// Server is the browser shell: it serves the page and one game session per
// WebSocket connection.
type Server struct {
	newEngine EngineFactory
	upgrader  websocket.Upgrader
	clock     quartz.Clock
	logger    *log.Logger

	mu          sync.Mutex
	connections map[*Connection]chan struct{}
	ctx         context.Context
	cancel      context.CancelFunc
}

// Option configures a Server
type Option func(*Server)

// WithClock overrides the clock used for timestamps and pings.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// WithCheckOrigin replaces the same-origin check applied to upgrades.
func WithCheckOrigin(check func(r *http.Request) bool) Option {
	return func(s *Server) {
		s.upgrader.CheckOrigin = check
	}
}

// NewServer creates a server that builds engines with newEngine.
func NewServer(newEngine EngineFactory, logger *log.Logger, opts ...Option) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		newEngine: newEngine,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clock:       quartz.NewReal(),
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("Serving browser shell", "addr", ln.Addr().String())
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("Shutting down browser shell")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		// Hijacked WebSocket connections are not tracked by http.Server.
		s.closeConnections()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ConnectionCount returns the number of open sessions.
func (s *Server) ConnectionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.connections)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	engine, err := s.newEngine()
	if err != nil {
		s.logger.Error("Failed to create engine", "error", err)
		http.Error(w, "failed to start game", http.StatusInternalServerError)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	session := NewSession(engine, s.clock, s.logger)
	c := NewConnection(s.ctx, conn, session, s.clock, s.logger)

	done := make(chan struct{})
	s.mu.Lock()
	s.connections[c] = done
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.connections, c)
		s.mu.Unlock()
		close(done)
	}()
	s.logger.Debug("Session opened", "remote", r.RemoteAddr, "match", engine.State().MatchID)

	c.Serve()

	state := engine.State()
	s.logger.Debug("Session closed", "remote", r.RemoteAddr,
		"player_wins", state.PlayerWins, "computer_wins", state.ComputerWins)
}

func (s *Server) closeConnections() {
	s.cancel()

	s.mu.Lock()
	pending := make([]chan struct{}, 0, len(s.connections))
	for _, done := range s.connections {
		pending = append(pending, done)
	}
	s.mu.Unlock()

	for _, done := range pending {
		<-done
	}
}

// welcomeMessage greets a session that has not played yet.
func welcomeMessage(s *Session) display.Message {
	state := s.Engine().State()
	if state.Phase == game.AwaitingMove && state.Round == 1 && state.PlayerScore == 0 && state.ComputerScore == 0 {
		return display.NewGame(state.TotalRounds)
	}
	return display.Message{}
}
