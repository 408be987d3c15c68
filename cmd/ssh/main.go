package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/draw"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/client"
	tuning "github.com/tomz197/asteroids-arcade/internal/loop/config"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"

	sessionDrainTimeout = 5 * time.Second
)

// arcade hands every SSH connection its own game session.
type arcade struct {
	logger  *log.Logger
	tuning  func() tuning.Tuning
	ctx     context.Context // Cancelled on server shutdown
	players sync.WaitGroup
}

func main() {
	logger := config.NewLogger(os.Stderr, "asteroids-ssh")

	host := config.GetEnv(config.EnvSSHHost, defaultHost)
	port := config.GetEnv(config.EnvSSHPort, defaultPort)
	hostKeyPath := config.GetEnv(config.EnvSSHHostKey, defaultHostKeyPath)
	tuningPath := config.GetEnv(config.EnvTuning, "")
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "tuning", tuningPath)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := &arcade{logger: logger, ctx: ctx}

	// New sessions pick up the current tuning; edits apply to the next game.
	if tuningPath != "" {
		w, err := tuning.NewWatcher(tuningPath, logger.WithPrefix("tuning"))
		if err != nil {
			logger.Fatal("failed to load tuning", "err", err)
		}
		go w.Run(ctx)
		a.tuning = w.Current
	} else {
		a.tuning = tuning.Default
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			a.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// End running games so their clients restore the players' terminals
	cancel()
	a.wait(sessionDrainTimeout)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// middleware handles SSH sessions and runs the game client.
func (a *arcade) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := a.logger.With("user", sess.User(), "remote", sess.RemoteAddr())
		logger.Info("New game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		session, err := loop.NewSession(a.tuning(), nil)
		if err != nil {
			logger.Error("Failed to create session", "err", err)
			fmt.Fprintln(sess, "Error: game unavailable")
			return
		}

		a.players.Add(1)
		defer a.players.Done()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(a.ctx, cancel)
		defer stop()

		c := client.New(session, sess, sess, client.Options{
			TermSizeFunc: sizeTracker.getSize,
		})
		if err := c.Run(ctx); err != nil {
			logger.Error("Game error", "err", err)
		}

		stats := session.Snapshot().Stats
		logger.Info("Session ended", "score", stats.Score, "destroyed", stats.Destroyed, "state", stats.State)
		next(sess)
	}
}

// wait blocks until every game has ended or timeout passes.
func (a *arcade) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		a.players.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(timeout):
		a.logger.Warn("Games still running after shutdown timeout", "timeout", timeout)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
