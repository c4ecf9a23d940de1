package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/rigid2d/internal/app"
	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/draw"
	applog "github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

	logger, err := applog.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_DEV", "") != "")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("failed to get working directory", zap.Error(workErr))
	}
	logger.Info("ssh config",
		zap.String("host", host),
		zap.String("port", port),
		zap.String("host_key", hostKeyPath),
		zap.String("working_dir", workingDir),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := &handler{ctx: ctx, opts: app.OptionsFromEnv(), logger: logger}
	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps key presses snappy.
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
		logger.Fatal("failed to create server", zap.Error(err))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting ssh server", zap.String("addr", s.Addr))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// handler gives every SSH session its own simulation.
type handler struct {
	ctx    context.Context
	opts   app.Options
	logger *zap.Logger
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With(zap.String("user", sess.User()), zap.String("remote", sess.RemoteAddr().String()))
		logger.Info("session started",
			zap.String("terminal", pty.Term),
			zap.Int("width", pty.Window.Width),
			zap.Int("height", pty.Window.Height),
		)

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		sim, err := app.NewSimulation(h.opts, logger)
		if err != nil {
			logger.Error("failed to set up simulation", zap.Error(err))
			fmt.Fprintf(sess, "Error: %v\n", err)
			return
		}

		// The session ends with the server or with the client's connection.
		ctx, cancel := context.WithCancel(h.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		viewerOpts := loop.ViewerOptions{
			TermSizeFunc: sizeTracker.getSize,
			Logger:       logger,
		}
		if err := loop.Run(ctx, sim, bufio.NewReader(sess), sess, viewerOpts); err != nil {
			logger.Error("simulation failed", zap.Error(err))
		}

		logger.Info("session ended")
		next(sess)
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

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
