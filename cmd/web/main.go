package main

import (
	"context"
	_ "embed"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/rigid2d/internal/app"
	"github.com/tomz197/rigid2d/internal/config"
	"github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage []byte

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	logger, err := logging.New(config.GetEnv("LOG_LEVEL", "info"), config.GetEnv("LOG_DEV", "") != "")
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	sim, err := app.NewSimulation(app.OptionsFromEnv(), logger)
	if err != nil {
		logger.Fatal("failed to set up simulation", zap.Error(err))
	}

	srv := web.NewServer(sim, htmlPage, logger.Named("web"))
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error { return sim.Run(ctx) })
	g.Go(func() error { return srv.Broadcast(ctx) })
	g.Go(func() error {
		logger.Info("web server listening", zap.String("addr", "http://"+httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("web server failed", zap.Error(err))
	}
}
