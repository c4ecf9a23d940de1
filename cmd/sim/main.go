package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tomz197/rigid2d/internal/app"
	"github.com/tomz197/rigid2d/internal/logging"
	"github.com/tomz197/rigid2d/internal/loop"
)

func main() {
	var (
		opts     = app.OptionsFromEnv()
		logLevel string
		logFile  string
	)
	flag.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "YAML tuning file")
	flag.StringVar(&opts.ScenePath, "scene", opts.ScenePath, "YAML scene file (random bodies when empty)")
	flag.IntVar(&opts.Bodies, "bodies", opts.Bodies, "number of random bodies")
	flag.Uint64Var(&opts.Seed, "seed", 0, "random seed (0 uses the clock)")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.StringVar(&logFile, "log-file", "", "write logs to this file (discarded when empty)")
	flag.Parse()

	logger := zap.NewNop()
	if logFile != "" {
		var err error
		if logger, err = logging.NewFile(logLevel, logFile); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
			os.Exit(1)
		}
	}
	defer func() { _ = logger.Sync() }()

	sim, err := app.NewSimulation(opts, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up simulation: %v\n", err)
		os.Exit(1)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = loop.Run(ctx, sim, bufio.NewReader(os.Stdin), os.Stdout, loop.ViewerOptions{Logger: logger})
	stop()
	_ = term.Restore(fd, oldState)

	if err != nil {
		logger.Error("simulation failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}
}
