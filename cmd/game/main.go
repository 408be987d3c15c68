package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	"github.com/tomz197/asteroids-arcade/internal/loop/client"
	tuning "github.com/tomz197/asteroids-arcade/internal/loop/config"
)

func main() {
	logger := config.NewLogger(os.Stderr, "asteroids")
	if err := run(logger); err != nil {
		logger.Error("game error", "err", err)
		os.Exit(1)
	}
}

func run(logger *log.Logger) error {
	path := config.GetEnv(config.EnvTuning, "")
	tun, err := tuning.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if path != "" {
		logger.Debug("tuning loaded", "path", path)
	}

	session, err := loop.NewSession(tun, nil)
	if err != nil {
		return err
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := client.New(session, os.Stdin, os.Stdout, client.Options{})
	runErr := c.Run(ctx)

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		return runErr
	}

	stats := session.Snapshot().Stats
	logger.Info("game ended", "score", stats.Score, "destroyed", stats.Destroyed, "ticks", stats.Tick)
	return nil
}
