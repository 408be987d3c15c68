package main

import (
	"errors"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/asteroids-arcade/internal/config"
	"github.com/tomz197/asteroids-arcade/internal/desktop"
	"github.com/tomz197/asteroids-arcade/internal/loop"
	tuning "github.com/tomz197/asteroids-arcade/internal/loop/config"
)

func main() {
	logger := config.NewLogger(os.Stderr, "asteroids-desktop")

	tun, err := tuning.LoadOrDefault(config.GetEnv(config.EnvTuning, ""))
	if err != nil {
		logger.Fatal("failed to load tuning", "err", err)
	}

	session, err := loop.NewSession(tun, nil)
	if err != nil {
		logger.Fatal("failed to create session", "err", err)
	}

	ebiten.SetWindowSize(int(tun.Field.Width), int(tun.Field.Height))
	ebiten.SetWindowTitle("Asteroids")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tun.Frame.TicksPerSecond)

	if err := ebiten.RunGame(desktop.New(session)); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}

	stats := session.Snapshot().Stats
	logger.Info("game ended", "score", stats.Score, "destroyed", stats.Destroyed, "ticks", stats.Tick)
}
