// Package main renders a scene without a window and writes the last frame
// to a PNG file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/app"
	"github.com/Faultbox/tilerast/internal/config"
	"github.com/Faultbox/tilerast/internal/engine/debug"
	"github.com/Faultbox/tilerast/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	out := config.OutputPath()
	if out == "" {
		out = "snapshot.png"
	}
	frames := max(config.Frames(), 1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	e, err := app.New(cfg)
	if err != nil {
		logger.Fatal("failed to load scene", zap.Error(err))
	}
	defer e.Close()
	e.Tiles = config.TileOverlay()

	if err := e.Run(ctx, frames); err != nil {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
	if err := debug.WritePNG(out, e.Output); err != nil {
		logger.Error("writing snapshot", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("snapshot written",
		zap.String("file", out),
		zap.Int("frames", frames),
		zap.Int("threads", e.Pool.Threads()),
	)
}
