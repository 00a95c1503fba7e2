// Package viewer implements the interactive window loop around the engine.
package viewer

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/app"
	"github.com/Faultbox/tilerast/internal/config"
	"github.com/Faultbox/tilerast/internal/engine/debug"
	"github.com/Faultbox/tilerast/internal/engine/input"
	"github.com/Faultbox/tilerast/internal/engine/window"
	"github.com/Faultbox/tilerast/internal/logger"
)

// Viewer is the main viewer instance.
type Viewer struct {
	config      *config.Config
	running     bool
	engine      *app.Engine
	window      *window.Window
	input       *input.Input
	screenshots *debug.ScreenshotCapture
	log         *zap.Logger
}

// New creates the engine and opens its window.
func New(cfg *config.Config) (*Viewer, error) {
	v := &Viewer{
		config:      cfg,
		input:       input.New(),
		screenshots: debug.NewScreenshotCapture("screenshots", "tilerast"),
		log:         logger.Named("viewer"),
	}
	v.log.Info("initializing viewer",
		zap.String("scene", cfg.Scene.Path),
		zap.Int("width", cfg.Render.Width),
		zap.Int("height", cfg.Render.Height),
	)

	var err error
	v.engine, err = app.New(cfg)
	if err != nil {
		return nil, err
	}
	v.engine.Tiles = config.TileOverlay()

	v.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Render.Width,
		Height:     cfg.Render.Height,
		Scale:      cfg.Window.Scale,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		v.engine.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	v.log.Info("viewer initialized")
	return v, nil
}

// Run runs the frame loop until the window is closed or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.running = true

	budget := frameBudget(v.config.Window.FPSLimit)
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	v.log.Info("starting frame loop", zap.Duration("budget", budget))

	for v.running && ctx.Err() == nil {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleKeys()
		v.update(dt)

		if err := v.engine.Frame(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			return fmt.Errorf("render error: %w", err)
		}
		if err := v.window.Present(v.engine.Output); err != nil {
			return fmt.Errorf("present error: %w", err)
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := v.engine.Renderer.Stats()
			v.window.SetTitle(fmt.Sprintf("%s - %d fps, %d tris", v.config.Window.Title, frameCount, st.Triangles))
			v.log.Debug("fps", zap.Int("count", frameCount), zap.Object("stats", st))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if spent := time.Since(now); spent < budget {
			time.Sleep(budget - spent)
		}
	}

	return nil
}

// Close releases the window and engine.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.window != nil {
		if err := v.window.Close(); err != nil {
			v.log.Warn("closing window", zap.Error(err))
		}
	}
	if v.engine != nil {
		v.engine.Close()
	}
}

// handleKeys toggles the overlays and takes screenshots.
func (v *Viewer) handleKeys() {
	for _, e := range v.input.Events() {
		if e.Type == input.EventMouseDown && e.Button == sdl.BUTTON_RIGHT {
			v.pick(e.MouseX, e.MouseY)
			continue
		}
		if e.Type != input.EventKeyDown {
			continue
		}
		switch e.Key {
		case sdl.SCANCODE_T:
			v.engine.Tiles = !v.engine.Tiles
		case sdl.SCANCODE_B:
			v.engine.Bounds = !v.engine.Bounds
		case sdl.SCANCODE_F12:
			name, err := v.screenshots.Capture(v.engine.Output)
			if err != nil {
				v.log.Error("screenshot failed", zap.Error(err))
				continue
			}
			v.log.Info("screenshot saved", zap.String("file", name))
		}
	}
}

// pick selects the instance under a window position.
func (v *Viewer) pick(x, y int) {
	ww, wh := v.window.GetSize()
	if ww <= 0 || wh <= 0 {
		return
	}
	px, py := toRaster(x, y, ww, wh, v.config.Render.Width, v.config.Render.Height)
	if name, ok := v.engine.Pick(px, py); ok {
		v.log.Info("selected", zap.String("mesh", name))
	}
}

// toRaster maps a window position to the centre of the framebuffer pixel
// shown there.
func toRaster(x, y, winW, winH, fbW, fbH int) (float32, float32) {
	px := x * fbW / winW
	py := y * fbH / winH
	return float32(px) + 0.5, float32(py) + 0.5
}

// update moves the camera. It runs between frames, when the renderer does
// not read the camera.
func (v *Viewer) update(dt float32) {
	cam := v.engine.Camera()
	if dx, dy := v.input.Drag(); dx != 0 || dy != 0 {
		cam.HandleDrag(dx, dy)
	}
	if f, r, u := v.input.Movement(); f != 0 || r != 0 || u != 0 {
		cam.HandleMovement(f, r, u, dt)
	}
}

// frameBudget is the minimum frame time for an fps limit; zero means none.
func frameBudget(fps int) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Second / time.Duration(fps)
}
