// Package app wires the configuration into a running renderer: asset
// lookup, the scene, the output framebuffer and the worker pool.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/assets"
	"github.com/Faultbox/tilerast/internal/config"
	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/debug"
	"github.com/Faultbox/tilerast/internal/engine/framebuffer"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/internal/engine/picking"
	"github.com/Faultbox/tilerast/internal/engine/renderer"
	"github.com/Faultbox/tilerast/internal/engine/scheduler"
	"github.com/Faultbox/tilerast/internal/logger"
	"github.com/Faultbox/tilerast/internal/scene"
)

// Engine is everything needed to render frames without a window.
type Engine struct {
	Config   *config.Config
	Assets   *assets.Manager
	Scene    renderer.Scene
	Output   *framebuffer.Framebuffer
	Renderer *renderer.Renderer
	Pool     *scheduler.Pool

	// Overlays drawn into each finished frame.
	Tiles  bool
	Bounds bool

	overlay  debug.TileOverlay
	selected *mesh.Handle
	log      *zap.Logger
}

// Wireframe colours of the bounds overlay.
const (
	boundsColor   = 0x0000FF00
	selectedColor = 0x00FFFF00
)

// New loads the scene named by cfg and creates the renderer for it.
// Scene entries that fail to load are logged and replaced by fallbacks.
func New(cfg *config.Config) (*Engine, error) {
	log := logger.Named("app")

	rc, err := renderer.ConfigFrom(cfg.Render)
	if err != nil {
		return nil, fmt.Errorf("render config: %w", err)
	}

	am := assets.NewManager(cfg.Assets.SearchPaths...)
	path := cfg.Scene.Path
	if _, err := os.Stat(path); err == nil {
		// Files next to the scene take priority over the search paths.
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
			am.AddPath(filepath.Dir(abs))
		}
	}

	sc, err := scene.Load(am, path, scene.Options{Fallback: cfg.Assets.FallbackTexture})
	if err != nil {
		if sc.Textures == nil {
			am.Close()
			return nil, err
		}
		log.Warn("scene loaded with errors", zap.String("path", path), zap.Error(err))
	}

	out, err := framebuffer.New(rc.Width, rc.Height, rc.Format)
	if err != nil {
		am.Close()
		return nil, err
	}
	r, err := renderer.New(rc, sc, out)
	if err != nil {
		am.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	return &Engine{
		Config:   cfg,
		Assets:   am,
		Scene:    sc,
		Output:   out,
		Renderer: r,
		Pool:     scheduler.New(cfg.Render.ThreadCount()),
		overlay:  debug.DefaultTileOverlay(),
		log:      log,
	}, nil
}

// Frame renders one frame and draws the enabled overlays into it.
func (e *Engine) Frame(ctx context.Context) error {
	if err := e.Pool.RunFrame(ctx, e.Renderer); err != nil {
		return err
	}
	if e.Tiles || e.Bounds || e.selected != nil {
		e.Output.Present(e.drawOverlays)
	}
	return nil
}

// Run renders n frames.
func (e *Engine) Run(ctx context.Context, n int) error {
	for i := 0; i < n; i++ {
		if err := e.Frame(ctx); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}
	e.log.Info("frames rendered",
		zap.Int("frames", n),
		zap.Object("stats", e.Renderer.Stats()),
	)
	return nil
}

// Camera returns the scene camera.
func (e *Engine) Camera() *camera.Camera {
	return e.Scene.Camera
}

// Close releases the asset cache.
func (e *Engine) Close() {
	e.Assets.Close()
}

// drawOverlays runs between frames, so the renderer's tile state is stable.
func (e *Engine) drawOverlays(pixels []uint32, width, height int) {
	if e.Tiles {
		e.overlay.Draw(pixels, width, height, e.Renderer.Binner())
	}
	if e.Bounds || e.selected != nil {
		e.drawBounds(pixels, width, height)
	}
}

func (e *Engine) drawBounds(pixels []uint32, width, height int) {
	rc := e.Renderer.Config()
	vp := e.Scene.Camera.Viewport(width, height, rc.Near)
	sc := e.Scene

	handles := sc.Instances.Snapshot(nil)
	sc.Meshes.RLock()
	defer sc.Meshes.RUnlock()
	sc.Instances.RLock()
	defer sc.Instances.RUnlock()

	for _, h := range handles {
		color := uint32(boundsColor)
		if e.selected != nil && *e.selected == h {
			color = selectedColor
		} else if !e.Bounds {
			continue
		}
		in := sc.Instances.At(h)
		m := sc.Meshes.At(in.Mesh)
		if m == nil {
			continue
		}
		debug.DrawBounds(pixels, width, height, &vp, in, m.Bounds(), color)
	}
}

// Pick selects the nearest instance under raster point (px, py) and
// returns its mesh name. A miss clears the selection.
func (e *Engine) Pick(px, py float32) (string, bool) {
	rc := e.Renderer.Config()
	vp := e.Scene.Camera.Viewport(rc.Width, rc.Height, rc.Near)
	ray := picking.ScreenRay(&vp, px, py)

	sc := e.Scene
	handles := sc.Instances.Snapshot(nil)
	sc.Meshes.RLock()
	defer sc.Meshes.RUnlock()
	sc.Instances.RLock()
	defer sc.Instances.RUnlock()

	hit, ok := picking.Pick(ray, handles, sc.Instances, sc.Meshes)
	if !ok {
		e.selected = nil
		return "", false
	}
	e.selected = &hit.Handle
	e.log.Debug("instance picked",
		zap.String("mesh", hit.Mesh.Name),
		zap.Int("bucket", hit.Handle.Bucket),
		zap.Int("index", hit.Handle.Index),
		zap.Float32("distance", hit.T),
	)
	return hit.Mesh.Name, true
}
