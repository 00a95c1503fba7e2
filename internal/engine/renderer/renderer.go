// Package renderer turns the scene into pixels on the CPU. A frame is a
// fixed sequence of tasks every render worker runs: transform and bin the
// instances, rasterize tiles, then shade into the output framebuffer.
package renderer

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/config"
	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/framebuffer"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/internal/engine/parallel"
	"github.com/Faultbox/tilerast/internal/engine/raster"
	"github.com/Faultbox/tilerast/internal/engine/shader"
	"github.com/Faultbox/tilerast/internal/engine/texture"
	"github.com/Faultbox/tilerast/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	// TileSide is the tile edge in pixels, a multiple of lanes.Width.
	TileSide   int
	Near       float32
	ClearColor uint32
	SIMD       bool

	LODPixels      float32
	ImpostorPixels float32
	PoolCapacity   int
	BinCapacity    int

	// Shader runs over the finished image. Nil means shader.Identity.
	Shader shader.Func
	Format framebuffer.Format
}

// ConfigFrom builds a renderer configuration from the application config.
func ConfigFrom(rc config.RenderConfig) (Config, error) {
	format, err := framebuffer.ParseFormat(rc.PixelFormat)
	if err != nil {
		return Config{}, err
	}
	fn, err := shader.ByName(rc.Shader, shader.DefaultOptions())
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:          rc.Width,
		Height:         rc.Height,
		TileSide:       rc.TileK * lanes.Width,
		Near:           rc.Near,
		ClearColor:     rc.ClearColor,
		SIMD:           rc.SIMD,
		LODPixels:      rc.LODPixels,
		ImpostorPixels: rc.ImpostorPixels,
		PoolCapacity:   rc.PoolCapacity,
		BinCapacity:    rc.BinCapacity,
		Shader:         fn,
		Format:         format,
	}, nil
}

// Scene is everything a frame reads. The stores are read-locked from task
// ResetCounters until task FlipPhase of the same frame.
type Scene struct {
	Textures  *texture.Store
	Meshes    *mesh.Registry
	Instances *mesh.Instances
	Camera    *camera.Camera
}

// Renderer owns the frame state shared by all render workers.
type Renderer struct {
	config Config
	scene  Scene
	output *framebuffer.Framebuffer
	log    *zap.Logger

	target *framebuffer.Target
	bins   *binner.Binner
	raster raster.Rasterizer
	shade  shader.Func

	// Per-frame state written by ResetCounters.
	viewport  camera.Viewport
	handles   []mesh.Handle
	instances parallel.Counter
	pixels    parallel.Counter
	barriers  [2]*parallel.StepBarrier
	locked    bool
	overflow  binner.Overflow

	scratch sync.Pool

	statsMu sync.Mutex
	frame   Stats
	last    Stats
}

// New creates a renderer drawing scene into output.
func New(cfg Config, scene Scene, output *framebuffer.Framebuffer) (*Renderer, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("invalid renderer size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.TileSide <= 0 || cfg.TileSide%lanes.Width != 0 {
		return nil, fmt.Errorf("tile side %d is not a positive multiple of %d", cfg.TileSide, lanes.Width)
	}
	if cfg.Near <= 0 {
		return nil, fmt.Errorf("near plane must be positive, got %v", cfg.Near)
	}
	if scene.Textures == nil || scene.Meshes == nil || scene.Instances == nil || scene.Camera == nil {
		return nil, fmt.Errorf("renderer scene is incomplete")
	}
	if output == nil {
		return nil, fmt.Errorf("renderer needs an output framebuffer")
	}
	if w, h := output.Size(); w != cfg.Width || h != cfg.Height {
		return nil, fmt.Errorf("framebuffer is %dx%d, renderer is %dx%d", w, h, cfg.Width, cfg.Height)
	}

	r := &Renderer{
		config: cfg,
		scene:  scene,
		output: output,
		log:    logger.Named("renderer"),
		target: framebuffer.NewTarget(cfg.Width, cfg.Height),
		bins:   binner.New(cfg.Width, cfg.Height, cfg.TileSide, cfg.PoolCapacity, cfg.BinCapacity),
		raster: raster.Rasterizer{Textures: scene.Textures, SIMD: cfg.SIMD},
		shade:  cfg.Shader,
		barriers: [2]*parallel.StepBarrier{
			parallel.NewStepBarrier(),
			parallel.NewStepBarrier(),
		},
	}
	if r.shade == nil {
		r.shade = shader.Identity
	}
	r.scratch.New = func() any { return new(Scratch) }
	r.bins.ResetDepth()
	for i := range r.bins.Tiles() {
		r.bins.Tiles()[i].ResetColor(cfg.ClearColor)
	}

	r.log.Info("renderer created",
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("tile", cfg.TileSide),
		zap.Int("lanes", lanes.Width),
		zap.Bool("simd", cfg.SIMD),
	)
	return r, nil
}

// Config returns the renderer configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// Output returns the framebuffer the renderer presents into.
func (r *Renderer) Output() *framebuffer.Framebuffer {
	return r.output
}

// Target returns the internal colour, depth and normal image.
func (r *Renderer) Target() *framebuffer.Target {
	return r.target
}

// Binner returns the tile binner.
func (r *Renderer) Binner() *binner.Binner {
	return r.bins
}

// Stats returns the counters of the last completed frame.
func (r *Renderer) Stats() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.last
}

func (r *Renderer) addStats(s *Stats) {
	r.statsMu.Lock()
	r.frame.add(s)
	r.statsMu.Unlock()
	*s = Stats{}
}
