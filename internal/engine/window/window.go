// Package window presents software framebuffers in an SDL2 window through
// a streaming texture.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"honnef.co/go/safeish"

	"github.com/Faultbox/tilerast/internal/engine/framebuffer"
	"github.com/Faultbox/tilerast/internal/logger"
)

func init() {
	// SDL video calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title string
	// Width and Height are the framebuffer size in pixels.
	Width  int
	Height int
	// Scale multiplies the window size; the image is stretched to fit.
	Scale      int
	Fullscreen bool
	VSync      bool
}

// Window wraps an SDL2 window, its renderer and the streaming texture the
// framebuffer is uploaded into.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	renderer  *sdl.Renderer
	texture   *sdl.Texture
	log       *zap.Logger
}

// New creates a window sized for a cfg.Width × cfg.Height framebuffer.
func New(cfg Config) (*Window, error) {
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	w := &Window{
		config: cfg,
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width*cfg.Scale),
		int32(cfg.Height*cfg.Scale),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	rflags := uint32(sdl.RENDERER_ACCELERATED)
	if cfg.VSync {
		rflags |= sdl.RENDERER_PRESENTVSYNC
	}
	w.renderer, err = sdl.CreateRenderer(w.sdlWindow, -1, rflags)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("SDL_CreateRenderer failed: %w", err), w.Close())
	}

	w.texture, err = w.renderer.CreateTexture(
		sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING,
		int32(cfg.Width),
		int32(cfg.Height),
	)
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("SDL_CreateTexture failed: %w", err), w.Close())
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Int("scale", cfg.Scale),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the texture, renderer and window and shuts SDL down.
func (w *Window) Close() error {
	w.log.Info("closing window")

	var err error
	if w.texture != nil {
		err = multierr.Append(err, w.texture.Destroy())
		w.texture = nil
	}
	if w.renderer != nil {
		err = multierr.Append(err, w.renderer.Destroy())
		w.renderer = nil
	}
	if w.sdlWindow != nil {
		err = multierr.Append(err, w.sdlWindow.Destroy())
		w.sdlWindow = nil
	}

	sdl.Quit()
	return err
}

// Present uploads the readable half of fb and shows it.
func (w *Window) Present(fb *framebuffer.Framebuffer) error {
	var err error
	fb.Present(func(pixels []uint32, width, height int) {
		err = w.upload(pixels, width, height)
	})
	if err != nil {
		return err
	}

	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("SDL_RenderClear failed: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("SDL_RenderCopy failed: %w", err)
	}
	w.renderer.Present()
	return nil
}

// upload copies ARGB rows into the locked streaming texture, honouring
// its pitch.
func (w *Window) upload(pixels []uint32, width, height int) error {
	if width != w.config.Width || height != w.config.Height {
		return fmt.Errorf("framebuffer is %dx%d, window texture is %dx%d",
			width, height, w.config.Width, w.config.Height)
	}

	dst, pitch, err := w.texture.Lock(nil)
	if err != nil {
		return fmt.Errorf("SDL_LockTexture failed: %w", err)
	}
	defer w.texture.Unlock()

	src := safeish.SliceCast[[]byte](pixels)
	row := width * 4
	for y := 0; y < height; y++ {
		copy(dst[y*pitch:y*pitch+row], src[y*row:(y+1)*row])
	}
	return nil
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
