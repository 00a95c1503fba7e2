package config

import "flag"

var (
	flagConfig       = flag.String("config", "", "Path to config file")
	flagDebug        = flag.Bool("debug", false, "Enable debug logging")
	flagWidth        = flag.Int("width", 0, "Framebuffer width")
	flagHeight       = flag.Int("height", 0, "Framebuffer height")
	flagThreads      = flag.Int("threads", 0, "Render worker count")
	flagScene        = flag.String("scene", "", "Scene file")
	flagScalarRaster = flag.Bool("scalar-raster", false, "Use the scalar rasterizer only")
	flagFrames       = flag.Int("frames", 1, "Frames to render (snapshot)")
	flagOut          = flag.String("out", "", "Output PNG path (snapshot)")
	flagTiles        = flag.Bool("tiles", false, "Draw the tile grid and bin occupancy overlay")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Frames returns the number of frames requested with -frames.
func Frames() int {
	return *flagFrames
}

// OutputPath returns the PNG path requested with -out.
func OutputPath() string {
	return *flagOut
}

// TileOverlay reports whether -tiles was given.
func TileOverlay() bool {
	return *flagTiles
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Render.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Render.Height = *flagHeight
	}
	if *flagThreads > 0 {
		cfg.Render.Threads = *flagThreads
	}
	if *flagScene != "" {
		cfg.Scene.Path = *flagScene
	}
	if *flagScalarRaster {
		cfg.Render.SIMD = false
	}
}
