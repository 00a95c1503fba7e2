// Package config handles renderer configuration loading and management.
package config

import "github.com/Faultbox/tilerast/internal/engine/lanes"

// Config holds all settings.
type Config struct {
	Render  RenderConfig  `yaml:"render"`
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Assets  AssetsConfig  `yaml:"assets"`
	Logging LoggingConfig `yaml:"logging"`
}

// RenderConfig holds the software pipeline settings.
type RenderConfig struct {
	Width   int `yaml:"width"`
	Height  int `yaml:"height"`
	Threads int `yaml:"threads"` // 0 = one per CPU
	// TileK scales the tile side: side = lanes.Width * TileK. Must be a power of two.
	TileK          int     `yaml:"tile_k"`
	Near           float32 `yaml:"near"`
	ClearColor     uint32  `yaml:"clear_color"`
	SIMD           bool    `yaml:"simd"`
	LODPixels      float32 `yaml:"lod_pixels"`
	ImpostorPixels float32 `yaml:"impostor_pixels"`
	PoolCapacity   int     `yaml:"pool_capacity"`
	BinCapacity    int     `yaml:"bin_capacity"`
	Shader         string  `yaml:"shader"`       // identity, fog, outline, sky
	PixelFormat    string  `yaml:"pixel_format"` // only argb8888
}

// WindowConfig holds presenter settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Scale      int    `yaml:"scale"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	FPSLimit   int    `yaml:"fps_limit"`
}

// SceneConfig points at the scene description.
type SceneConfig struct {
	Path string `yaml:"path"`
}

// AssetsConfig holds asset lookup settings.
type AssetsConfig struct {
	SearchPaths     []string `yaml:"search_paths"`
	FallbackTexture string   `yaml:"fallback_texture"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Width:          640,
			Height:         360,
			Threads:        0,
			TileK:          64 / lanes.Width,
			Near:           1,
			ClearColor:     0,
			SIMD:           true,
			LODPixels:      64,
			ImpostorPixels: 4,
			PoolCapacity:   1 << 14,
			BinCapacity:    1 << 10,
			Shader:         "identity",
			PixelFormat:    "argb8888",
		},
		Window: WindowConfig{
			Title:      "tilerast",
			Scale:      2,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
		},
		Scene: SceneConfig{
			Path: "scene.yaml",
		},
		Assets: AssetsConfig{
			SearchPaths:     []string{"assets"},
			FallbackTexture: "arbre.png",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
