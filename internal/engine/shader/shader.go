// Package shader runs per-pixel post-processing over the renderer's
// finished colour, depth and normal buffers.
package shader

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/geometry"
)

// Frame is read-only access to a finished internal image.
type Frame struct {
	Width, Height int
	Color         []uint32
	Depth         []float32
	Normal        []uint32
}

// Pixel is the shader input for one position.
type Pixel struct {
	X, Y   int
	Color  uint32
	Depth  float32
	Normal geometry.PackedNormal
}

// Func computes the output colour for one pixel. It may read any
// neighbour through the frame.
type Func func(f *Frame, p Pixel) uint32

// At returns the pixel at (x, y), clamped to the image.
func (f *Frame) At(x, y int) Pixel {
	x = min(max(x, 0), f.Width-1)
	y = min(max(y, 0), f.Height-1)
	i := y*f.Width + x
	return Pixel{X: x, Y: y, Color: f.Color[i], Depth: f.Depth[i], Normal: geometry.PackedNormal(f.Normal[i])}
}

// Run shades pixel indices [lo, hi) into dst.
func (f *Frame) Run(dst []uint32, lo, hi int, fn Func) {
	for i := lo; i < hi; i++ {
		p := Pixel{
			X:      i % f.Width,
			Y:      i / f.Width,
			Color:  f.Color[i],
			Depth:  f.Depth[i],
			Normal: geometry.PackedNormal(f.Normal[i]),
		}
		dst[i] = fn(f, p)
	}
}

// Identity leaves colours unchanged.
func Identity(_ *Frame, p Pixel) uint32 {
	return p.Color
}

// Chain applies fns in order, feeding each result to the next as the
// pixel colour.
func Chain(fns ...Func) Func {
	return func(f *Frame, p Pixel) uint32 {
		for _, fn := range fns {
			p.Color = fn(f, p)
		}
		return p.Color
	}
}

// Sky replaces pixels no triangle covered with c.
func Sky(c uint32) Func {
	return func(_ *Frame, p Pixel) uint32 {
		if math32.IsInf(p.Depth, 1) {
			return c
		}
		return p.Color
	}
}

// Fog blends toward c linearly between depths start and end.
func Fog(c uint32, start, end float32) Func {
	span := end - start
	return func(_ *Frame, p Pixel) uint32 {
		t := float32(1)
		if !math32.IsInf(p.Depth, 1) && span > 0 {
			t = min(max((p.Depth-start)/span, 0), 1)
		}
		return lerpColor(p.Color, c, t)
	}
}

// Outline darkens pixels on a silhouette or crease: a 4-neighbour whose
// packed normal differs, or whose depth differs by more than ratio of this
// pixel's depth.
func Outline(ratio float32) Func {
	offsets := [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	return func(f *Frame, p Pixel) uint32 {
		for _, o := range offsets {
			n := f.At(p.X+o[0], p.Y+o[1])
			if n.Normal != p.Normal || depthEdge(p.Depth, n.Depth, ratio) {
				return lerpColor(p.Color, 0, 0.5)
			}
		}
		return p.Color
	}
}

func depthEdge(a, b, ratio float32) bool {
	ai, bi := math32.IsInf(a, 1), math32.IsInf(b, 1)
	if ai || bi {
		return ai != bi
	}
	return math32.Abs(a-b) > ratio*min(a, b)
}

// lerpColor blends the RGB channels of a toward b by t, keeping a's alpha.
func lerpColor(a, b uint32, t float32) uint32 {
	out := a & 0xFF000000
	for shift := uint(0); shift < 24; shift += 8 {
		ca := float32((a >> shift) & 0xFF)
		cb := float32((b >> shift) & 0xFF)
		out |= uint32(ca+(cb-ca)*t+0.5) << shift
	}
	return out
}

// Options configures the named shaders.
type Options struct {
	SkyColor  uint32
	FogColor  uint32
	FogStart  float32
	FogEnd    float32
	EdgeRatio float32
}

// DefaultOptions returns the settings the built-in shaders use.
func DefaultOptions() Options {
	return Options{
		SkyColor:  0x6080B0,
		FogColor:  0xA0A8B0,
		FogStart:  10,
		FogEnd:    60,
		EdgeRatio: 0.1,
	}
}

// ByName returns a built-in shader: identity, sky, fog or outline.
func ByName(name string, o Options) (Func, error) {
	switch name {
	case "", "identity":
		return Identity, nil
	case "sky":
		return Sky(o.SkyColor), nil
	case "fog":
		return Fog(o.FogColor, o.FogStart, o.FogEnd), nil
	case "outline":
		return Chain(Outline(o.EdgeRatio), Sky(o.SkyColor)), nil
	default:
		return nil, fmt.Errorf("unknown shader %q", name)
	}
}
