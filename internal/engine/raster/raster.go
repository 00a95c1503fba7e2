// Package raster draws binned triangles and billboards into tile scratch
// buffers. A scalar path is the reference; the lane path evaluates
// lanes.Width pixels at once with identical per-pixel arithmetic.
package raster

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
	"github.com/Faultbox/tilerast/internal/engine/texture"
)

// Rasterizer draws into tiles. Textures must be read-locked by the caller
// for as long as Draw runs.
type Rasterizer struct {
	Textures *texture.Store
	// SIMD selects the lane path for spans of at least lanes.Width pixels.
	SIMD bool
}

// Draw rasterizes e into t.
func (r *Rasterizer) Draw(e *binner.Entry, t *binner.Tile) {
	if e.Tri.Flags.Has(geometry.FlagBillboard) {
		r.drawBillboard(e, t)
		return
	}

	s, ok := r.setup(e, t)
	if !ok {
		return
	}
	if r.SIMD && s.x1-s.x0 >= lanes.Width {
		drawWide(&s, t)
	} else {
		drawScalar(&s, t)
	}
}

// SelectMip returns floor(log2(texels/area)) clamped to [0, levels-1],
// where texels is the level-0 pixel count and area the triangle's pixel
// area.
func SelectMip(texels int, area float32, levels int) int {
	if levels <= 1 {
		return 0
	}
	if area <= 0 {
		return levels - 1
	}
	ratio := float32(texels) / area
	if ratio <= 1 {
		return 0
	}
	return lanes.Clamp(int(math32.Floor(math32.Log2(ratio))), 0, levels-1)
}

// edge evaluates the edge function of a fixed directed edge a→b.
type edge struct {
	ax, ay, dx, dy float32
}

func newEdge(a, b geometry.TrianglePointData) edge {
	return edge{ax: a.Pos.X, ay: a.Pos.Y, dx: b.Pos.X - a.Pos.X, dy: b.Pos.Y - a.Pos.Y}
}

// row returns the part of the edge function constant along a row.
func (e edge) row(cy float32) float32 {
	return float32(e.dx * (cy - e.ay))
}

// at matches geometry.EdgeArea(a, b, (cx, cy)).
func (e edge) at(rowTerm, cx float32) float32 {
	return rowTerm - float32(e.dy*(cx-e.ax))
}

// setup is the per-(triangle, tile) state shared by both paths.
type setup struct {
	x0, y0, x1, y1 int

	e   [3]edge
	inv float32
	z   [3]float32
	u   [3]float32
	v   [3]float32

	mip    *texture.MipMap
	fw, fh float32
	tw     int32
	last   int32

	tint   geometry.RGB
	flat   uint32
	normal uint32
}

func (r *Rasterizer) setup(e *binner.Entry, t *binner.Tile) (setup, bool) {
	tri, pre := &e.Tri, &e.Pre
	if pre.Area <= 0 {
		return setup{}, false
	}

	s := setup{
		x0:     max(t.X0, int(math32.Floor(pre.Bounds[0]))),
		y0:     max(t.Y0, int(math32.Floor(pre.Bounds[1]))),
		x1:     min(t.X1, int(math32.Ceil(pre.Bounds[2]))),
		y1:     min(t.Y1, int(math32.Ceil(pre.Bounds[3]))),
		inv:    pre.InvArea,
		tint:   tri.P[0].Color,
		normal: uint32(pre.Normal),
	}
	if s.x0 >= s.x1 || s.y0 >= s.y1 {
		return s, false
	}

	// Weight i belongs to vertex i and comes from the opposite edge.
	for i := 0; i < 3; i++ {
		s.e[i] = newEdge(tri.P[(i+1)%3], tri.P[(i+2)%3])
		s.z[i] = tri.P[i].Pos.Z
		s.u[i] = tri.P[i].UV.X
		s.v[i] = tri.P[i].UV.Y
	}

	if tex := r.texture(tri.Texture); tex != nil {
		s.mip = tex.Level(SelectMip(tex.Pixels(), pre.PixelArea(), len(tex.Levels)))
		s.fw = float32(s.mip.Width)
		s.fh = float32(s.mip.Height)
		s.tw = int32(s.mip.Width)
		s.last = int32(len(s.mip.Pixels) - 1)
	} else {
		s.flat = modulate(0xFFFFFF, s.tint)
	}
	return s, true
}

func (r *Rasterizer) texture(id uint32) *texture.Texture {
	if r.Textures == nil {
		return nil
	}
	return r.Textures.At(texture.ID(id))
}

// modulate multiplies a texel's RGB by tint, saturating each channel.
func modulate(p uint32, tint geometry.RGB) uint32 {
	ch := func(shift uint, k float32) uint32 {
		c := float32((p>>shift)&0xFF) * k
		return uint32(min(max(c, 0), 255)) << shift
	}
	return ch(16, tint.R) | ch(8, tint.G) | ch(0, tint.B)
}
