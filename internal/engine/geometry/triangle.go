package geometry

import (
	"github.com/Faultbox/tilerast/pkg/math"
)

// Flags qualify how a triangle is drawn.
type Flags uint32

const (
	// FlagTwoSided keeps back-facing triangles by re-winding them.
	FlagTwoSided Flags = 1 << iota
	// FlagAnimated means the texture id names a texture set, resolved at emit time.
	FlagAnimated
	// FlagBillboard marks a depth-placed quad: P[0] holds the top-left raster
	// corner, P[1] the bottom-right one.
	FlagBillboard
)

// Has reports whether every bit of f2 is set in f.
func (f Flags) Has(f2 Flags) bool {
	return f&f2 == f2
}

// TrianglePointData is one corner of a triangle.
//
// After projection Pos is (x, y, 1/z) in raster space and UV has been
// multiplied by 1/z.
type TrianglePointData struct {
	Pos   math.Vec3
	UV    math.Vec2
	Color RGB
}

// SingleFullTriangle is a fully resolved triangle ready for binning.
type SingleFullTriangle struct {
	P       [3]TrianglePointData
	Texture uint32
	Flags   Flags
}

// PreCalcd carries per-triangle data computed once at projection time.
type PreCalcd struct {
	// Area is the raster-space edge-function area (twice the pixel area).
	Area    float32
	InvArea float32
	Normal  PackedNormal
	// Bounds is minX, minY, maxX, maxY in raster pixels.
	Bounds [4]float32
}

// EdgeArea returns the edge-function value of c relative to the directed
// edge a→b. It is positive when a, b, c are clockwise on screen (y down).
func EdgeArea(a, b, c math.Vec3) float32 {
	return float32((b.X-a.X)*(c.Y-a.Y)) - float32((b.Y-a.Y)*(c.X-a.X))
}

// Prepare computes the area, reciprocal and bounds of t.
func Prepare(t *SingleFullTriangle, n PackedNormal) PreCalcd {
	p0, p1, p2 := t.P[0].Pos, t.P[1].Pos, t.P[2].Pos
	area := EdgeArea(p0, p1, p2)

	pc := PreCalcd{
		Area:   area,
		Normal: n,
		Bounds: [4]float32{
			min(p0.X, p1.X, p2.X),
			min(p0.Y, p1.Y, p2.Y),
			max(p0.X, p1.X, p2.X),
			max(p0.Y, p1.Y, p2.Y),
		},
	}
	if area != 0 {
		pc.InvArea = 1 / area
	}
	return pc
}

// PixelArea returns the triangle's covered area in pixels.
func (pc PreCalcd) PixelArea() float32 {
	if pc.Area < 0 {
		return -pc.Area / 2
	}
	return pc.Area / 2
}

// OnScreen reports whether the bounds overlap [0,w)×[0,h).
func (pc PreCalcd) OnScreen(w, h int) bool {
	b := pc.Bounds
	return b[2] >= 0 && b[3] >= 0 && b[0] < float32(w) && b[1] < float32(h)
}

// Rewind swaps the second and third corners, flipping the winding.
func (t *SingleFullTriangle) Rewind() {
	t.P[1], t.P[2] = t.P[2], t.P[1]
}
