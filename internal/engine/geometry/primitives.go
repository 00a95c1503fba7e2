// Package geometry holds the triangle records shared by the transform,
// binning and raster stages, plus planes, lines and near-plane clipping.
package geometry

import (
	"github.com/Faultbox/tilerast/pkg/math"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// NearPlane returns the camera-space clip plane z = near, facing +z.
func NearPlane(near float32) Plane {
	return Plane{Normal: math.Vec3{Z: 1}, D: -near}
}

// PlaneFromPoint returns the plane through p with the given normal.
func PlaneFromPoint(normal, p math.Vec3) Plane {
	return Plane{Normal: normal, D: -normal.Dot(p)}
}

// SignedDistance returns the distance of p in front of the plane.
// It is negative behind it.
func (pl Plane) SignedDistance(p math.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Line is the segment From→To.
type Line struct {
	From, To math.Vec3
}

// Intersect returns the parameter t at which the line crosses pl, with the
// crossing point From + t·(To−From). ok is false for lines parallel to pl.
func (l Line) Intersect(pl Plane) (t float32, ok bool) {
	d0 := pl.SignedDistance(l.From)
	d1 := pl.SignedDistance(l.To)
	if d0 == d1 {
		return 0, false
	}
	return d0 / (d0 - d1), true
}

// At returns the point at parameter t.
func (l Line) At(t float32) math.Vec3 {
	return l.From.Lerp(l.To, t)
}

// RGB is a colour with float channels in [0, 1].
type RGB struct {
	R, G, B float32
}

// White is the neutral tint.
var White = RGB{1, 1, 1}

// Lerp interpolates linearly from c towards o by t.
func (c RGB) Lerp(o RGB, t float32) RGB {
	return RGB{c.R + t*(o.R-c.R), c.G + t*(o.G-c.G), c.B + t*(o.B-c.B)}
}
