package camera

import (
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Viewport is read-only for the duration of a frame.
type Viewport struct {
	Near         float32
	HalfW, HalfH float32
	// Aspect is width / height.
	Aspect        float32
	Width, Height int
	// Plane is the world-space plane through the camera facing forward.
	Plane geometry.Plane
	Pos   math.Vec3
	// Rot maps world directions into camera space.
	Rot math.Rotation
}

// ToCamera maps a world-space point into camera space.
func (v *Viewport) ToCamera(p math.Vec3) math.Vec3 {
	return v.Rot.Rotate(p.Sub(v.Pos))
}

// Project maps a camera-space point in front of the near plane to raster
// space (x, y in pixels, z = 1/z). Every product is rounded to float32 so
// the lane projection produces identical results.
func (v *Viewport) Project(p math.Vec3) math.Vec3 {
	zr := 1 / p.Z
	return math.Vec3{
		X: float32((1 + float32(float32(v.Near*p.X)*zr)) * v.HalfW),
		Y: float32((1 - float32(float32(float32(v.Near*p.Y)*zr)*v.Aspect)) * v.HalfH),
		Z: zr,
	}
}

// Scale returns how many pixels one world unit at camera depth z covers.
func (v *Viewport) Scale(z float32) float32 {
	return v.Near * v.HalfW / z
}

// InView reports whether a sphere of radius r around the camera-space
// point c can touch the visible region. It is conservative.
func (v *Viewport) InView(c math.Vec3, r float32) bool {
	zf := c.Z + r
	if zf < v.Near {
		return false
	}
	// Half extents of the view cone at the sphere's far depth.
	xr := zf / v.Near
	yr := zf / (v.Near * v.Aspect)
	return c.X-r < xr && c.X+r > -xr && c.Y-r < yr && c.Y+r > -yr
}
