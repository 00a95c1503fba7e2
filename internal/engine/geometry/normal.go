package geometry

import (
	"github.com/Faultbox/tilerast/pkg/math"
)

// PackedNormal is a unit normal quantised to three signed bytes (x, y, z
// from the low byte up) with one byte of padding.
type PackedNormal uint32

// PackNormal quantises a unit vector. Components are clamped to [-1, 1].
func PackNormal(n math.Vec3) PackedNormal {
	q := func(c float32) uint32 {
		c = min(max(c, -1), 1)
		return uint32(uint8(int8(c * 127)))
	}
	return PackedNormal(q(n.X) | q(n.Y)<<8 | q(n.Z)<<16)
}

// FaceNormal returns the packed unit normal of the triangle a, b, c.
func FaceNormal(a, b, c math.Vec3) PackedNormal {
	return PackNormal(b.Sub(a).Cross(c.Sub(a)).Normalize())
}

// Unpack returns the approximate unit vector.
func (p PackedNormal) Unpack() math.Vec3 {
	c := func(shift uint) float32 {
		return float32(int8(uint8(p>>shift))) / 127
	}
	return math.Vec3{X: c(0), Y: c(8), Z: c(16)}
}
