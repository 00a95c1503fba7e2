package lanes

import "github.com/Faultbox/tilerast/pkg/math"

// Vec3 is Width 3D vectors stored component-wise.
type Vec3 struct {
	X, Y, Z F32
}

// SplatVec3 broadcasts v into every lane.
func SplatVec3(v math.Vec3) Vec3 {
	return Vec3{SplatF32(v.X), SplatF32(v.Y), SplatF32(v.Z)}
}

// LoadVec3 reads Width vectors from parallel component slices starting at i.
func LoadVec3(xs, ys, zs []float32, i int) Vec3 {
	return Vec3{LoadF32(xs[i:]), LoadF32(ys[i:]), LoadF32(zs[i:])}
}

// Store writes the vectors to parallel component slices starting at i.
func (v Vec3) Store(xs, ys, zs []float32, i int) {
	v.X.Store(xs[i:])
	v.Y.Store(ys[i:])
	v.Z.Store(zs[i:])
}

// Add returns v + o per lane.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)}
}

// Sub returns v - o per lane.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)}
}

// dot3 computes the dot product of every lane with a fixed row.
func (v Vec3) dot3(row math.Vec3) F32 {
	return v.X.MulS(row.X).Add(v.Y.MulS(row.Y)).Add(v.Z.MulS(row.Z))
}

// Rotate applies r to every lane.
func (v Vec3) Rotate(r math.Rotation) Vec3 {
	return Vec3{v.dot3(r.R1), v.dot3(r.R2), v.dot3(r.R3)}
}

// Lane extracts lane i as a scalar vector.
func (v Vec3) Lane(i int) math.Vec3 {
	return math.Vec3{X: v.X[i], Y: v.Y[i], Z: v.Z[i]}
}
