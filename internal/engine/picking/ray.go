// Package picking casts rays from raster pixels into the scene.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Ray is a half-line. Dir is normalized.
type Ray struct {
	Origin math.Vec3
	Dir    math.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// ScreenRay returns the world-space ray through raster point (px, py),
// starting on the near plane. It inverts Viewport.Project.
func ScreenRay(vp *camera.Viewport, px, py float32) Ray {
	d := math.Vec3{
		X: (px/vp.HalfW - 1) / vp.Near,
		Y: (1 - py/vp.HalfH) / (vp.Near * vp.Aspect),
		Z: 1,
	}
	world := vp.Rot.Inverse().Rotate(d)
	return Ray{
		Origin: vp.Pos.Add(world.Scale(vp.Near)),
		Dir:    world.Normalize(),
	}
}

// IntersectBounds tests the ray against an axis-aligned box with the slab
// method. It returns the entry distance, or the exit distance when the
// origin is inside the box.
func (r Ray) IntersectBounds(b mesh.Bounds) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	o := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	d := [3]float32{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float32{b.Max.X, b.Max.Y, b.Max.Z}

	for i := range o {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < 0 || tmin > tmax {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

// Hit is an instance under a ray.
type Hit struct {
	Handle mesh.Handle
	Mesh   *mesh.Mesh
	// T is the distance along the ray to the instance bounds.
	T float32
}

// Pick returns the nearest instance of handles whose bounds r hits. The
// ray is moved into each instance's mesh space, so rotated instances are
// tested against their own box. View-model instances follow the camera and
// are not pickable. The caller must hold the mesh and instance read locks.
func Pick(r Ray, handles []mesh.Handle, instances *mesh.Instances, meshes *mesh.Registry) (Hit, bool) {
	var best Hit
	found := false

	for _, h := range handles {
		in := instances.At(h)
		if in.ViewModel {
			continue
		}
		m := meshes.At(in.Mesh)
		if m == nil {
			continue
		}

		local := Ray{Origin: r.Origin.Sub(in.Pos), Dir: r.Dir}
		if !in.WorldSpace {
			inv := in.Rotation().Inverse()
			local.Origin = inv.Rotate(local.Origin)
			local.Dir = inv.Rotate(local.Dir)
		}

		t, ok := local.IntersectBounds(m.Bounds())
		if ok && (!found || t < best.T) {
			best = Hit{Handle: h, Mesh: m, T: t}
			found = true
		}
	}
	return best, found
}
