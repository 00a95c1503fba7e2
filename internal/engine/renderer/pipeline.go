package renderer

import (
	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Clipped is an indexed triangle list produced by near-plane clipping.
// X, Y, Z hold camera-space positions until ProjectToRaster rewrites them
// in raster space with Z = 1/z.
type Clipped struct {
	X, Y, Z []float32
	Tris    []ClippedTriangle

	// ref maps source vertex indices to output indices, -1 when unused.
	ref []int32
}

// ClippedTriangle references three vertices of its Clipped mesh.
type ClippedTriangle struct {
	Idx    [3]uint32
	UV     [3]math.Vec2
	Color  [3]geometry.RGB
	Tex    uint32
	Flags  geometry.Flags
	Normal geometry.PackedNormal
}

// Vertices returns the number of output vertices.
func (c *Clipped) Vertices() int {
	return len(c.X)
}

func (c *Clipped) reset(sources int) {
	c.X, c.Y, c.Z = c.X[:0], c.Y[:0], c.Z[:0]
	c.Tris = c.Tris[:0]
	c.ref = grow(c.ref, sources)
	for i := range c.ref {
		c.ref[i] = -1
	}
}

func (c *Clipped) vertex(p math.Vec3) uint32 {
	c.X = append(c.X, p.X)
	c.Y = append(c.Y, p.Y)
	c.Z = append(c.Z, p.Z)
	return uint32(len(c.X) - 1)
}

// reuse emits source vertex src once and returns its output index.
func (c *Clipped) reuse(src uint32, p math.Vec3) uint32 {
	if c.ref[src] < 0 {
		c.ref[src] = int32(c.vertex(p))
	}
	return uint32(c.ref[src])
}

// Scratch is per-worker buffer space reused across instances and frames.
type Scratch struct {
	// Camera-space positions of the instance being drawn.
	X, Y, Z []float32
	Clipped Clipped

	entry binner.Entry
	stats Stats
}

// placement describes how an instance's vertices reach camera space:
// optional instance rotation, a translation, then optional camera rotation.
type placement struct {
	inst    math.Rotation
	useInst bool
	offset  math.Vec3
	cam     math.Rotation
	useCam  bool
}

func placementOf(in *mesh.Instance, vp *camera.Viewport) placement {
	switch {
	case in.ViewModel:
		return placement{
			inst:    in.Rotation(),
			useInst: !in.WorldSpace,
			offset:  in.Pos,
		}
	case in.WorldSpace:
		return placement{
			offset: in.Pos.Sub(vp.Pos),
			cam:    vp.Rot,
			useCam: true,
		}
	default:
		return placement{
			inst:    in.Rotation(),
			useInst: true,
			offset:  in.Pos.Sub(vp.Pos),
			cam:     vp.Rot,
			useCam:  true,
		}
	}
}

// center returns the instance origin in camera space.
func (p placement) center(in *mesh.Instance, vp *camera.Viewport) math.Vec3 {
	if !p.useCam {
		return in.Pos
	}
	return rotate(in.Pos.Sub(vp.Pos), vp.Rot)
}

// TransformInstance writes the camera-space positions of g's vertices into
// sc.X, sc.Y, sc.Z. Whole lane groups run through the lane path and the
// remainder through scalar code with identical rounding.
func TransformInstance(sc *Scratch, g *mesh.Geometry, in *mesh.Instance, vp *camera.Viewport) {
	p := placementOf(in, vp)
	n := g.Vertices()
	sc.X, sc.Y, sc.Z = grow(sc.X, n), grow(sc.Y, n), grow(sc.Z, n)

	off := lanes.SplatVec3(p.offset)
	i := 0
	for ; i+lanes.Width <= n; i += lanes.Width {
		v := lanes.LoadVec3(g.X, g.Y, g.Z, i)
		if p.useInst {
			v = v.Rotate(p.inst)
		}
		v = v.Add(off)
		if p.useCam {
			v = v.Rotate(p.cam)
		}
		v.Store(sc.X, sc.Y, sc.Z, i)
	}

	for ; i < n; i++ {
		v := math.Vec3{X: g.X[i], Y: g.Y[i], Z: g.Z[i]}
		if p.useInst {
			v = rotate(v, p.inst)
		}
		v = v.Add(p.offset)
		if p.useCam {
			v = rotate(v, p.cam)
		}
		sc.X[i], sc.Y[i], sc.Z[i] = v.X, v.Y, v.Z
	}
}

// ClipAndEmit clips every triangle of g, using the camera-space positions
// in sc, against the plane z = near and fills sc.Clipped. Vertices of
// unclipped corners are emitted once no matter how many triangles share
// them. It returns how many source triangles were cut or removed.
func ClipAndEmit(sc *Scratch, g *mesh.Geometry, near float32) (clipped int) {
	out := &sc.Clipped
	out.reset(g.Vertices())
	plane := geometry.NearPlane(near)

	for t := 0; t < g.Triangles(); t++ {
		var cv [3]geometry.ClipVertex
		var src [3]uint32
		for k := range cv {
			c := g.P[k].Corner(t)
			src[k] = c.Idx
			cv[k] = geometry.ClipVertex{
				Pos:   math.Vec3{X: sc.X[c.Idx], Y: sc.Y[c.Idx], Z: sc.Z[c.Idx]},
				UV:    c.UV,
				Color: c.Color,
			}
		}
		normal := geometry.FaceNormal(cv[0].Pos, cv[1].Pos, cv[2].Pos)

		tris, n := geometry.ClipTriangle(plane, cv)
		if n == 0 {
			clipped++
			continue
		}

		cut := false
		for _, tri := range tris[:n] {
			ct := ClippedTriangle{Tex: g.Tex[t], Flags: g.Flags[t], Normal: normal}
			for k, v := range tri {
				if v.Src >= 0 {
					ct.Idx[k] = out.reuse(src[v.Src], v.Pos)
				} else {
					ct.Idx[k] = out.vertex(v.Pos)
					cut = true
				}
				ct.UV[k] = v.UV
				ct.Color[k] = v.Color
			}
			out.Tris = append(out.Tris, ct)
		}
		if cut {
			clipped++
		}
	}
	return clipped
}

// ProjectToRaster maps every vertex of c, which must lie on or in front of
// the near plane, to raster space in place.
func ProjectToRaster(c *Clipped, vp *camera.Viewport) {
	n := c.Vertices()
	one := lanes.SplatF32(1)

	i := 0
	for ; i+lanes.Width <= n; i += lanes.Width {
		zr := lanes.LoadF32(c.Z[i:]).Recip()
		x := lanes.LoadF32(c.X[i:]).MulS(vp.Near).Mul(zr).AddS(1).MulS(vp.HalfW)
		y := one.Sub(lanes.LoadF32(c.Y[i:]).MulS(vp.Near).Mul(zr).MulS(vp.Aspect)).MulS(vp.HalfH)
		x.Store(c.X[i:])
		y.Store(c.Y[i:])
		zr.Store(c.Z[i:])
	}

	for ; i < n; i++ {
		p := vp.Project(math.Vec3{X: c.X[i], Y: c.Y[i], Z: c.Z[i]})
		c.X[i], c.Y[i], c.Z[i] = p.X, p.Y, p.Z
	}
}

// rotate matches lanes.Vec3.Rotate bit for bit.
func rotate(v math.Vec3, r math.Rotation) math.Vec3 {
	return math.Vec3{X: dot(v, r.R1), Y: dot(v, r.R2), Z: dot(v, r.R3)}
}

func dot(v, row math.Vec3) float32 {
	xy := float32(v.X*row.X) + float32(v.Y*row.Y)
	return xy + float32(v.Z*row.Z)
}

func grow[T any](s []T, n int) []T {
	if cap(s) < n {
		return make([]T, n)
	}
	return s[:n]
}
