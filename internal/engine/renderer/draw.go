package renderer

import (
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/pkg/math"
)

// billboardNormal faces the camera.
var billboardNormal = geometry.PackNormal(math.Vec3{Z: -1})

// drawInstance culls one instance, picks its LOD and bins the result.
func (r *Renderer) drawInstance(sc *Scratch, h mesh.Handle) {
	sc.stats.Instances++
	vp := &r.viewport

	in := r.scene.Instances.At(h)
	m := r.scene.Meshes.At(in.Mesh)
	if m == nil {
		sc.stats.Culled++
		return
	}

	p := placementOf(in, vp)
	c := p.center(in, vp)
	if !vp.InView(c, m.Size) {
		sc.stats.Culled++
		return
	}

	pixels := 2 * m.Size * vp.Scale(max(c.Z, vp.Near))
	lod := m.Pick(pixels, r.config.LODPixels, r.config.ImpostorPixels)
	if lod.IsBillboard() {
		sc.stats.Impostors++
		r.emitBillboard(sc, c, m.Size, lod.Billboard)
		return
	}

	TransformInstance(sc, lod.Geometry, in, vp)
	sc.stats.Clipped += ClipAndEmit(sc, lod.Geometry, vp.Near)
	ProjectToRaster(&sc.Clipped, vp)
	r.emit(sc)
}

// emit prepares the clipped, projected triangles in sc and bins them.
func (r *Renderer) emit(sc *Scratch) {
	c := &sc.Clipped
	e := &sc.entry
	tri := &e.Tri

	for i := range c.Tris {
		ct := &c.Tris[i]
		for k, j := range ct.Idx {
			zr := c.Z[j]
			tri.P[k] = geometry.TrianglePointData{
				Pos:   math.Vec3{X: c.X[j], Y: c.Y[j], Z: zr},
				UV:    ct.UV[k].Scale(zr),
				Color: ct.Color[k],
			}
		}
		tri.Flags = ct.Flags
		tri.Texture = r.resolveTexture(ct.Tex, ct.Flags)

		e.Pre = geometry.Prepare(tri, ct.Normal)
		if e.Pre.Area < 0 && tri.Flags.Has(geometry.FlagTwoSided) {
			tri.Rewind()
			e.Pre = geometry.Prepare(tri, ct.Normal)
		}
		if e.Pre.Area <= 0 {
			sc.stats.BackFaces++
			continue
		}
		if !e.Pre.OnScreen(r.config.Width, r.config.Height) {
			sc.stats.OffScreen++
			continue
		}
		r.push(sc)
	}
}

// emitBillboard bins a camera-facing quad of half-extent bb.Size (or size
// when zero) centred on the camera-space point c.
func (r *Renderer) emitBillboard(sc *Scratch, c math.Vec3, size float32, bb *mesh.Billboard) {
	vp := &r.viewport
	if c.Z < vp.Near {
		sc.stats.Clipped++
		return
	}
	half := bb.Size
	if half <= 0 {
		half = size
	}

	tl := vp.Project(math.Vec3{X: c.X - half, Y: c.Y + half, Z: c.Z})
	br := vp.Project(math.Vec3{X: c.X + half, Y: c.Y - half, Z: c.Z})

	e := &sc.entry
	e.Tri = geometry.SingleFullTriangle{
		P: [3]geometry.TrianglePointData{
			{Pos: tl, Color: bb.Color},
			{Pos: br, Color: bb.Color},
			{Pos: br, Color: bb.Color},
		},
		Texture: r.resolveTexture(bb.Texture, bb.Flags),
		Flags:   bb.Flags | geometry.FlagBillboard,
	}

	area := 2 * (br.X - tl.X) * (br.Y - tl.Y)
	e.Pre = geometry.PreCalcd{
		Area:   area,
		Normal: billboardNormal,
		Bounds: [4]float32{tl.X, tl.Y, br.X, br.Y},
	}
	if area <= 0 {
		sc.stats.OffScreen++
		return
	}
	e.Pre.InvArea = 1 / area
	if !e.Pre.OnScreen(r.config.Width, r.config.Height) {
		sc.stats.OffScreen++
		return
	}
	r.push(sc)
}

// resolveTexture maps animated texture-set indices to this frame's texture.
func (r *Renderer) resolveTexture(tex uint32, flags geometry.Flags) uint32 {
	if flags.Has(geometry.FlagAnimated) {
		return uint32(r.scene.Textures.Current(tex))
	}
	return tex
}

func (r *Renderer) push(sc *Scratch) {
	if r.bins.Push(&sc.entry) {
		sc.stats.Triangles++
	} else {
		sc.stats.Dropped++
	}
}
