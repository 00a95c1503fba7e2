package mesh

import (
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/pkg/math"
)

// addFace appends a square face centred at c with outward normal n and the
// given screen-up direction, as two clockwise triangles.
func (g *Geometry) addFace(c, n, up math.Vec3, half float32, tex uint32, tint geometry.RGB, flags geometry.Flags) {
	right := n.Cross(up).Scale(half)
	up = up.Scale(half)

	tl := g.AddVertex(c.Sub(right).Add(up))
	tr := g.AddVertex(c.Add(right).Add(up))
	br := g.AddVertex(c.Add(right).Sub(up))
	bl := g.AddVertex(c.Sub(right).Sub(up))

	v := func(i uint32, u, vv float32) Vertex {
		return Vertex{Idx: i, UV: math.Vec2{X: u, Y: vv}, Color: tint}
	}
	g.AddTriangle(v(tl, 0, 0), v(tr, 1, 0), v(br, 1, 1), tex, flags)
	g.AddTriangle(v(tl, 0, 0), v(br, 1, 1), v(bl, 0, 1), tex, flags)
}

// Quad returns a square of side 2·half in the z=0 plane facing −z.
func Quad(half float32, tex uint32, tint geometry.RGB, flags geometry.Flags) *Geometry {
	g := &Geometry{}
	g.addFace(math.Vec3{}, math.Vec3{Z: -1}, math.Vec3{Y: 1}, half, tex, tint, flags)
	return g
}

// Cube returns an axis-aligned cube of side 2·half with outward faces.
func Cube(half float32, tex uint32, tint geometry.RGB, flags geometry.Flags) *Geometry {
	g := &Geometry{}
	faces := []struct{ n, up math.Vec3 }{
		{math.Vec3{Z: -1}, math.Vec3{Y: 1}},
		{math.Vec3{Z: 1}, math.Vec3{Y: 1}},
		{math.Vec3{X: -1}, math.Vec3{Y: 1}},
		{math.Vec3{X: 1}, math.Vec3{Y: 1}},
		{math.Vec3{Y: 1}, math.Vec3{Z: 1}},
		{math.Vec3{Y: -1}, math.Vec3{Z: -1}},
	}
	for _, f := range faces {
		g.addFace(f.n.Scale(half), f.n, f.up, half, tex, tint, flags)
	}
	return g
}
