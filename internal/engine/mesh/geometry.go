package mesh

import (
	"fmt"

	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Vertices returns the vertex count.
func (g *Geometry) Vertices() int {
	return len(g.X)
}

// Triangles returns the triangle count.
func (g *Geometry) Triangles() int {
	return len(g.Tex)
}

// Position returns vertex i.
func (g *Geometry) Position(i uint32) math.Vec3 {
	return math.Vec3{X: g.X[i], Y: g.Y[i], Z: g.Z[i]}
}

// AddVertex appends a position and returns its index.
func (g *Geometry) AddVertex(p math.Vec3) uint32 {
	g.X = append(g.X, p.X)
	g.Y = append(g.Y, p.Y)
	g.Z = append(g.Z, p.Z)
	return uint32(len(g.X) - 1)
}

// AddTriangle appends a triangle. Corners are clockwise as seen from the
// front.
func (g *Geometry) AddTriangle(a, b, c Vertex, tex uint32, flags geometry.Flags) {
	g.P[0].push(a)
	g.P[1].push(b)
	g.P[2].push(c)
	g.Tex = append(g.Tex, tex)
	g.Flags = append(g.Flags, flags)
}

// Validate checks that every stream has the same length and that every
// index is in range.
func (g *Geometry) Validate() error {
	n := len(g.X)
	if len(g.Y) != n || len(g.Z) != n {
		return fmt.Errorf("%w: position arrays %d/%d/%d", ErrInvalidGeometry, len(g.X), len(g.Y), len(g.Z))
	}

	t := len(g.Tex)
	if len(g.Flags) != t {
		return fmt.Errorf("%w: %d textures but %d flags", ErrInvalidGeometry, t, len(g.Flags))
	}
	for c := range g.P {
		s := &g.P[c]
		if len(s.Idx) != t || len(s.UV) != t || len(s.Color) != t {
			return fmt.Errorf("%w: corner %d stream length differs from %d", ErrInvalidGeometry, c, t)
		}
		for i, idx := range s.Idx {
			if int(idx) >= n {
				return fmt.Errorf("%w: triangle %d corner %d index %d >= %d", ErrInvalidGeometry, i, c, idx, n)
			}
		}
	}
	return nil
}

// Bounds returns the bounding box of all vertices.
func (g *Geometry) Bounds() Bounds {
	if len(g.X) == 0 {
		return Bounds{}
	}
	b := Bounds{
		Min: math.Vec3{X: 1e10, Y: 1e10, Z: 1e10},
		Max: math.Vec3{X: -1e10, Y: -1e10, Z: -1e10},
	}
	for i := range g.X {
		b.Min.X = min(b.Min.X, g.X[i])
		b.Min.Y = min(b.Min.Y, g.Y[i])
		b.Min.Z = min(b.Min.Z, g.Z[i])
		b.Max.X = max(b.Max.X, g.X[i])
		b.Max.Y = max(b.Max.Y, g.Y[i])
		b.Max.Z = max(b.Max.Z, g.Z[i])
	}
	return b
}
