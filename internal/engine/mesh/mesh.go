package mesh

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/pkg/math"
)

// Mesh is a named object with one or more LODs, finest first.
type Mesh struct {
	Name string
	// Size is the bounding radius around the mesh origin.
	Size float32
	LODs []LOD
}

// New validates the LODs and derives Size from the geometry. Billboard
// sizes count too, so a pure impostor still culls correctly.
func New(name string, lods ...LOD) (*Mesh, error) {
	if len(lods) == 0 {
		return nil, fmt.Errorf("mesh %q: %w: no LODs", name, ErrInvalidGeometry)
	}

	m := &Mesh{Name: name, LODs: lods}
	for i, l := range lods {
		switch {
		case l.Geometry != nil && l.Billboard != nil:
			return nil, fmt.Errorf("mesh %q LOD %d: %w: both geometry and billboard", name, i, ErrInvalidGeometry)
		case l.Geometry != nil:
			if err := l.Geometry.Validate(); err != nil {
				return nil, fmt.Errorf("mesh %q LOD %d: %w", name, i, err)
			}
			m.Size = max(m.Size, l.Geometry.Bounds().Radius())
		case l.Billboard != nil:
			m.Size = max(m.Size, l.Billboard.Size*math32.Sqrt(2))
		default:
			return nil, fmt.Errorf("mesh %q LOD %d: %w: empty", name, i, ErrInvalidGeometry)
		}
	}
	if m.Size <= 0 {
		return nil, fmt.Errorf("mesh %q: %w: zero size", name, ErrInvalidGeometry)
	}
	return m, nil
}

// Pick chooses the LOD for an instance covering pixels on screen. Geometry
// level i is used down to lodPixels/2^i. A billboard LOD, if any, takes
// over below impostorPixels.
func (m *Mesh) Pick(pixels, lodPixels, impostorPixels float32) LOD {
	bb, ngeo := -1, 0
	for i, l := range m.LODs {
		if l.IsBillboard() {
			if bb < 0 {
				bb = i
			}
			continue
		}
		ngeo++
	}

	if bb >= 0 && (ngeo == 0 || pixels < impostorPixels) {
		return m.LODs[bb]
	}

	level := 0
	threshold := lodPixels
	for level < ngeo-1 && pixels < threshold {
		level++
		threshold /= 2
	}
	for _, l := range m.LODs {
		if l.IsBillboard() {
			continue
		}
		if level == 0 {
			return l
		}
		level--
	}
	return m.LODs[0]
}

// Bounds returns the box of the finest geometry LOD, or the cube of half
// side Size for a pure impostor.
func (m *Mesh) Bounds() Bounds {
	for _, l := range m.LODs {
		if l.Geometry != nil {
			return l.Geometry.Bounds()
		}
	}
	s := m.Size
	return Bounds{Min: math.Vec3{X: -s, Y: -s, Z: -s}, Max: math.Vec3{X: s, Y: s, Z: s}}
}
