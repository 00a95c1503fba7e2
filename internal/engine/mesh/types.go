// Package mesh holds mesh geometry with levels of detail, the named mesh
// registry and the bucketed instance lists the renderer iterates.
package mesh

import (
	"errors"

	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/pkg/math"
)

var (
	// ErrNotFound is returned when a mesh name is not registered.
	ErrNotFound = errors.New("mesh not found")
	// ErrInvalidGeometry is returned when geometry streams disagree in length
	// or an index is out of range.
	ErrInvalidGeometry = errors.New("invalid mesh geometry")
)

// Vertex is one triangle corner: a vertex index plus its UV and tint.
type Vertex struct {
	Idx   uint32
	UV    math.Vec2
	Color geometry.RGB
}

// Stream is one corner column of the triangle table.
type Stream struct {
	Idx   []uint32
	UV    []math.Vec2
	Color []geometry.RGB
}

// Corner returns entry i of the stream.
func (s *Stream) Corner(i int) Vertex {
	return Vertex{Idx: s.Idx[i], UV: s.UV[i], Color: s.Color[i]}
}

func (s *Stream) push(v Vertex) {
	s.Idx = append(s.Idx, v.Idx)
	s.UV = append(s.UV, v.UV)
	s.Color = append(s.Color, v.Color)
}

// Geometry is a vertex-array LOD: positions as parallel arrays and a
// triangle table of three corner streams plus per-triangle texture/flags.
// For FlagAnimated triangles Tex is a texture set index.
type Geometry struct {
	X, Y, Z []float32
	P       [3]Stream
	Tex     []uint32
	Flags   []geometry.Flags
}

// Billboard is an impostor LOD: a camera-facing quad of half-extent Size
// (0 means the mesh size) drawn at the instance's depth.
type Billboard struct {
	Texture uint32
	Color   geometry.RGB
	Size    float32
	Flags   geometry.Flags
}

// LOD is exactly one of Geometry or Billboard.
type LOD struct {
	Geometry  *Geometry
	Billboard *Billboard
}

// IsBillboard reports whether the LOD is an impostor.
func (l LOD) IsBillboard() bool {
	return l.Billboard != nil
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Radius returns the largest distance from the origin to a box corner.
func (b Bounds) Radius() float32 {
	far := math.Vec3{
		X: max(-b.Min.X, b.Max.X),
		Y: max(-b.Min.Y, b.Max.Y),
		Z: max(-b.Min.Z, b.Max.Z),
	}
	return far.Length()
}
