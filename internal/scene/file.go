// Package scene loads YAML scene descriptions into the stores the
// renderer draws from.
package scene

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the YAML layout of a scene.
type File struct {
	Camera    CameraDef     `yaml:"camera"`
	Textures  []TextureDef  `yaml:"textures"`
	Sets      []SetDef      `yaml:"sets"`
	Meshes    []MeshDef     `yaml:"meshes"`
	Instances []InstanceDef `yaml:"instances"`
}

// CameraDef places the camera.
type CameraDef struct {
	Pos   [3]float32 `yaml:"pos"`
	Yaw   float32    `yaml:"yaw"`
	Pitch float32    `yaml:"pitch"`
	Roll  float32    `yaml:"roll"`
	Speed float32    `yaml:"speed"`
}

// TextureDef is one texture: an image file or a generated pattern.
// Exactly one of File, Solid and Checker is set.
type TextureDef struct {
	Name    string      `yaml:"name"`
	File    string      `yaml:"file"`
	Solid   *SolidDef   `yaml:"solid"`
	Checker *CheckerDef `yaml:"checker"`
	// Key is "magenta", a hex colour such as 0x00FF00, or empty for none.
	Key string `yaml:"key"`
}

// SolidDef generates a single-colour texture.
type SolidDef struct {
	Color uint32 `yaml:"color"`
	Size  int    `yaml:"size"`
}

// CheckerDef generates a checkerboard.
type CheckerDef struct {
	Size int    `yaml:"size"`
	Cell int    `yaml:"cell"`
	A    uint32 `yaml:"a"`
	B    uint32 `yaml:"b"`
}

// SetDef is an animated texture set.
type SetDef struct {
	Name   string   `yaml:"name"`
	Frames []string `yaml:"frames"`
	Ticks  []uint32 `yaml:"ticks"`
}

// MeshDef is a named mesh with its LODs, finest first.
type MeshDef struct {
	Name string   `yaml:"name"`
	LODs []LODDef `yaml:"lods"`
}

// LODDef is one level of detail. Exactly one of the primitives or the
// inline Vertices/Triangles pair is set.
type LODDef struct {
	Quad      *PrimitiveDef `yaml:"quad"`
	Cube      *PrimitiveDef `yaml:"cube"`
	Billboard *PrimitiveDef `yaml:"billboard"`

	Vertices  [][3]float32  `yaml:"vertices"`
	Triangles []TriangleDef `yaml:"triangles"`
}

// PrimitiveDef sizes and paints a generated LOD.
type PrimitiveDef struct {
	Surface `yaml:",inline"`

	Half float32 `yaml:"half"`
}

// Surface is what a triangle or primitive is painted with. Set names an
// animated texture set and wins over Texture.
type Surface struct {
	Texture  string      `yaml:"texture"`
	Set      string      `yaml:"set"`
	Tint     *[3]float32 `yaml:"tint"`
	TwoSided bool        `yaml:"two_sided"`
}

// TriangleDef is one inline triangle. UV defaults to (0,0) (1,0) (1,1).
type TriangleDef struct {
	Surface `yaml:",inline"`

	Idx [3]uint32      `yaml:"idx"`
	UV  *[3][2]float32 `yaml:"uv"`
}

// InstanceDef places a mesh.
type InstanceDef struct {
	Mesh       string     `yaml:"mesh"`
	Bucket     int        `yaml:"bucket"`
	Pos        [3]float32 `yaml:"pos"`
	Yaw        float32    `yaml:"yaw"`
	Pitch      float32    `yaml:"pitch"`
	Roll       float32    `yaml:"roll"`
	Hidden     bool       `yaml:"hidden"`
	WorldSpace bool       `yaml:"world_space"`
	ViewModel  bool       `yaml:"view_model"`
}

// Parse decodes a scene file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	return &f, nil
}

// Marshal encodes a scene file.
func (f *File) Marshal() ([]byte, error) {
	return yaml.Marshal(f)
}
