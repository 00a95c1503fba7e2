package scene

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/tilerast/internal/assets"
	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/internal/engine/renderer"
	"github.com/Faultbox/tilerast/internal/engine/texture"
	"github.com/Faultbox/tilerast/internal/logger"
	"github.com/Faultbox/tilerast/pkg/math"
)

// Options configures how a scene is built.
type Options struct {
	// Fallback names the texture substituted for missing or broken ones.
	// It is loaded from the assets when present and generated otherwise.
	Fallback string
	// Buckets is the number of instance buckets to preallocate.
	Buckets int
}

// Load reads the scene file at path through am and builds it.
//
// Only a missing or unparsable file is fatal. Otherwise the returned scene
// is usable and err aggregates every entry that was skipped or replaced
// by a fallback.
func Load(am *assets.Manager, path string, opts Options) (renderer.Scene, error) {
	data, err := am.Load(path)
	if err != nil {
		return renderer.Scene{}, fmt.Errorf("loading scene: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return renderer.Scene{}, fmt.Errorf("%s: %w", path, err)
	}
	return f.Build(am, opts)
}

// Build creates the stores described by f. Errors are aggregated as for Load.
func (f *File) Build(am *assets.Manager, opts Options) (renderer.Scene, error) {
	if opts.Fallback == "" {
		opts.Fallback = texture.DefaultFallback
	}
	b := &builder{
		am:       am,
		log:      logger.Named("scene"),
		fallback: opts.Fallback,
		scene: renderer.Scene{
			Textures:  texture.NewStore(opts.Fallback),
			Meshes:    mesh.NewRegistry(mesh.DefaultFallback),
			Instances: mesh.NewInstances(max(opts.Buckets, 1)),
			Camera:    camera.New(),
		},
	}

	for i, d := range f.Textures {
		b.fail(b.texture(i, d))
	}
	b.ensureFallbackTexture()
	for _, d := range f.Sets {
		b.set(d)
	}
	for i, d := range f.Meshes {
		b.fail(b.mesh(i, d))
	}
	b.ensureFallbackMesh()
	for i, d := range f.Instances {
		b.fail(b.instance(i, d))
	}
	b.camera(f.Camera)

	b.log.Info("scene built",
		zap.Int("textures", b.scene.Textures.Len()),
		zap.Int("sets", len(f.Sets)),
		zap.Int("meshes", b.scene.Meshes.Len()),
		zap.Int("instances", b.scene.Instances.Len()),
		zap.Int("errors", len(multierr.Errors(b.errs))),
	)
	return b.scene, b.errs
}

type builder struct {
	am       *assets.Manager
	log      *zap.Logger
	fallback string
	scene    renderer.Scene
	errs     error
}

func (b *builder) fail(err error) {
	if err != nil {
		b.errs = multierr.Append(b.errs, err)
	}
}

func (b *builder) texture(i int, d TextureDef) error {
	if d.Name == "" {
		return fmt.Errorf("texture #%d: missing name", i)
	}
	opts, err := keyOptions(d.Key)
	if err != nil {
		return fmt.Errorf("texture %q: %w", d.Name, err)
	}

	var t *texture.Texture
	switch {
	case d.File != "":
		data, err := b.am.Load(d.File)
		if err != nil {
			return fmt.Errorf("texture %q: %w", d.Name, err)
		}
		// The file name picks the decoder.
		t, err = texture.Load(d.File, data, opts...)
		if err != nil {
			return fmt.Errorf("texture %q: %w", d.Name, err)
		}
		t.Name = d.Name
	case d.Solid != nil:
		size := max(d.Solid.Size, 1)
		t = texture.Solid(d.Name, size, size, d.Solid.Color)
	case d.Checker != nil:
		size := d.Checker.Size
		if size <= 0 {
			size = 8
		}
		t = texture.Checker(d.Name, size, size, d.Checker.Cell, d.Checker.A, d.Checker.B)
	default:
		return fmt.Errorf("texture %q: needs one of file, solid or checker", d.Name)
	}
	if d.File == "" {
		for _, o := range opts {
			o(t)
		}
	}

	b.scene.Textures.Add(t)
	return nil
}

// keyOptions parses a transparency key: "magenta" or a hex RGB colour.
func keyOptions(key string) ([]texture.Option, error) {
	switch key = strings.TrimSpace(key); {
	case key == "":
		return nil, nil
	case strings.EqualFold(key, "magenta"):
		return []texture.Option{texture.WithMagentaKey()}, nil
	}
	v, err := strconv.ParseUint(key, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("bad key %q: %w", key, err)
	}
	return []texture.Option{texture.WithKey(uint32(v))}, nil
}

// ensureFallbackTexture registers the fallback from the assets, or a
// generated checker when no such file exists.
func (b *builder) ensureFallbackTexture() {
	store := b.scene.Textures
	if _, err := store.Find(b.fallback); err == nil {
		return
	}

	data, err := b.am.Load(b.fallback)
	if err == nil {
		var t *texture.Texture
		if t, err = texture.Load(b.fallback, data, texture.WithMagentaKey()); err == nil {
			store.Add(t)
			return
		}
	}
	if !errors.Is(err, assets.ErrNotFound) {
		b.fail(fmt.Errorf("fallback texture: %w", err))
	}

	b.log.Debug("generating fallback texture", zap.String("name", b.fallback))
	store.Add(texture.Checker(b.fallback, 8, 8, 2, texture.ARGB(255, 0, 255), 0))
}

func (b *builder) set(d SetDef) {
	ids := make([]texture.ID, len(d.Frames))
	for i, name := range d.Frames {
		id, ok := b.scene.Textures.Lookup(name)
		if !ok {
			b.fail(fmt.Errorf("set %q frame %q: %w", d.Name, name, texture.ErrNotFound))
		}
		ids[i] = id
	}
	b.scene.Textures.AddSet(texture.NewSet(d.Name, ids, d.Ticks))
}

// surface resolves what a triangle is painted with. A texture or set that
// does not resolve falls back to the fallback texture.
func (b *builder) surface(s Surface, where string) (tex uint32, tint geometry.RGB, flags geometry.Flags) {
	tint = geometry.White
	if s.Tint != nil {
		tint = geometry.RGB{R: s.Tint[0], G: s.Tint[1], B: s.Tint[2]}
	}
	if s.TwoSided {
		flags |= geometry.FlagTwoSided
	}

	store := b.scene.Textures
	if s.Set != "" {
		i, err := store.FindSet(s.Set)
		if err == nil {
			return uint32(i), tint, flags | geometry.FlagAnimated
		}
		b.fail(fmt.Errorf("%s: %w", where, err))
	}

	name := s.Texture
	if name == "" {
		name = b.fallback
	}
	id, ok := store.Lookup(name)
	if !ok {
		b.fail(fmt.Errorf("%s texture %q: %w", where, name, texture.ErrNotFound))
	}
	return uint32(id), tint, flags
}

func (b *builder) mesh(i int, d MeshDef) error {
	if d.Name == "" {
		return fmt.Errorf("mesh #%d: missing name", i)
	}
	lods := make([]mesh.LOD, 0, len(d.LODs))
	for j, l := range d.LODs {
		lod, err := b.lod(fmt.Sprintf("mesh %q LOD %d", d.Name, j), l)
		if err != nil {
			return err
		}
		lods = append(lods, lod)
	}

	m, err := mesh.New(d.Name, lods...)
	if err != nil {
		return err
	}
	b.scene.Meshes.Add(m)
	return nil
}

func (b *builder) lod(where string, l LODDef) (mesh.LOD, error) {
	kinds := 0
	for _, set := range []bool{l.Quad != nil, l.Cube != nil, l.Billboard != nil, len(l.Triangles) > 0} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return mesh.LOD{}, fmt.Errorf("%s: %w: needs exactly one of quad, cube, billboard or triangles", where, mesh.ErrInvalidGeometry)
	}

	switch {
	case l.Quad != nil:
		tex, tint, flags := b.surface(l.Quad.Surface, where)
		return mesh.LOD{Geometry: mesh.Quad(halfOr1(l.Quad.Half), tex, tint, flags)}, nil
	case l.Cube != nil:
		tex, tint, flags := b.surface(l.Cube.Surface, where)
		return mesh.LOD{Geometry: mesh.Cube(halfOr1(l.Cube.Half), tex, tint, flags)}, nil
	case l.Billboard != nil:
		tex, tint, flags := b.surface(l.Billboard.Surface, where)
		return mesh.LOD{Billboard: &mesh.Billboard{Texture: tex, Color: tint, Size: l.Billboard.Half, Flags: flags}}, nil
	}

	g := &mesh.Geometry{}
	for _, v := range l.Vertices {
		g.AddVertex(math.Vec3{X: v[0], Y: v[1], Z: v[2]})
	}
	for k, t := range l.Triangles {
		tex, tint, flags := b.surface(t.Surface, fmt.Sprintf("%s triangle %d", where, k))
		uv := [3][2]float32{{0, 0}, {1, 0}, {1, 1}}
		if t.UV != nil {
			uv = *t.UV
		}
		var c [3]mesh.Vertex
		for j := range c {
			c[j] = mesh.Vertex{Idx: t.Idx[j], UV: math.Vec2{X: uv[j][0], Y: uv[j][1]}, Color: tint}
		}
		g.AddTriangle(c[0], c[1], c[2], tex, flags)
	}
	return mesh.LOD{Geometry: g}, nil
}

func halfOr1(h float32) float32 {
	if h <= 0 {
		return 1
	}
	return h
}

// ensureFallbackMesh registers a fallback-textured cube under the
// registry's fallback name unless the scene defines one.
func (b *builder) ensureFallbackMesh() {
	reg := b.scene.Meshes
	if _, err := reg.Find(mesh.DefaultFallback); err == nil {
		return
	}
	id, _ := b.scene.Textures.Lookup(b.fallback)
	m, err := mesh.New(mesh.DefaultFallback, mesh.LOD{Geometry: mesh.Cube(1, uint32(id), geometry.White, 0)})
	if err != nil {
		b.fail(fmt.Errorf("fallback mesh: %w", err))
		return
	}
	reg.Add(m)
}

func (b *builder) instance(i int, d InstanceDef) error {
	if d.Bucket < 0 {
		return fmt.Errorf("instance #%d: negative bucket %d", i, d.Bucket)
	}
	// Unknown meshes still place the fallback mesh.
	var err error
	id, ok := b.scene.Meshes.Lookup(d.Mesh)
	if !ok {
		err = fmt.Errorf("instance #%d mesh %q: %w", i, d.Mesh, mesh.ErrNotFound)
	}

	b.scene.Instances.Add(d.Bucket, mesh.Instance{
		Pos:        math.Vec3{X: d.Pos[0], Y: d.Pos[1], Z: d.Pos[2]},
		Yaw:        d.Yaw,
		Pitch:      d.Pitch,
		Roll:       d.Roll,
		Mesh:       id,
		Visible:    !d.Hidden,
		WorldSpace: d.WorldSpace,
		ViewModel:  d.ViewModel,
	})
	return err
}

func (b *builder) camera(d CameraDef) {
	c := b.scene.Camera
	c.Pos = math.Vec3{X: d.Pos[0], Y: d.Pos[1], Z: d.Pos[2]}
	c.Yaw, c.Pitch, c.Roll = d.Yaw, d.Pitch, d.Roll
	if d.Speed > 0 {
		c.MoveSpeed = d.Speed
	}
}
