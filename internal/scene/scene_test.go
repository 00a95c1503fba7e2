package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"go.uber.org/multierr"

	"github.com/Faultbox/tilerast/internal/assets"
	"github.com/Faultbox/tilerast/internal/engine/framebuffer"
	"github.com/Faultbox/tilerast/internal/engine/geometry"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/internal/engine/renderer"
	"github.com/Faultbox/tilerast/internal/engine/texture"
)

const sampleScene = `
camera:
  pos: [0, 1, -5]
  yaw: 0.5
  speed: 8
textures:
  - name: grass
    file: tex/grass.png
  - name: red
    solid: {color: 0xFF0000, size: 2}
  - name: board
    checker: {size: 4, cell: 1, a: 0xFFFFFF, b: 0x000000}
    key: "0x000000"
sets:
  - name: blink
    frames: [red, board]
    ticks: [2, 1]
meshes:
  - name: box
    lods:
      - cube: {half: 2, texture: grass}
      - billboard: {half: 2, texture: red}
  - name: panel
    lods:
      - quad: {texture: board, two_sided: true, tint: [1, 0.5, 0.5]}
  - name: tri
    lods:
      - vertices: [[-1, -1, 0], [0, 1, 0], [1, -1, 0]]
        triangles:
          - idx: [0, 1, 2]
            uv: [[0, 1], [0.5, 0], [1, 1]]
            set: blink
instances:
  - mesh: box
    pos: [0, 0, 10]
  - mesh: panel
    bucket: 2
    pos: [3, 0, 10]
    hidden: true
  - mesh: tri
    pos: [0, 0, 2]
    view_model: true
`

func pngBytes(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < w*h; i++ {
		img.SetRGBA(i%w, i/w, c)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func testAssets(t *testing.T, files fstest.MapFS) *assets.Manager {
	t.Helper()
	am := assets.NewManager()
	am.AddFS("test", files)
	t.Cleanup(am.Close)
	return am
}

func TestLoadSampleScene(t *testing.T) {
	am := testAssets(t, fstest.MapFS{
		"scene.yaml":    {Data: []byte(sampleScene)},
		"tex/grass.png": {Data: pngBytes(t, 4, 4, color.RGBA{0, 200, 0, 255})},
	})

	sc, err := Load(am, "scene.yaml", Options{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for _, name := range []string{"grass", "red", "board", texture.DefaultFallback} {
		if _, err := sc.Textures.Find(name); err != nil {
			t.Errorf("texture %s: %v", name, err)
		}
	}
	board, _ := sc.Textures.Find("board")
	sc.Textures.RLock()
	if tex := sc.Textures.At(board); !tex.HasKey || tex.Key != 0 {
		t.Errorf("board key: got %v/%#x, want keyed black", tex.HasKey, tex.Key)
	}
	sc.Textures.RUnlock()

	if _, err := sc.Textures.FindSet("blink"); err != nil {
		t.Errorf("FindSet: %v", err)
	}

	for _, name := range []string{"box", "panel", "tri", mesh.DefaultFallback} {
		if _, err := sc.Meshes.Find(name); err != nil {
			t.Errorf("mesh %s: %v", name, err)
		}
	}

	triID, _ := sc.Meshes.Find("tri")
	sc.Meshes.RLock()
	tri := sc.Meshes.At(triID).LODs[0].Geometry
	if !tri.Flags[0].Has(geometry.FlagAnimated) {
		t.Errorf("tri flags: got %v, want animated", tri.Flags[0])
	}
	if got := tri.P[1].UV[0]; got.X != 0.5 || got.Y != 0 {
		t.Errorf("tri corner 1 UV: got %v, want (0.5, 0)", got)
	}
	boxID, _ := sc.Meshes.Find("box")
	if lods := sc.Meshes.At(boxID).LODs; len(lods) != 2 || !lods[1].IsBillboard() {
		t.Errorf("box LODs: got %d, want cube then billboard", len(lods))
	}
	sc.Meshes.RUnlock()

	if got := sc.Instances.Len(); got != 3 {
		t.Errorf("instances: got %d, want 3", got)
	}
	if got := len(sc.Instances.Snapshot(nil)); got != 2 {
		t.Errorf("visible instances: got %d, want 2", got)
	}

	if sc.Camera.Pos.Z != -5 || sc.Camera.Yaw != 0.5 || sc.Camera.MoveSpeed != 8 {
		t.Errorf("camera: got pos %v yaw %v speed %v", sc.Camera.Pos, sc.Camera.Yaw, sc.Camera.MoveSpeed)
	}
}

func TestBrokenEntriesAggregate(t *testing.T) {
	const src = `
textures:
  - name: gone
    file: missing.png
  - name: junk
    file: junk.png
  - name: nothing
meshes:
  - name: bad
    lods:
      - vertices: [[0, 0, 0]]
        triangles:
          - idx: [0, 1, 2]
  - name: ok
    lods:
      - quad: {texture: gone}
instances:
  - mesh: ok
  - mesh: nowhere
`
	am := testAssets(t, fstest.MapFS{
		"junk.png": {Data: []byte("not a png")},
	})
	f, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sc, err := f.Build(am, Options{Fallback: "fallback.png"})
	errs := multierr.Errors(err)
	// missing.png, junk.png, no source, bad indices, quad texture, unknown mesh
	if len(errs) != 6 {
		t.Fatalf("errors: got %d, want 6: %v", len(errs), err)
	}
	if !errors.Is(err, assets.ErrNotFound) {
		t.Errorf("expected assets.ErrNotFound in %v", err)
	}
	if !errors.Is(err, mesh.ErrInvalidGeometry) {
		t.Errorf("expected mesh.ErrInvalidGeometry in %v", err)
	}

	fb, ferr := sc.Textures.Find("fallback.png")
	if ferr != nil {
		t.Fatalf("fallback texture not generated: %v", ferr)
	}
	okID, _ := sc.Meshes.Find("ok")
	sc.Meshes.RLock()
	if got := sc.Meshes.At(okID).LODs[0].Geometry.Tex[0]; got != uint32(fb) {
		t.Errorf("quad texture: got %d, want fallback %d", got, fb)
	}
	sc.Meshes.RUnlock()

	if _, err := sc.Meshes.Find("bad"); !errors.Is(err, mesh.ErrNotFound) {
		t.Errorf("bad mesh registered: %v", err)
	}
	if got := sc.Instances.Len(); got != 2 {
		t.Errorf("instances: got %d, want 2 (unknown mesh uses fallback)", got)
	}
}

func TestLoadErrors(t *testing.T) {
	am := testAssets(t, fstest.MapFS{
		"bad.yaml": {Data: []byte("meshes: {oops")},
	})

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "none.yaml"},
		{"bad yaml", "bad.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(am, tt.path, Options{}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestKeyOptions(t *testing.T) {
	tests := []struct {
		key     string
		n       int
		wantErr bool
	}{
		{"", 0, false},
		{"magenta", 1, false},
		{"MAGENTA", 1, false},
		{"0x00FF00", 1, false},
		{"green", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			opts, err := keyOptions(tt.key)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err: got %v, wantErr %v", err, tt.wantErr)
			}
			if len(opts) != tt.n {
				t.Errorf("options: got %d, want %d", len(opts), tt.n)
			}
		})
	}
}

func TestSceneRenders(t *testing.T) {
	const src = `
textures:
  - name: red
    solid: {color: 0xFF0000, size: 2}
meshes:
  - name: panel
    lods:
      - quad: {texture: red}
instances:
  - mesh: panel
    pos: [0, 0, 2]
`
	f, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sc, err := f.Build(testAssets(t, fstest.MapFS{}), Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	out, err := framebuffer.New(8, 8, framebuffer.ARGB8888)
	if err != nil {
		t.Fatalf("framebuffer.New: %v", err)
	}
	r, err := renderer.New(renderer.Config{
		Width:          8,
		Height:         8,
		TileSide:       8,
		Near:           1,
		SIMD:           true,
		LODPixels:      64,
		ImpostorPixels: 0,
		PoolCapacity:   64,
		BinCapacity:    64,
	}, sc, out)
	if err != nil {
		t.Fatalf("renderer.New: %v", err)
	}
	r.RunFrame()

	out.Present(func(pixels []uint32, w, _ int) {
		if got := pixels[4*w+4]; got != 0xFF0000 {
			t.Errorf("centre pixel: got %#08x, want 0xff0000", got)
		}
		if got := pixels[0]; got != 0 {
			t.Errorf("corner pixel: got %#08x, want clear", got)
		}
	})
	if got := r.Stats().Triangles; got != 2 {
		t.Errorf("triangles: got %d, want 2", got)
	}
}
