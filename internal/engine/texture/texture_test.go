package texture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestBuildMipsLevels(t *testing.T) {
	tests := []struct {
		w, h   int
		levels int
	}{
		{8, 8, 4},
		{1, 1, 1},
		{16, 4, 5},
		{5, 3, 3},
	}

	for _, tt := range tests {
		tex, err := New("t", tt.w, tt.h, make([]uint32, tt.w*tt.h))
		if err != nil {
			t.Fatalf("New(%dx%d): %v", tt.w, tt.h, err)
		}
		if got := len(tex.Levels); got != tt.levels {
			t.Errorf("%dx%d levels: got %d, want %d", tt.w, tt.h, got, tt.levels)
		}
		last := tex.Levels[len(tex.Levels)-1]
		if last.Width != 1 || last.Height != 1 {
			t.Errorf("%dx%d last level: got %dx%d, want 1x1", tt.w, tt.h, last.Width, last.Height)
		}
		for i, lv := range tex.Levels {
			if len(lv.Pixels) != lv.Width*lv.Height {
				t.Errorf("level %d: %d pixels for %dx%d", i, len(lv.Pixels), lv.Width, lv.Height)
			}
		}
	}
}

func TestDownsampleAverages(t *testing.T) {
	px := []uint32{
		ARGB(0, 0, 0), ARGB(100, 200, 4),
		ARGB(200, 0, 8), ARGB(100, 200, 0),
	}
	tex, err := New("avg", 2, 2, px)
	if err != nil {
		t.Fatal(err)
	}
	got := tex.Levels[1].Pixels[0]
	if want := ARGB(100, 100, 3); got != want {
		t.Errorf("average: got %06x, want %06x", got, want)
	}
}

func TestLevelClamps(t *testing.T) {
	tex := Solid("s", 8, 8, 0x123456)
	if tex.Level(-1) != &tex.Levels[0] {
		t.Error("negative level should clamp to 0")
	}
	if tex.Level(7) != &tex.Levels[3] {
		t.Error("level past the chain should clamp to the last")
	}
}

func TestNewRejectsBadSizes(t *testing.T) {
	if _, err := New("bad", 2, 2, make([]uint32, 3)); err == nil {
		t.Error("expected error for pixel count mismatch")
	}
	if _, err := New("bad", 0, 2, nil); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestMagentaKey(t *testing.T) {
	px := []uint32{ARGB(252, 5, 251), ARGB(10, 20, 30)}
	tex, err := New("k", 2, 1, px, WithMagentaKey())
	if err != nil {
		t.Fatal(err)
	}
	if !tex.HasKey || tex.Key != MagentaKey {
		t.Fatalf("expected magenta key, got %06x (has=%v)", tex.Key, tex.HasKey)
	}
	if !tex.Keyed(tex.Levels[0].Pixels[0]) {
		t.Error("near-magenta pixel should be snapped to the key")
	}
	if tex.Keyed(tex.Levels[0].Pixels[1]) {
		t.Error("ordinary pixel should not be keyed")
	}
}

func TestWithKeyIgnoresAlpha(t *testing.T) {
	tex, _ := New("k", 1, 1, []uint32{0x00ABCDEF}, WithKey(0xFFABCDEF))
	if !tex.Keyed(0x7FABCDEF) {
		t.Error("key comparison should ignore alpha")
	}
}

func TestChecker(t *testing.T) {
	tex := Checker("c", 4, 4, 1, 0xFFFFFF, 0)
	px := tex.Levels[0].Pixels
	if px[0] != 0xFFFFFF || px[1] != 0 || px[4] != 0 || px[5] != 0xFFFFFF {
		t.Errorf("unexpected checker pattern: %06x", px[:6])
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	img.Set(1, 0, color.RGBA{G: 128, B: 64, A: 255})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	tex, err := Load("red.png", buf.Bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	px := tex.Levels[0].Pixels
	if px[0] != 0xFF0000 {
		t.Errorf("pixel 0: got %08x, want 00ff0000", px[0])
	}
	if px[1] != 0x008040 {
		t.Errorf("pixel 1: got %08x, want 00008040", px[1])
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := Decode("x.png", []byte("not an image")); err == nil {
		t.Error("expected error for garbage data")
	}
}

func tgaHeader(imageType byte, w, h int, bpp byte, topDown bool) []byte {
	hdr := make([]byte, 18)
	hdr[2] = imageType
	hdr[12], hdr[13] = byte(w), byte(w>>8)
	hdr[14], hdr[15] = byte(h), byte(h>>8)
	hdr[16] = bpp
	if topDown {
		hdr[17] = 0x20
	}
	return hdr
}

func TestDecodeTGA(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want [4]uint32 // row-major ARGB
	}{
		{
			name: "uncompressed bottom-up",
			data: append(tgaHeader(TGATypeUncompressed, 2, 2, 24, false),
				0, 0, 255, 0, 255, 0, // bottom row: red, green
				255, 0, 0, 255, 255, 255, // top row: blue, white
			),
			want: [4]uint32{0x0000FF, 0xFFFFFF, 0xFF0000, 0x00FF00},
		},
		{
			name: "rle top-down",
			data: append(tgaHeader(TGATypeRLE, 2, 2, 32, true),
				0x83, 10, 20, 30, 255, // run of four
			),
			want: [4]uint32{0x1E140A, 0x1E140A, 0x1E140A, 0x1E140A},
		},
		{
			name: "rle raw packet",
			data: append(tgaHeader(TGATypeRLE, 2, 2, 24, true),
				0x03, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
			),
			want: [4]uint32{0x030201, 0x060504, 0x090807, 0x0C0B0A},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tex, err := Load("t.tga", tt.data)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			for i, want := range tt.want {
				if got := tex.Levels[0].Pixels[i]; got != want {
					t.Errorf("pixel %d: got %06x, want %06x", i, got, want)
				}
			}
		})
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short", []byte{1, 2, 3}},
		{"color mapped", func() []byte { h := tgaHeader(1, 1, 1, 24, false); h[1] = 1; return h }()},
		{"bad type", tgaHeader(3, 1, 1, 24, false)},
		{"bad depth", tgaHeader(TGATypeUncompressed, 1, 1, 16, false)},
		{"truncated pixels", tgaHeader(TGATypeUncompressed, 4, 4, 24, false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestStoreLookupFallback(t *testing.T) {
	s := NewStore("")
	fb := s.Add(Solid(DefaultFallback, 1, 1, 0x00FF00))
	wall := s.Add(Solid("wall.png", 1, 1, 0x808080))

	if id, ok := s.Lookup("wall.png"); !ok || id != wall {
		t.Errorf("Lookup(wall.png): got %d %v, want %d true", id, ok, wall)
	}
	if id, ok := s.Lookup("missing.png"); ok || id != fb {
		t.Errorf("Lookup(missing.png): got %d %v, want %d false", id, ok, fb)
	}
	if _, err := s.Find("missing.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Find: got %v, want ErrNotFound", err)
	}

	s.RLock()
	defer s.RUnlock()
	if s.At(99) != s.At(fb) {
		t.Error("out-of-range id should resolve to the fallback")
	}
}

func TestStoreReplaceKeepsID(t *testing.T) {
	s := NewStore("")
	a := s.Add(Solid("a", 1, 1, 1))
	b := s.Add(Solid("a", 2, 2, 2))
	if a != b || s.Len() != 1 {
		t.Errorf("replace: ids %d %d, len %d", a, b, s.Len())
	}
}

func TestSetTicks(t *testing.T) {
	set := NewSet("water", []ID{5, 6, 7}, []uint32{2, 0, 1})

	var got []ID
	for i := 0; i < 6; i++ {
		got = append(got, set.Current())
		set.Tick()
	}
	want := []ID{5, 5, 6, 7, 5, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("frame sequence: got %v, want %v", got, want)
		}
	}
}

func TestStoreSets(t *testing.T) {
	s := NewStore("")
	i := s.AddSet(NewSet("fire", []ID{3, 4}, nil))
	if j, err := s.FindSet("fire"); err != nil || j != i {
		t.Fatalf("FindSet: got %d %v", j, err)
	}
	if s.Current(uint32(i)) != 3 {
		t.Errorf("Current before tick: got %d, want 3", s.Current(uint32(i)))
	}
	s.TickSets()
	if s.Current(uint32(i)) != 4 {
		t.Errorf("Current after tick: got %d, want 4", s.Current(uint32(i)))
	}
	if s.Current(42) != 0 {
		t.Error("unknown set should resolve to 0")
	}
}
