package shader

import (
	"testing"

	"github.com/chewxy/math32"
)

func frame3x3() *Frame {
	inf := math32.Inf(1)
	return &Frame{
		Width:  3,
		Height: 3,
		Color:  []uint32{1, 2, 3, 4, 0x808080, 6, 7, 8, 9},
		Depth:  []float32{inf, 2, 2, 2, 2, 2, 2, 2, 2},
		Normal: []uint32{0, 0, 0, 0, 0, 0, 0, 0, 5},
	}
}

func TestIdentity(t *testing.T) {
	f := frame3x3()
	dst := make([]uint32, 9)
	f.Run(dst, 0, 9, Identity)
	for i := range dst {
		if dst[i] != f.Color[i] {
			t.Errorf("pixel %d: got %x, want %x", i, dst[i], f.Color[i])
		}
	}
}

func TestRunRange(t *testing.T) {
	f := frame3x3()
	dst := make([]uint32, 9)
	f.Run(dst, 3, 5, func(_ *Frame, p Pixel) uint32 { return uint32(p.X*10 + p.Y) })
	want := []uint32{0, 0, 0, 1, 11, 0, 0, 0, 0}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("pixel %d: got %d, want %d", i, dst[i], want[i])
		}
	}
}

func TestAtClamps(t *testing.T) {
	f := frame3x3()
	if p := f.At(-4, 10); p.X != 0 || p.Y != 2 || p.Color != 7 {
		t.Errorf("At(-4,10): got %+v", p)
	}
}

func TestSky(t *testing.T) {
	f := frame3x3()
	sky := Sky(0xABCDEF)
	if got := sky(f, f.At(0, 0)); got != 0xABCDEF {
		t.Errorf("uncovered pixel: got %x", got)
	}
	if got := sky(f, f.At(1, 1)); got != 0x808080 {
		t.Errorf("covered pixel: got %x", got)
	}
}

func TestFog(t *testing.T) {
	fog := Fog(0xFFFFFF, 0, 4)
	tests := []struct {
		depth float32
		want  uint32
	}{
		{-1, 0x000000},
		{2, 0x808080},
		{10, 0xFFFFFF},
		{math32.Inf(1), 0xFFFFFF},
	}
	for _, tt := range tests {
		if got := fog(nil, Pixel{Color: 0, Depth: tt.depth}); got != tt.want {
			t.Errorf("fog at depth %v: got %06x, want %06x", tt.depth, got, tt.want)
		}
	}
}

func TestOutline(t *testing.T) {
	f := frame3x3()
	out := Outline(0.1)

	// Centre's neighbours share its depth and normal.
	if got := out(f, f.At(1, 1)); got != 0x808080 {
		t.Errorf("interior pixel: got %x, want 808080", got)
	}
	// (1,0) touches the uncovered corner.
	if got := out(f, f.At(1, 0)); got != 1 {
		t.Errorf("silhouette pixel: got %x, want 1", got)
	}
	// (2,1) touches a different normal at (2,2).
	if got := out(f, f.At(2, 1)); got != 3 {
		t.Errorf("crease pixel: got %x, want 3", got)
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "identity", "sky", "fog", "outline"} {
		if fn, err := ByName(name, DefaultOptions()); err != nil || fn == nil {
			t.Errorf("ByName(%q): %v", name, err)
		}
	}
	if _, err := ByName("bloom", DefaultOptions()); err == nil {
		t.Error("expected error for unknown shader")
	}
}
