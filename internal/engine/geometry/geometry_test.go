package geometry

import (
	"testing"

	"github.com/Faultbox/tilerast/pkg/math"
)

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func area3(a, b, c math.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Length() / 2
}

func tri(a, b, c math.Vec3) [3]ClipVertex {
	return [3]ClipVertex{{Pos: a}, {Pos: b}, {Pos: c}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		d    [3]float32
		want ClipCase
	}{
		{"all in", [3]float32{1, 2, 0}, ClipInside},
		{"all out", [3]float32{-1, -2, -0.5}, ClipOutside},
		{"one in", [3]float32{1, -2, -3}, ClipOneIn},
		{"two in", [3]float32{1, 2, -3}, ClipTwoIn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.d); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestClipTriangleBehindPlane(t *testing.T) {
	near := NearPlane(1)
	_, n := ClipTriangle(near, tri(
		math.Vec3{X: 0, Y: 0, Z: -1},
		math.Vec3{X: 1, Y: 0, Z: -1},
		math.Vec3{X: 0, Y: 1, Z: -1},
	))
	if n != 0 {
		t.Errorf("behind-camera triangle: got %d outputs, want 0", n)
	}
}

func TestClipTriangleInFront(t *testing.T) {
	near := NearPlane(1)
	in := tri(math.Vec3{Z: 2}, math.Vec3{X: 1, Z: 3}, math.Vec3{Y: 1, Z: 4})
	out, n := ClipTriangle(near, in)
	if n != 1 {
		t.Fatalf("in-front triangle: got %d outputs, want 1", n)
	}
	for i := range out[0] {
		if out[0][i].Pos != in[i].Pos || out[0][i].Src != i {
			t.Errorf("vertex %d: got %+v, want unchanged source %d", i, out[0][i], i)
		}
	}
}

func TestClipTriangleStraddling(t *testing.T) {
	near := NearPlane(1)
	in := tri(
		math.Vec3{X: 0, Y: 0, Z: 2},
		math.Vec3{X: 2, Y: 0, Z: -1},
		math.Vec3{X: -2, Y: 1, Z: -1},
	)
	in[0].UV = math.Vec2{X: 0, Y: 0}
	in[1].UV = math.Vec2{X: 1, Y: 0}
	in[2].UV = math.Vec2{X: 0, Y: 1}

	out, n := ClipTriangle(near, in)
	if n != 1 {
		t.Fatalf("got %d outputs, want 1", n)
	}
	if out[0][0].Src != 0 {
		t.Errorf("kept vertex source = %d, want 0", out[0][0].Src)
	}
	for i := 1; i < 3; i++ {
		v := out[0][i]
		if v.Src != -1 {
			t.Errorf("vertex %d source = %d, want -1", i, v.Src)
		}
		if absf(v.Pos.Z-1) > 1e-5 {
			t.Errorf("vertex %d z = %v, want 1", i, v.Pos.Z)
		}
	}
	// The cut on edge 0→1 is a third of the way along, so UV is interpolated likewise.
	if absf(out[0][1].UV.X-1.0/3) > 1e-5 {
		t.Errorf("interpolated u = %v, want 1/3", out[0][1].UV.X)
	}
}

func TestClipConservesFrontArea(t *testing.T) {
	near := NearPlane(1)
	tests := []struct {
		name  string
		in    [3]ClipVertex
		count int
		want  float32
	}{
		{
			name:  "one in",
			in:    tri(math.Vec3{X: 0, Z: 2}, math.Vec3{X: 2, Z: -2}, math.Vec3{X: -2, Z: -2}),
			count: 1,
			want:  0.5,
		},
		{
			name:  "two in",
			in:    tri(math.Vec3{X: 0, Z: -2}, math.Vec3{X: 2, Z: 2}, math.Vec3{X: -2, Z: 2}),
			count: 2,
			want:  3.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, n := ClipTriangle(near, tt.in)
			if n != tt.count {
				t.Fatalf("got %d outputs, want %d", n, tt.count)
			}
			var sum float32
			for i := 0; i < n; i++ {
				for _, v := range out[i] {
					if v.Pos.Z < 1-1e-5 {
						t.Errorf("output vertex %v behind plane", v.Pos)
					}
				}
				sum += area3(out[i][0].Pos, out[i][1].Pos, out[i][2].Pos)
			}
			if absf(sum-tt.want) > 1e-4 {
				t.Errorf("front area = %v, want %v", sum, tt.want)
			}
		})
	}
}

func TestClipPreservesWinding(t *testing.T) {
	near := NearPlane(1)
	in := tri(math.Vec3{X: 0, Y: 1, Z: -2}, math.Vec3{X: 2, Y: 0, Z: 2}, math.Vec3{X: -2, Y: 0, Z: 2})
	want := in[1].Pos.Sub(in[0].Pos).Cross(in[2].Pos.Sub(in[0].Pos)).Normalize()

	out, n := ClipTriangle(near, in)
	for i := 0; i < n; i++ {
		got := out[i][1].Pos.Sub(out[i][0].Pos).Cross(out[i][2].Pos.Sub(out[i][0].Pos)).Normalize()
		if got.Dot(want) < 0.999 {
			t.Errorf("output %d normal %v differs from input %v", i, got, want)
		}
	}
}

func TestLineIntersect(t *testing.T) {
	l := Line{From: math.Vec3{Z: 3}, To: math.Vec3{Z: -1}}
	tt, ok := l.Intersect(NearPlane(1))
	if !ok {
		t.Fatal("expected intersection")
	}
	if p := l.At(tt); absf(p.Z-1) > 1e-6 {
		t.Errorf("intersection z = %v, want 1", p.Z)
	}

	if _, ok := (Line{From: math.Vec3{Z: 2}, To: math.Vec3{X: 1, Z: 2}}).Intersect(NearPlane(1)); ok {
		t.Error("parallel line should not intersect")
	}
}

func TestPackNormalRoundTrip(t *testing.T) {
	tests := []math.Vec3{
		{X: 1}, {Y: -1}, {Z: 1}, math.Vec3{X: 1, Y: 1, Z: -1}.Normalize(),
	}
	for _, n := range tests {
		got := PackNormal(n).Unpack()
		if got.Sub(n).Length() > 0.02 {
			t.Errorf("PackNormal(%v).Unpack() = %v", n, got)
		}
	}
}

func TestPrepare(t *testing.T) {
	st := SingleFullTriangle{P: [3]TrianglePointData{
		{Pos: math.Vec3{X: 0, Y: 0, Z: 1}},
		{Pos: math.Vec3{X: 4, Y: 0, Z: 1}},
		{Pos: math.Vec3{X: 0, Y: 4, Z: 1}},
	}}
	pc := Prepare(&st, 0)
	if pc.Area != 16 {
		t.Errorf("Area = %v, want 16", pc.Area)
	}
	if pc.PixelArea() != 8 {
		t.Errorf("PixelArea = %v, want 8", pc.PixelArea())
	}
	if pc.Bounds != [4]float32{0, 0, 4, 4} {
		t.Errorf("Bounds = %v", pc.Bounds)
	}
	if !pc.OnScreen(8, 8) {
		t.Error("expected triangle on screen")
	}

	st.Rewind()
	if pc := Prepare(&st, 0); pc.Area >= 0 {
		t.Errorf("rewound area = %v, want negative", pc.Area)
	}
}
