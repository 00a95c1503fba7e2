package math

import (
	"math"
	"testing"
)

func vecNear(a, b Vec3, eps float32) bool {
	return abs(a.X-b.X) <= eps && abs(a.Y-b.Y) <= eps && abs(a.Z-b.Z) <= eps
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func TestRotationIdentity(t *testing.T) {
	r := IdentityRotation()
	v := Vec3{1, 2, 3}
	if got := r.Rotate(v); got != v {
		t.Errorf("identity Rotate(%v) = %v", v, got)
	}
}

func TestRotationYaw90(t *testing.T) {
	r := RotationFromEuler(float32(math.Pi/2), 0, 0)

	tests := []struct {
		in, want Vec3
	}{
		{Vec3{0, 0, 1}, Vec3{1, 0, 0}},
		{Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{Vec3{0, 1, 0}, Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		if got := r.Rotate(tt.in); !vecNear(got, tt.want, 1e-5) {
			t.Errorf("Rotate(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotationInverse(t *testing.T) {
	r := RotationFromEuler(0.4, -1.2, 2.5)
	inv := r.Inverse()

	for _, v := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {3, -2, 7}} {
		back := inv.Rotate(r.Rotate(v))
		if !vecNear(back, v, 1e-4) {
			t.Errorf("Inverse(Rotate(%v)) = %v", v, back)
		}
	}
}

func TestRotationOrthonormal(t *testing.T) {
	r := RotationFromEuler(1.3, 0.2, -0.6)
	rows := []Vec3{r.R1, r.R2, r.R3}
	for i := range rows {
		if l := rows[i].Length(); abs(l-1) > 1e-5 {
			t.Errorf("row %d length = %v, want 1", i, l)
		}
		for j := i + 1; j < len(rows); j++ {
			if d := rows[i].Dot(rows[j]); abs(d) > 1e-5 {
				t.Errorf("rows %d,%d dot = %v, want 0", i, j, d)
			}
		}
	}
}
