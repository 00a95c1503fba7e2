package raster

import (
	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
)

// drawScalar is the reference path: one pixel at a time.
func drawScalar(s *setup, t *binner.Tile) {
	for y := s.y0; y < s.y1; y++ {
		cy := float32(y) + 0.5
		r0, r1, r2 := s.e[0].row(cy), s.e[1].row(cy), s.e[2].row(cy)
		base := (y-t.Y0)*t.Side - t.X0
		seen := false

		for x := s.x0; x < s.x1; x++ {
			cx := float32(x) + 0.5
			w0 := float32(s.e[0].at(r0, cx) * s.inv)
			w1 := float32(s.e[1].at(r1, cx) * s.inv)
			w2 := float32(s.e[2].at(r2, cx) * s.inv)

			if !(w0 >= 0 && w1 >= 0 && w2 >= 0) {
				if seen {
					// Coverage along a row is one interval.
					break
				}
				continue
			}
			seen = true

			sum := float32(w0*s.z[0]) + float32(w1*s.z[1]) + float32(w2*s.z[2])
			depth := 1 / sum
			i := base + x
			if !(depth < t.Depth[i]) {
				continue
			}
			t.Depth[i] = depth
			t.Normal[i] = s.normal

			if s.mip == nil {
				t.Color[i] = s.flat
				continue
			}
			u := float32((float32(w0*s.u[0]) + float32(w1*s.u[1]) + float32(w2*s.u[2])) * depth)
			v := float32((float32(w0*s.v[0]) + float32(w1*s.v[1]) + float32(w2*s.v[2])) * depth)
			tx := int32(float32(u * s.fw))
			ty := int32(float32(v * s.fh))
			idx := lanes.Clamp(ty*s.tw+tx, 0, s.last)
			t.Color[i] = modulate(s.mip.Pixels[idx], s.tint)
		}
	}
}
