package raster

import (
	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
)

// drawWide evaluates lanes.Width pixels per step. Spans start on a lane
// boundary; lanes outside [x0, x1) are masked off.
func drawWide(s *setup, t *binner.Tile) {
	xa := s.x0 &^ (lanes.Width - 1)
	lo := lanes.SplatI32(int32(s.x0 - 1))
	hi := lanes.SplatI32(int32(s.x1))
	normal := lanes.SplatU32(s.normal)
	flat := lanes.SplatU32(s.flat)

	for y := s.y0; y < s.y1; y++ {
		cy := float32(y) + 0.5
		r0 := lanes.SplatF32(s.e[0].row(cy))
		r1 := lanes.SplatF32(s.e[1].row(cy))
		r2 := lanes.SplatF32(s.e[2].row(cy))
		base := (y-t.Y0)*t.Side - t.X0
		seen := false

		for x := xa; x < s.x1; x += lanes.Width {
			xi := lanes.IotaI32(int32(x))
			span := lo.Lt(xi).And(xi.Lt(hi))
			cx := lanes.IotaF32(float32(x)).AddS(0.5)

			w0 := wideEdge(s.e[0], r0, cx).MulS(s.inv)
			w1 := wideEdge(s.e[1], r1, cx).MulS(s.inv)
			w2 := wideEdge(s.e[2], r2, cx).MulS(s.inv)

			zero := lanes.F32{}
			inside := w0.Ge(zero).And(w1.Ge(zero)).And(w2.Ge(zero)).And(span)
			if !inside.Any() {
				if seen {
					break
				}
				continue
			}
			seen = true

			sum := w0.MulS(s.z[0]).Add(w1.MulS(s.z[1])).Add(w2.MulS(s.z[2]))
			depth := sum.Recip()
			i := base + x
			cur := lanes.LoadF32(t.Depth[i:])
			m := inside.And(depth.Lt(cur))
			if !m.Any() {
				continue
			}
			depth.StoreMasked(t.Depth[i:], m)
			normal.StoreMasked(t.Normal[i:], m)

			if s.mip == nil {
				flat.StoreMasked(t.Color[i:], m)
				continue
			}
			u := w0.MulS(s.u[0]).Add(w1.MulS(s.u[1])).Add(w2.MulS(s.u[2])).Mul(depth)
			v := w0.MulS(s.v[0]).Add(w1.MulS(s.v[1])).Add(w2.MulS(s.v[2])).Mul(depth)
			tx := u.MulS(s.fw).Trunc()
			ty := v.MulS(s.fh).Trunc()
			idx := ty.MulS(s.tw).Add(tx).Clamp(0, s.last)

			texels := lanes.GatherU32(s.mip.Pixels, idx, m)
			for k := range texels {
				if m[k] {
					texels[k] = modulate(texels[k], s.tint)
				}
			}
			texels.StoreMasked(t.Color[i:], m)
		}
	}
}

// wideEdge matches edge.at for every lane.
func wideEdge(e edge, rowTerm, cx lanes.F32) lanes.F32 {
	return rowTerm.Sub(cx.AddS(-e.ax).MulS(e.dy))
}
