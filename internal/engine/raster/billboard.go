package raster

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/binner"
	"github.com/Faultbox/tilerast/internal/engine/lanes"
)

// drawBillboard draws a screen-aligned rectangle at one depth. P[0] holds
// the top-left corner and P[1] the bottom-right one, both with z = 1/z.
// Level 0 is sampled by walking texture coordinates linearly. Keyed
// texels leave both colour and depth untouched.
func (r *Rasterizer) drawBillboard(e *binner.Entry, t *binner.Tile) {
	tri := &e.Tri
	left, top := tri.P[0].Pos.X, tri.P[0].Pos.Y
	right, bottom := tri.P[1].Pos.X, tri.P[1].Pos.Y
	if right <= left || bottom <= top || tri.P[0].Pos.Z <= 0 {
		return
	}

	x0 := max(t.X0, int(math32.Floor(left)))
	y0 := max(t.Y0, int(math32.Floor(top)))
	x1 := min(t.X1, int(math32.Ceil(right)))
	y1 := min(t.Y1, int(math32.Ceil(bottom)))
	if x0 >= x1 || y0 >= y1 {
		return
	}

	depth := 1 / tri.P[0].Pos.Z
	tint := tri.P[0].Color
	normal := uint32(e.Pre.Normal)

	tex := r.texture(tri.Texture)
	flat := modulate(0xFFFFFF, tint)

	du := 1 / (right - left)
	dv := 1 / (bottom - top)

	for y := y0; y < y1; y++ {
		cy := float32(y) + 0.5
		if cy < top || cy >= bottom {
			continue
		}
		base := (y-t.Y0)*t.Side - t.X0

		for x := x0; x < x1; x++ {
			cx := float32(x) + 0.5
			if cx < left || cx >= right {
				continue
			}
			i := base + x
			if !(depth < t.Depth[i]) {
				continue
			}

			c := flat
			if tex != nil {
				mip := &tex.Levels[0]
				tx := lanes.Clamp(int((cx-left)*du*float32(mip.Width)), 0, mip.Width-1)
				ty := lanes.Clamp(int((cy-top)*dv*float32(mip.Height)), 0, mip.Height-1)
				p := mip.Pixels[ty*mip.Width+tx]
				if tex.Keyed(p) {
					continue
				}
				c = modulate(p, tint)
			}

			t.Color[i] = c
			t.Depth[i] = depth
			t.Normal[i] = normal
		}
	}
}
