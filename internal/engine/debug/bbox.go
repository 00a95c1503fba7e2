package debug

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tilerast/internal/engine/camera"
	"github.com/Faultbox/tilerast/internal/engine/mesh"
	"github.com/Faultbox/tilerast/pkg/math"
)

// boxEdges lists the corner pairs of the 12 box edges. Corner i has bit 0
// for max X, bit 1 for max Y and bit 2 for max Z.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0}, // bottom
	{4, 5}, {5, 7}, {7, 6}, {6, 4}, // top
	{0, 4}, {1, 5}, {2, 6}, {3, 7}, // vertical
}

// BoxCorners returns the eight corners of b.
func BoxCorners(b mesh.Bounds) [8]math.Vec3 {
	var c [8]math.Vec3
	for i := range c {
		c[i] = b.Min
		if i&1 != 0 {
			c[i].X = b.Max.X
		}
		if i&2 != 0 {
			c[i].Y = b.Max.Y
		}
		if i&4 != 0 {
			c[i].Z = b.Max.Z
		}
	}
	return c
}

// DrawBounds draws the wireframe of b, placed by in, into a width×height
// ARGB image. Edges with an end behind the near plane are skipped.
func DrawBounds(pixels []uint32, width, height int, vp *camera.Viewport, in *mesh.Instance, b mesh.Bounds, color uint32) {
	corners := BoxCorners(b)
	rot := in.Rotation()

	var proj [8]math.Vec3
	var visible [8]bool
	for i, c := range corners {
		p := c
		if !in.WorldSpace {
			p = rot.Rotate(p)
		}
		p = p.Add(in.Pos)
		if !in.ViewModel {
			p = vp.ToCamera(p)
		}
		if p.Z < vp.Near {
			continue
		}
		proj[i] = vp.Project(p)
		visible[i] = true
	}

	for _, e := range boxEdges {
		if visible[e[0]] && visible[e[1]] {
			drawLine(pixels, width, height, proj[e[0]], proj[e[1]], color)
		}
	}
}

// drawLine steps one pixel at a time along the longer axis.
func drawLine(pixels []uint32, width, height int, a, b math.Vec3, color uint32) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := int(math32.Ceil(max(math32.Abs(dx), math32.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	// Off-screen projections can be huge; never walk more than the image.
	steps = min(steps, 4*(width+height))

	sx, sy := dx/float32(steps), dy/float32(steps)
	x, y := a.X, a.Y
	for i := 0; i <= steps; i++ {
		px, py := int(math32.Floor(x)), int(math32.Floor(y))
		if px >= 0 && py >= 0 && px < width && py < height {
			pixels[py*width+px] = color
		}
		x += sx
		y += sy
	}
}
