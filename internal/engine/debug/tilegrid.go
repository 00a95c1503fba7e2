package debug

import (
	"github.com/Faultbox/tilerast/internal/engine/binner"
)

// TileOverlay draws the binner's tile grid over a finished image and tints
// every tile by how many triangles were binned into it.
type TileOverlay struct {
	GridColor uint32
	HeatColor uint32
	// MaxHeat is the share of HeatColor blended into the busiest tile.
	MaxHeat float32
}

// DefaultTileOverlay returns a grey grid with a red heat tint.
func DefaultTileOverlay() TileOverlay {
	return TileOverlay{
		GridColor: 0x808080,
		HeatColor: 0xFF0000,
		MaxHeat:   0.5,
	}
}

// Draw paints the overlay into a width×height ARGB image. Tile counts are
// those of the last binned frame.
func (o TileOverlay) Draw(pixels []uint32, width, height int, b *binner.Binner) {
	tiles := b.Tiles()

	busiest := 0
	for i := range tiles {
		busiest = max(busiest, tiles[i].Count())
	}

	for i := range tiles {
		t := &tiles[i]
		x1, y1 := min(t.X1, width), min(t.Y1, height)

		if busiest > 0 && t.Count() > 0 {
			k := o.MaxHeat * float32(t.Count()) / float32(busiest)
			for y := t.Y0; y < y1; y++ {
				row := pixels[y*width : y*width+x1]
				for x := t.X0; x < x1; x++ {
					row[x] = blend(row[x], o.HeatColor, k)
				}
			}
		}

		// Top and left edges; neighbours draw the rest.
		if t.Y0 < height {
			for x := t.X0; x < x1; x++ {
				pixels[t.Y0*width+x] = o.GridColor
			}
		}
		for y := t.Y0; y < y1; y++ {
			if t.X0 < width {
				pixels[y*width+t.X0] = o.GridColor
			}
		}
	}
}

// blend mixes b into a by k in [0, 1] per channel.
func blend(a, b uint32, k float32) uint32 {
	ch := func(shift uint) uint32 {
		ca := float32((a >> shift) & 0xFF)
		cb := float32((b >> shift) & 0xFF)
		return uint32(ca+(cb-ca)*k+0.5) << shift
	}
	return ch(16) | ch(8) | ch(0)
}
