package texture

// BuildMips returns the chain starting at src. Each level halves both
// dimensions (never below 1) by averaging 2×2 neighbourhoods; odd edges
// reuse the last row or column. The chain ends at 1×1.
func BuildMips(src MipMap) []MipMap {
	chain := []MipMap{src}
	cur := src
	for cur.Width > 1 || cur.Height > 1 {
		cur = downsample(cur)
		chain = append(chain, cur)
	}
	return chain
}

func downsample(src MipMap) MipMap {
	w := max(src.Width/2, 1)
	h := max(src.Height/2, 1)
	dst := MipMap{Width: w, Height: h, Pixels: make([]uint32, w*h)}

	for y := 0; y < h; y++ {
		y0 := min(2*y, src.Height-1)
		y1 := min(2*y+1, src.Height-1)
		for x := 0; x < w; x++ {
			x0 := min(2*x, src.Width-1)
			x1 := min(2*x+1, src.Width-1)
			dst.Pixels[y*w+x] = average4(
				src.Pixels[y0*src.Width+x0],
				src.Pixels[y0*src.Width+x1],
				src.Pixels[y1*src.Width+x0],
				src.Pixels[y1*src.Width+x1],
			)
		}
	}
	return dst
}

// average4 averages four ARGB pixels per channel, rounding to nearest.
func average4(a, b, c, d uint32) uint32 {
	var out uint32
	for shift := uint(0); shift < 32; shift += 8 {
		sum := (a>>shift)&0xFF + (b>>shift)&0xFF + (c>>shift)&0xFF + (d>>shift)&0xFF
		out |= ((sum + 2) / 4) << shift
	}
	return out
}
