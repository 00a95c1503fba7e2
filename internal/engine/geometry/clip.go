package geometry

import (
	"github.com/Faultbox/tilerast/pkg/math"
)

// ClipCase classifies a triangle against a plane.
type ClipCase uint8

const (
	ClipInside ClipCase = iota
	ClipOutside
	// ClipOneIn keeps one vertex and cuts two edges: one output triangle.
	ClipOneIn
	// ClipTwoIn keeps two vertices and cuts two edges: two output triangles.
	ClipTwoIn
)

// ClipVertex is a camera-space vertex with its attributes.
type ClipVertex struct {
	Pos   math.Vec3
	UV    math.Vec2
	Color RGB
	// Src is the corner (0..2) of the input triangle this vertex came from,
	// or -1 when it was created on the plane.
	Src int
}

// Classify returns the clip case for the signed distances d. A vertex is
// inside when its distance is >= 0.
func Classify(d [3]float32) ClipCase {
	in := 0
	for _, v := range d {
		if v >= 0 {
			in++
		}
	}
	switch in {
	case 3:
		return ClipInside
	case 0:
		return ClipOutside
	case 1:
		return ClipOneIn
	default:
		return ClipTwoIn
	}
}

// cut returns the vertex where the edge in→out crosses the plane.
// Position, UV and colour are interpolated by the same parameter.
func cut(in, out ClipVertex, dIn, dOut float32) ClipVertex {
	t := dIn / (dIn - dOut)
	return ClipVertex{
		Pos:   in.Pos.Lerp(out.Pos, t),
		UV:    in.UV.Lerp(out.UV, t),
		Color: in.Color.Lerp(out.Color, t),
		Src:   -1,
	}
}

// ClipTriangle clips v against pl and returns the part in front of it as
// zero, one or two triangles with the input winding preserved.
func ClipTriangle(pl Plane, v [3]ClipVertex) (out [2][3]ClipVertex, n int) {
	var d [3]float32
	for i := range v {
		v[i].Src = i
		d[i] = pl.SignedDistance(v[i].Pos)
	}

	switch Classify(d) {
	case ClipInside:
		out[0] = v
		return out, 1

	case ClipOutside:
		return out, 0

	case ClipOneIn:
		i := 0
		for d[i] < 0 {
			i++
		}
		j, k := (i+1)%3, (i+2)%3
		a := cut(v[i], v[j], d[i], d[j])
		b := cut(v[i], v[k], d[i], d[k])
		out[0] = [3]ClipVertex{v[i], a, b}
		return out, 1

	default:
		k := 0
		for d[k] >= 0 {
			k++
		}
		i, j := (k+1)%3, (k+2)%3
		a := cut(v[j], v[k], d[j], d[k])
		b := cut(v[i], v[k], d[i], d[k])
		out[0] = [3]ClipVertex{v[i], v[j], a}
		out[1] = [3]ClipVertex{v[i], a, b}
		return out, 2
	}
}
