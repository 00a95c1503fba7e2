package lanes

// Quad is a fixed 4-wide float vector, independent of Width. The binner
// packs a bounding box (minX, minY, maxX, maxY) into one.
type Quad [4]float32

// DivS divides every element by s.
func (q Quad) DivS(s float32) Quad {
	var r Quad
	for i := range q {
		r[i] = q[i] / s
	}
	return r
}

// Trunc converts every element to int32, truncating toward zero.
func (q Quad) Trunc() [4]int32 {
	var r [4]int32
	for i := range q {
		r[i] = int32(q[i])
	}
	return r
}
