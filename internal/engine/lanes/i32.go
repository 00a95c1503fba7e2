package lanes

// I32 holds Width int32 values.
type I32 [Width]int32

// U32 holds Width uint32 values.
type U32 [Width]uint32

// SplatI32 returns an I32 with every lane set to n.
func SplatI32(n int32) I32 {
	var r I32
	for i := range r {
		r[i] = n
	}
	return r
}

// IotaI32 returns base, base+1, ... base+Width-1.
func IotaI32(base int32) I32 {
	var r I32
	for i := range r {
		r[i] = base + int32(i)
	}
	return r
}

// Add returns v + o per lane.
func (v I32) Add(o I32) I32 {
	var r I32
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Mul returns v * o per lane.
func (v I32) Mul(o I32) I32 {
	var r I32
	for i := range v {
		r[i] = v[i] * o[i]
	}
	return r
}

// MulS returns v * s per lane.
func (v I32) MulS(s int32) I32 {
	var r I32
	for i := range v {
		r[i] = v[i] * s
	}
	return r
}

// Clamp limits every lane to [lo, hi].
func (v I32) Clamp(lo, hi int32) I32 {
	var r I32
	for i := range v {
		r[i] = Clamp(v[i], lo, hi)
	}
	return r
}

// Lt returns the mask of lanes where v < o.
func (v I32) Lt(o I32) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] < o[i]
	}
	return m
}

// GatherU32 reads table[idx[i]] for every lane selected by m.
// Unselected lanes are zero and their indices are not read.
func GatherU32(table []uint32, idx I32, m Mask) U32 {
	var r U32
	for i := range idx {
		if m[i] {
			r[i] = table[idx[i]]
		}
	}
	return r
}

// SplatU32 returns a U32 with every lane set to n.
func SplatU32(n uint32) U32 {
	var r U32
	for i := range r {
		r[i] = n
	}
	return r
}

// StoreMasked writes the lanes selected by m to s.
func (v U32) StoreMasked(s []uint32, m Mask) {
	for i := range v {
		if m[i] {
			s[i] = v[i]
		}
	}
}
