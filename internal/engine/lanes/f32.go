package lanes

import "github.com/chewxy/math32"

// F32 holds Width float32 values.
type F32 [Width]float32

// SplatF32 returns an F32 with every lane set to n.
func SplatF32(n float32) F32 {
	var r F32
	for i := range r {
		r[i] = n
	}
	return r
}

// IotaF32 returns base, base+1, ... base+Width-1.
func IotaF32(base float32) F32 {
	var r F32
	for i := range r {
		r[i] = base + float32(i)
	}
	return r
}

// LoadF32 reads Width values from s. s must hold at least Width values.
func LoadF32(s []float32) F32 {
	var r F32
	copy(r[:], s[:Width])
	return r
}

// Store writes all lanes to s.
func (v F32) Store(s []float32) {
	copy(s[:Width], v[:])
}

// StoreMasked writes the lanes selected by m to s.
func (v F32) StoreMasked(s []float32, m Mask) {
	for i := range v {
		if m[i] {
			s[i] = v[i]
		}
	}
}

// Add returns v + o per lane.
func (v F32) Add(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = v[i] + o[i]
	}
	return r
}

// Sub returns v - o per lane.
func (v F32) Sub(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = v[i] - o[i]
	}
	return r
}

// Mul returns v * o per lane, rounded to float32.
func (v F32) Mul(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = float32(v[i] * o[i])
	}
	return r
}

// MulS returns v * s per lane, rounded to float32.
func (v F32) MulS(s float32) F32 {
	var r F32
	for i := range v {
		r[i] = float32(v[i] * s)
	}
	return r
}

// AddS returns v + s per lane.
func (v F32) AddS(s float32) F32 {
	var r F32
	for i := range v {
		r[i] = v[i] + s
	}
	return r
}

// Div returns v / o per lane.
func (v F32) Div(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = v[i] / o[i]
	}
	return r
}

// Recip returns 1 / v per lane.
func (v F32) Recip() F32 {
	var r F32
	for i := range v {
		r[i] = 1 / v[i]
	}
	return r
}

// Min returns the lane-wise minimum.
func (v F32) Min(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = math32.Min(v[i], o[i])
	}
	return r
}

// Max returns the lane-wise maximum.
func (v F32) Max(o F32) F32 {
	var r F32
	for i := range v {
		r[i] = math32.Max(v[i], o[i])
	}
	return r
}

// Trunc converts each lane to int32, truncating toward zero.
func (v F32) Trunc() I32 {
	var r I32
	for i := range v {
		r[i] = int32(v[i])
	}
	return r
}

// Ge returns the mask of lanes where v >= o.
func (v F32) Ge(o F32) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] >= o[i]
	}
	return m
}

// Lt returns the mask of lanes where v < o.
func (v F32) Lt(o F32) Mask {
	var m Mask
	for i := range v {
		m[i] = v[i] < o[i]
	}
	return m
}

// Select returns v where m is set and o elsewhere.
func (v F32) Select(m Mask, o F32) F32 {
	var r F32
	for i := range v {
		if m[i] {
			r[i] = v[i]
		} else {
			r[i] = o[i]
		}
	}
	return r
}
