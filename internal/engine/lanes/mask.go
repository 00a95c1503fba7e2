package lanes

import "golang.org/x/exp/constraints"

// Mask selects lanes.
type Mask [Width]bool

// And returns the lanes set in both m and o.
func (m Mask) And(o Mask) Mask {
	var r Mask
	for i := range m {
		r[i] = m[i] && o[i]
	}
	return r
}

// Any reports whether at least one lane is set.
func (m Mask) Any() bool {
	for _, b := range m {
		if b {
			return true
		}
	}
	return false
}

// All reports whether every lane is set.
func (m Mask) All() bool {
	for _, b := range m {
		if !b {
			return false
		}
	}
	return true
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
