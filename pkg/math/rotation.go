package math

// Rotation is an orthonormal basis derived from a quaternion.
// Rotate(v) is (v·R1, v·R2, v·R3), i.e. R1..R3 are the rows of the matrix.
type Rotation struct {
	R1, R2, R3 Vec3

	q Quat
}

// IdentityRotation returns the rotation that leaves vectors unchanged.
func IdentityRotation() Rotation {
	return RotationFromQuat(QuatIdentity())
}

// RotationFromEuler builds a rotation from yaw, pitch and roll in radians.
func RotationFromEuler(yaw, pitch, roll float32) Rotation {
	return RotationFromQuat(QuatFromEuler(yaw, pitch, roll))
}

// RotationFromQuat builds a rotation from q. q is normalized first.
func RotationFromQuat(q Quat) Rotation {
	q = q.Normalize()

	xx := q.X * q.X
	xy := q.X * q.Y
	xz := q.X * q.Z
	xw := q.X * q.W
	yy := q.Y * q.Y
	yz := q.Y * q.Z
	yw := q.Y * q.W
	zz := q.Z * q.Z
	zw := q.Z * q.W

	return Rotation{
		R1: Vec3{1 - 2*(yy+zz), 2 * (xy - zw), 2 * (xz + yw)},
		R2: Vec3{2 * (xy + zw), 1 - 2*(xx+zz), 2 * (yz - xw)},
		R3: Vec3{2 * (xz - yw), 2 * (yz + xw), 1 - 2*(xx+yy)},
		q:  q,
	}
}

// Quat returns the quaternion the rotation was built from.
func (r Rotation) Quat() Quat {
	return r.q
}

// Rotate applies the rotation to v.
func (r Rotation) Rotate(v Vec3) Vec3 {
	return Vec3{v.Dot(r.R1), v.Dot(r.R2), v.Dot(r.R3)}
}

// Inverse returns the inverse rotation. It is rebuilt from the conjugate
// quaternion rather than transposed so both directions round the same way.
func (r Rotation) Inverse() Rotation {
	return RotationFromQuat(r.q.Conjugate())
}
