package engine

// Rotation is a row-major 3x3 orthonormal matrix.
//
// A placement stores the rotation of the mother frame, the same convention
// the engine's navigator uses: a point is brought from the daughter frame to
// the mother frame with the inverse of the stored rotation.
type Rotation [9]float64

// IdentityRotation returns identity matrix.
func IdentityRotation() Rotation {
	return Rotation{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Transpose returns transposed matrix.
func (r Rotation) Transpose() Rotation {
	return Rotation{
		r[0], r[3], r[6],
		r[1], r[4], r[7],
		r[2], r[5], r[8],
	}
}

// Inverse of an orthonormal matrix is its transpose.
func (r Rotation) Inverse() Rotation {
	return r.Transpose()
}

// Apply multiplies v by the matrix.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0]*v.X + r[1]*v.Y + r[2]*v.Z,
		Y: r[3]*v.X + r[4]*v.Y + r[5]*v.Z,
		Z: r[6]*v.X + r[7]*v.Y + r[8]*v.Z,
	}
}

// Mul returns r*o.
func (r Rotation) Mul(o Rotation) Rotation {
	var result Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				result[3*i+j] += r[3*i+k] * o[3*k+j]
			}
		}
	}
	return result
}

// IsIdentity ...
func (r Rotation) IsIdentity() bool {
	return r == IdentityRotation()
}
