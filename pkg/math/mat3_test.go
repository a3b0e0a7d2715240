package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMat3FromRows(t *testing.T) {
	m := Mat3FromRows([3][3]float64{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})
	assert.Equal(t, 2.0, m.At(0, 1))
	assert.Equal(t, Vec3{1, 4, 7}, m.Col(0))
	assert.Equal(t, Vec3{4, 5, 6}, m.Row(1))
	assert.Equal(t, Vec3{14, 32, 50}, m.MulVec(Vec3{1, 2, 3}))
}

func TestMat3FromBasis(t *testing.T) {
	m, err := Mat3FromBasis(UnitY(), UnitX().Neg(), UnitZ(), DefaultTolerance)
	require.NoError(t, err)
	assert.True(t, m.MulVec(UnitX()).ApproxEqual(UnitY()))

	// Left-handed basis is a reflection.
	_, err = Mat3FromBasis(UnitX(), UnitY(), UnitZ().Neg(), DefaultTolerance)
	assert.ErrorIs(t, err, ErrNotRotation)

	// Not unit length.
	_, err = Mat3FromBasis(Vec3{2, 0, 0}, UnitY(), UnitZ(), DefaultTolerance)
	assert.ErrorIs(t, err, ErrNotRotation)
}

func TestMat3Inverse(t *testing.T) {
	m := Mat3FromRows([3][3]float64{
		{2, 0, 1},
		{1, 3, 0},
		{0, 1, 4},
	})
	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.True(t, m.Mul(inv).ApproxEqualTol(Identity3(), 1e-12))

	_, err = Mat3{}.Inverse()
	assert.ErrorIs(t, err, ErrSingularMatrix)
}

func TestMat3RotationInverseIsTranspose(t *testing.T) {
	r, err := Mat3RotateAxis(Vec3{1, -2, 0.5}, 2.1)
	require.NoError(t, err)
	require.True(t, r.IsRotation(DefaultTolerance))

	inv, err := r.Inverse()
	require.NoError(t, err)
	assert.True(t, inv.ApproxEqualTol(r.Transpose(), 1e-12))
}

func TestMat3IsRotation(t *testing.T) {
	assert.True(t, Identity3().IsRotation(DefaultTolerance))
	assert.False(t, Scale3(1, 1, -1).IsRotation(DefaultTolerance))
	assert.False(t, Scale3(2, 2, 2).IsRotation(DefaultTolerance))
	assert.True(t, RotateZ(math.Pi/3).Rotation().IsRotation(DefaultTolerance))
}
