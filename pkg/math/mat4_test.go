package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestMat4FromRows(t *testing.T) {
	m := Mat4FromRows([4][4]float64{
		{1, 0, 0, 5},
		{0, 1, 0, 10},
		{0, 0, 1, 15},
		{0, 0, 0, 1},
	})
	assert.Equal(t, Translate(5, 10, 15), m)
	assert.Equal(t, 10.0, m.At(1, 3))
	assert.Equal(t, Vec4{0, 1, 0, 10}, m.Row(1))
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	assert.Equal(t, Vec3{5, 10, 15}, m.Translation())
}

func TestApplyPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"rotate y 90", RotateY(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 0, -1}},
		{"rotate z 90", RotateZ(math.Pi / 2), Vec3{1, 0, 0}, Vec3{0, 1, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.ApplyPoint(tt.p)
			assert.True(t, got.ApproxEqual(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestApplyVectorIgnoresTranslation(t *testing.T) {
	m := Translate(4, 5, 6).Mul(RotateZ(math.Pi / 2))
	assert.True(t, m.ApplyVector(UnitX()).ApproxEqual(UnitY()))
	assert.True(t, m.ApplyPoint(UnitX()).ApproxEqual(Vec3{4, 6, 6}))
}

func TestMulOrder(t *testing.T) {
	// Rotate first, then translate: T·R.
	rt := Translate(1, 0, 0).Mul(RotateZ(math.Pi / 2))
	assert.True(t, rt.ApplyPoint(UnitX()).ApproxEqual(Vec3{1, 1, 0}))

	// Translate first, then rotate: R·T.
	tr := RotateZ(math.Pi / 2).Mul(Translate(1, 0, 0))
	assert.True(t, tr.ApplyPoint(UnitX()).ApproxEqual(Vec3{0, 2, 0}))
}

func TestRotateAxis(t *testing.T) {
	m, err := RotateAxis(Vec3{0, 0, 5}, math.Pi/2)
	require.NoError(t, err)
	assert.True(t, m.ApproxEqual(RotateZ(math.Pi/2)))

	_, err = RotateAxis(Vec3{}, 1)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestRotationOrthonormalUnderComposition(t *testing.T) {
	axes := []Vec3{{1, 2, 3}, {-1, 0, 4}, {0.3, -0.2, 0.9}, {5, 5, -1}}
	m := Identity()
	for i, axis := range axes {
		r, err := RotateAxis(axis, 0.7*float64(i+1))
		require.NoError(t, err)
		m = r.Mul(m)

		rot := m.Rotation()
		assert.True(t, rot.Mul(rot.Transpose()).ApproxEqualTol(Identity3(), 1e-12), "step %d", i)
		assert.InDelta(t, 1, m.Det(), 1e-12)
	}
}

func TestInverseRigid(t *testing.T) {
	r, err := RotateAxis(Vec3{1, 1, 0}, 1.2)
	require.NoError(t, err)
	m := Translate(3, -2, 7).Mul(r)
	require.True(t, m.IsRigid(DefaultTolerance))

	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.True(t, inv.Mul(m).ApproxEqualTol(Identity(), 1e-12))
	assert.True(t, m.Mul(inv).ApproxEqualTol(Identity(), 1e-12))
	assert.True(t, inv.Rotation().ApproxEqual(r.Rotation().Transpose()))
}

func TestInverseAffine(t *testing.T) {
	m := Translate(1, 2, 3).Mul(Scale(2, 4, 0.5)).Mul(RotateX(0.3))
	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.True(t, inv.Mul(m).ApproxEqualTol(Identity(), 1e-12))
}

func TestInverseProjective(t *testing.T) {
	m := Mat4FromRows([4][4]float64{
		{2, 0, 0, 1},
		{0, 3, 1, 0},
		{0, 0, 1, 2},
		{0, 0, -1, 4},
	})
	require.False(t, m.IsAffine())
	inv, err := m.Inverse()
	require.NoError(t, err)
	assert.True(t, m.Mul(inv).ApproxEqualTol(Identity(), 1e-12))
}

func TestInverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero", Mat4{}},
		{"zero rows affine", Mat4FromRows([4][4]float64{
			{0, 0, 0, 1},
			{0, 0, 0, 2},
			{0, 0, 0, 3},
			{0, 0, 0, 1},
		})},
		{"flattened scale", Scale(1, 0, 1)},
		{"rank deficient", Mat4FromRows([4][4]float64{
			{1, 2, 3, 4},
			{2, 4, 6, 8},
			{0, 1, 0, 1},
			{1, 0, 1, 0},
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.m.Inverse()
			assert.ErrorIs(t, err, ErrSingularMatrix)
		})
	}
}

func TestDet(t *testing.T) {
	assert.InDelta(t, 24, Scale(2, 3, 4).Det(), 1e-12)
	assert.InDelta(t, -1, Scale(-1, 1, 1).Det(), 1e-12)
}

func TestTranspose(t *testing.T) {
	m := Translate(1, 2, 3)
	tr := m.Transpose()
	assert.Equal(t, 1.0, tr.At(3, 0))
	assert.Equal(t, m, tr.Transpose())
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m, err := LookAt(eye, Vec3{}, UnitY())
	require.NoError(t, err)

	// The eye maps to the view-space origin and the target lies on -Z.
	assert.True(t, m.ApplyPoint(eye).ApproxEqual(Vec3{}))
	assert.True(t, m.ApplyPoint(Vec3{}).ApproxEqual(Vec3{0, 0, -5}))
	assert.True(t, m.IsRigid(DefaultTolerance))

	_, err = LookAt(eye, eye, UnitY())
	assert.ErrorIs(t, err, ErrDegenerateInput)
	_, err = LookAt(eye, Vec3{}, UnitZ())
	assert.ErrorIs(t, err, ErrDegenerateInput)
}
