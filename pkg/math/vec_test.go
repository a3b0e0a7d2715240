package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	got := a.Add(b)
	want := Vec3{5, 7, 9}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	if got := v.Length(); got != 7 {
		t.Errorf("Vec3.Length() = %v, want 7", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3CrossAntiCommutative(t *testing.T) {
	pairs := [][2]Vec3{
		{{1, 2, 3}, {-4, 0.5, 2}},
		{{0.1, -7, 2}, {3, 3, 3}},
		{{1, 0, 0}, {0, 0, 1}},
	}
	for _, p := range pairs {
		a, b := p[0], p[1]
		assert.True(t, a.Cross(b).ApproxEqual(b.Cross(a).Neg()), "%v x %v", a, b)
	}
}

func TestVec3Normalize(t *testing.T) {
	n, err := Vec3{3, 4, 12}.Normalize()
	require.NoError(t, err)
	assert.InDelta(t, 1, n.Length(), 1e-12)
	assert.True(t, n.ApproxEqual(Vec3{3.0 / 13, 4.0 / 13, 12.0 / 13}))
}

func TestVec3NormalizeZero(t *testing.T) {
	_, err := Vec3{}.Normalize()
	assert.ErrorIs(t, err, ErrDegenerateInput)

	// A caller-supplied tolerance widens what counts as zero.
	_, err = Vec3{1e-4, 0, 0}.NormalizeTol(1e-3)
	assert.ErrorIs(t, err, ErrDegenerateInput)
	_, err = Vec3{1e-4, 0, 0}.Normalize()
	assert.NoError(t, err)
}

func TestVec3Div(t *testing.T) {
	v, err := Vec3{2, 4, 6}.Div(2)
	require.NoError(t, err)
	assert.Equal(t, Vec3{1, 2, 3}, v)

	_, err = Vec3{1, 1, 1}.Div(0)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestVec3AngleTo(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"perpendicular", UnitX(), UnitY(), math.Pi / 2},
		{"parallel", Vec3{2, 0, 0}, Vec3{5, 0, 0}, 0},
		{"opposite", Vec3{1, 1, 1}, Vec3{-3, -3, -3}, math.Pi},
		{"45 degrees", UnitX(), Vec3{1, 1, 0}, math.Pi / 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.a.AngleTo(tt.b)
			require.NoError(t, err)
			// Parallel inputs produce cosines slightly above 1 without clamping.
			assert.False(t, math.IsNaN(got))
			assert.InDelta(t, tt.want, got, 1e-7)
		})
	}

	_, err := Vec3{}.AngleTo(UnitX())
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{10, 20, 30}
	assert.Equal(t, Vec3{5, 10, 15}, a.Lerp(b, 0.5))
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
}

func TestVec3ApproxEqual(t *testing.T) {
	a := Vec3{1, 2, 3}
	assert.True(t, a.ApproxEqual(Vec3{1 + 1e-12, 2, 3 - 1e-12}))
	assert.False(t, a.ApproxEqual(Vec3{1.001, 2, 3}))
	assert.True(t, a.ApproxEqualTol(Vec3{1.001, 2, 3}, 0.01))
}

func TestVec3Predicates(t *testing.T) {
	assert.True(t, Vec3{}.IsZero(DefaultTolerance))
	assert.True(t, UnitZ().IsUnit(DefaultTolerance))
	assert.True(t, UnitX().IsPerpendicular(UnitY(), DefaultTolerance))
	assert.False(t, Vec3{math.NaN(), 0, 0}.IsFinite())
	assert.True(t, Vec3{1, 2, 3}.IsFinite())
}

func TestVec3Components(t *testing.T) {
	v := Vec3{1, 2, 3}
	assert.Equal(t, 2.0, v.Component(1))
	assert.Equal(t, Vec3{1, 2, 9}, v.WithComponent(2, 9))
	assert.Equal(t, Vec3{-1, 2, 0}, Vec3{-1, 5, 0}.Min(Vec3{3, 2, 1}))
	assert.Panics(t, func() { v.Component(3) })
}
