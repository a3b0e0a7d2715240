package math

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundPoints(t *testing.T) {
	box, ok := BoundPoints([]Vec3{{1, 5, -2}, {-3, 0, 4}, {2, 2, 2}})
	require.True(t, ok)
	assert.Equal(t, Vec3{-3, 0, -2}, box.Min)
	assert.Equal(t, Vec3{2, 5, 4}, box.Max)

	_, ok = BoundPoints(nil)
	assert.False(t, ok)
}

func TestAABBMeasures(t *testing.T) {
	box := NewAABB(Vec3{2, 2, 2}, Vec3{0, 0, 0})
	assert.Equal(t, Vec3{0, 0, 0}, box.Min)
	assert.Equal(t, Vec3{2, 2, 2}, box.Size())
	assert.Equal(t, Vec3{1, 1, 1}, box.Center())
	assert.InDelta(t, math.Sqrt(3), box.BoundingSphereRadius(), 1e-12)

	corners := box.Corners()
	assert.Equal(t, box.Min, corners[0])
	assert.Equal(t, box.Max, corners[6])
}

func TestAABBContainsOverlaps(t *testing.T) {
	box := NewAABB(Vec3{}, Vec3{1, 1, 1})
	assert.True(t, box.Contains(Vec3{1, 0.5, 0}, DefaultTolerance))
	assert.False(t, box.Contains(Vec3{1.1, 0.5, 0}, DefaultTolerance))
	assert.True(t, box.Contains(Vec3{1.1, 0.5, 0}, 0.2))

	assert.True(t, box.Overlaps(NewAABB(Vec3{1, 1, 1}, Vec3{2, 2, 2})))
	assert.False(t, box.Overlaps(NewAABB(Vec3{1.5, 0, 0}, Vec3{2, 1, 1})))
	assert.Equal(t, NewAABB(Vec3{}, Vec3{2, 2, 2}), box.Union(NewAABB(Vec3{1, 1, 1}, Vec3{2, 2, 2})))
}

func TestAABBSplit(t *testing.T) {
	box := NewAABB(Vec3{}, Vec3{4, 2, 2})
	assert.Equal(t, 0, box.LongestAxis())

	lower, upper, err := box.Split(0, 1)
	require.NoError(t, err)
	assert.Equal(t, Vec3{1, 2, 2}, lower.Max)
	assert.Equal(t, Vec3{1, 0, 0}, upper.Min)

	_, _, err = box.Split(1, 2)
	assert.ErrorIs(t, err, ErrDegenerateInput)
}

func TestAABBTransform(t *testing.T) {
	box := NewAABB(Vec3{}, Vec3{1, 1, 1})
	moved := box.Transform(Translate(2, 0, 0))
	assert.True(t, moved.Min.ApproxEqual(Vec3{2, 0, 0}))
	assert.True(t, moved.Max.ApproxEqual(Vec3{3, 1, 1}))

	turned := box.Transform(RotateZ(math.Pi / 2))
	assert.True(t, turned.Min.ApproxEqual(Vec3{-1, 0, 0}))
	assert.True(t, turned.Max.ApproxEqual(Vec3{0, 1, 1}))
}
