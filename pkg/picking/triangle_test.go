package picking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/spatial3d/pkg/math"
)

var (
	triA = math.Vec3{X: -1, Y: -1}
	triB = math.Vec3{X: 1, Y: -1}
	triC = math.Vec3{Y: 1}
)

func TestIntersectTriangleCenter(t *testing.T) {
	r := mustRay(t, math.Vec3{Z: -1}, math.UnitZ())
	hit := IntersectTriangle(r, triA, triB, triC, Options{})

	assert.True(t, hit.OK)
	assert.InDelta(t, 1, hit.T, 1e-12)
	assert.True(t, hit.Point.ApproxEqual(math.Vec3{}))
	assert.InDelta(t, 1, hit.Bary[0]+hit.Bary[1]+hit.Bary[2], 1e-12)
	assert.Equal(t, -1, hit.Face)

	// The barycentric weights reproduce the hit point.
	p := triA.Scale(hit.Bary[0]).Add(triB.Scale(hit.Bary[1])).Add(triC.Scale(hit.Bary[2]))
	assert.True(t, p.ApproxEqual(hit.Point))
}

func TestIntersectTriangleCases(t *testing.T) {
	tests := []struct {
		name   string
		origin math.Vec3
		dir    math.Vec3
		opts   Options
		wantOK bool
		wantT  float64
	}{
		{"edge counts", math.Vec3{Y: -1, Z: -1}, math.UnitZ(), Options{}, true, 1},
		{"vertex counts", math.Vec3{X: -1, Y: -1, Z: -1}, math.UnitZ(), Options{}, true, 1},
		{"just outside edge", math.Vec3{Y: -1.001, Z: -1}, math.UnitZ(), Options{}, false, 0},
		{"outside", math.Vec3{X: 2, Y: 2, Z: -1}, math.UnitZ(), Options{}, false, 0},
		{"parallel", math.Vec3{Z: 1}, math.UnitX(), Options{}, false, 0},
		{"in plane", math.Vec3{X: -5}, math.UnitX(), Options{}, false, 0},
		{"behind origin", math.Vec3{Z: 1}, math.UnitZ(), Options{}, false, 0},
		{"back face culled", math.Vec3{Z: -1}, math.UnitZ(), Options{CullBackFaces: true}, false, 0},
		{"front face kept", math.Vec3{Z: 1}, math.Vec3{Z: -1}, Options{CullBackFaces: true}, true, 1},
		{"wide tolerance", math.Vec3{Y: -1.001, Z: -1}, math.UnitZ(), Options{Tolerance: 0.01}, true, 1},
		{"grazing", math.Vec3{X: -5, Z: 1e-12}, math.Vec3{X: 1, Z: -1e-12}, Options{}, false, 0},
		{"origin on plane", math.Vec3{}, math.UnitZ(), Options{}, true, 0},
		{"origin just past plane", math.Vec3{Z: 1e-12}, math.UnitZ(), Options{}, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := IntersectTriangle(mustRay(t, tt.origin, tt.dir), triA, triB, triC, tt.opts)
			assert.Equal(t, tt.wantOK, hit.OK)
			if tt.wantOK {
				assert.InDelta(t, tt.wantT, hit.T, 1e-12)
			}
		})
	}
}

func TestIntersectTriangleDegenerate(t *testing.T) {
	r := mustRay(t, math.Vec3{Z: -1}, math.UnitZ())
	hit := IntersectTriangle(r, math.Vec3{}, math.Vec3{X: 1}, math.Vec3{X: 2}, Options{})
	assert.False(t, hit.OK)
	assert.Equal(t, Miss(), hit)
}

func TestIntersectTriangleScaleFree(t *testing.T) {
	tests := []struct {
		name  string
		scale float64
		tol   math.Tolerance
	}{
		{"unit", 1, 0},
		{"milli", 1e-3, 0},
		{"milli loose tolerance", 1e-3, 1e-6},
		{"1e-5", 1e-5, 0},
		{"1e-7", 1e-7, 0},
		{"large", 1e4, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.scale
			a := math.Vec3{X: -s, Y: -s}
			b := math.Vec3{X: s, Y: -s}
			c := math.Vec3{Y: s}
			r := mustRay(t, math.Vec3{Z: -1}, math.UnitZ())

			hit := IntersectTriangle(r, a, b, c, Options{Tolerance: tt.tol})
			assert.True(t, hit.OK)
			assert.InDelta(t, 1, hit.T, 1e-12)
			assert.InDelta(t, 1, hit.Bary[0]+hit.Bary[1]+hit.Bary[2], 1e-12)
		})
	}
}

func TestIntersectTriangleNeverBehindOrigin(t *testing.T) {
	// The origin sits just past the plane, inside the tolerance band.
	r := mustRay(t, math.Vec3{Z: 1e-12}, math.UnitZ())
	hit := IntersectTriangle(r, triA, triB, triC, Options{})
	assert.True(t, hit.OK)
	assert.Equal(t, 0.0, hit.T)
	assert.Equal(t, r.Origin, hit.Point)

	// Past the band it misses.
	r = mustRay(t, math.Vec3{Z: 1e-6}, math.UnitZ())
	assert.False(t, IntersectTriangle(r, triA, triB, triC, Options{}).OK)
}
