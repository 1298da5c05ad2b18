package quadrature

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/polycell/cdoquad/geom"
)

// Reference tetrahedron {0, e_x, e_y, e_z} with volume 1/6. Monomial
// integrals over it follow a!b!c!/(a+b+c+3)!.
var (
	refA = geom.Point{0, 0, 0}
	refB = geom.Point{1, 0, 0}
	refC = geom.Point{0, 1, 0}
	refD = geom.Point{0, 0, 1}
)

const refVol = 1.0 / 6.0

func integrate5(f func(geom.Point) float64) float64 {
	pts, wts := TetPoints5(refA, refB, refC, refD, refVol)
	sum := 0.0
	for i := range pts {
		sum += wts[i] * f(pts[i])
	}
	return sum
}

func integrate4(f func(geom.Point) float64) float64 {
	pts, wts := TetPoints4(refA, refB, refC, refD, refVol)
	sum := 0.0
	for i := range pts {
		sum += wts[i] * f(pts[i])
	}
	return sum
}

func TestTetPoints5Weights(t *testing.T) {
	_, wts := TetPoints5(refA, refB, refC, refD, refVol)

	assert.InDelta(t, -0.8*refVol, wts[0], 1e-15)
	for i := 1; i < 5; i++ {
		assert.InDelta(t, 0.45*refVol, wts[i], 1e-15)
	}

	// Weights sum to the volume.
	sum := 0.0
	for _, w := range wts {
		sum += w
	}
	assert.InDelta(t, refVol, sum, 1e-15)
}

func TestTetPoints5ExactThroughCubic(t *testing.T) {
	cases := []struct {
		name  string
		f     func(geom.Point) float64
		exact float64
	}{
		{"constant", func(geom.Point) float64 { return 1 }, 1.0 / 6.0},
		{"x", func(p geom.Point) float64 { return p[0] }, 1.0 / 24.0},
		{"x2", func(p geom.Point) float64 { return p[0] * p[0] }, 1.0 / 60.0},
		{"xyz", func(p geom.Point) float64 { return p[0] * p[1] * p[2] }, 1.0 / 720.0},
		{"x3", func(p geom.Point) float64 { return p[0] * p[0] * p[0] }, 1.0 / 120.0},
	}
	for _, tc := range cases {
		assert.InDeltaf(t, tc.exact, integrate5(tc.f), 1e-14, "monomial %s", tc.name)
	}
}

func TestTetPoints5NotExactForQuartic(t *testing.T) {
	x4 := func(p geom.Point) float64 { return p[0] * p[0] * p[0] * p[0] }
	err := integrate5(x4) - 1.0/210.0
	if err > -1e-5 && err < 1e-5 {
		t.Errorf("degree-3 rule unexpectedly exact for x^4: err=%g", err)
	}
}

func TestTetPoints4ExactThroughQuadratic(t *testing.T) {
	cases := []struct {
		name  string
		f     func(geom.Point) float64
		exact float64
	}{
		{"constant", func(geom.Point) float64 { return 1 }, 1.0 / 6.0},
		{"y", func(p geom.Point) float64 { return p[1] }, 1.0 / 24.0},
		{"y2", func(p geom.Point) float64 { return p[1] * p[1] }, 1.0 / 60.0},
		{"xy", func(p geom.Point) float64 { return p[0] * p[1] }, 1.0 / 120.0},
	}
	for _, tc := range cases {
		assert.InDeltaf(t, tc.exact, integrate4(tc.f), 1e-14, "monomial %s", tc.name)
	}
}

func TestTetPoints4NotExactForCubic(t *testing.T) {
	xyz := func(p geom.Point) float64 { return p[0] * p[1] * p[2] }
	err := integrate4(xyz) - 1.0/720.0
	if err > -1e-5 && err < 1e-5 {
		t.Errorf("degree-2 rule unexpectedly exact for xyz: err=%g", err)
	}
}
