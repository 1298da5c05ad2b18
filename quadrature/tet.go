// Package quadrature provides Gauss quadrature rules on tetrahedra used
// by the source-term integrators. Weights are returned pre-scaled by the
// tetrahedron volume, so that the integral estimate is the plain dot
// product of the weights with the function values at the points.
package quadrature

import "github.com/polycell/cdoquad/geom"

// TetPoints5 returns the symmetric 5-point rule on the tetrahedron
// {xa, xb, xc, xd} of volume vol, exact for polynomials up to degree 3.
// One point sits at the centroid with weight -4/5*vol, the four others at
// the barycentric (1/2, 1/6, 1/6, 1/6) combinations with weight 9/20*vol
// each.
func TetPoints5(xa, xb, xc, xd geom.Point, vol float64) (pts [5]geom.Point, wts [5]float64) {
	const (
		oneSix   = 1.0 / 6.0
		oneThird = 1.0 / 3.0
	)

	var s geom.Point
	for k := 0; k < 3; k++ {
		s[k] = xa[k] + xb[k] + xc[k] + xd[k]
	}

	for k := 0; k < 3; k++ {
		pts[0][k] = 0.25 * s[k]
		pts[1][k] = oneSix*s[k] + oneThird*xa[k]
		pts[2][k] = oneSix*s[k] + oneThird*xb[k]
		pts[3][k] = oneSix*s[k] + oneThird*xc[k]
		pts[4][k] = oneSix*s[k] + oneThird*xd[k]
	}

	wts[0] = -0.8 * vol
	wts[1] = 0.45 * vol
	wts[2] = 0.45 * vol
	wts[3] = 0.45 * vol
	wts[4] = 0.45 * vol

	return pts, wts
}

// TetPoints4 returns the symmetric 4-point rule on the tetrahedron
// {xa, xb, xc, xd} of volume vol, exact for polynomials up to degree 2.
// The points are the barycentric ((5+3√5)/20, (5-√5)/20, ...) combinations
// with weight vol/4 each.
func TetPoints4(xa, xb, xc, xd geom.Point, vol float64) (pts [4]geom.Point, wts [4]float64) {
	const (
		a = 0.13819660112501051 // (5 - sqrt(5)) / 20
		b = 0.58541019662496845 // (5 + 3*sqrt(5)) / 20
	)

	const d = b - a
	for k := 0; k < 3; k++ {
		s := a * (xa[k] + xb[k] + xc[k] + xd[k])
		pts[0][k] = s + d*xa[k]
		pts[1][k] = s + d*xb[k]
		pts[2][k] = s + d*xc[k]
		pts[3][k] = s + d*xd[k]
	}

	w := 0.25 * vol
	wts[0], wts[1], wts[2], wts[3] = w, w, w, w

	return pts, wts
}
