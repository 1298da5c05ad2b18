// Package hodge provides the cellwise discrete Hodge operator: a small
// symmetric mass-like matrix mapping nodal potential values to a
// consistent integrated load vector. Operators are precomputed once per
// cell shape by the caller and reused across source terms.
package hodge

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Operator is a local Hodge operator on n degrees of freedom.
type Operator struct {
	m *mat.Dense
	n int
}

// FromDense wraps a square matrix as a local Hodge operator. The matrix
// is retained, not copied.
func FromDense(m *mat.Dense) (*Operator, error) {
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("hodge: operator must be square, got %dx%d", r, c)
	}
	return &Operator{m: m, n: r}, nil
}

// Lumped builds the diagonal (lumped) Hodge operator diag(weights[i]*vol).
// With the dual vertex weights of a cell this yields the row-sum lumping
// of the consistent vertex mass matrix.
func Lumped(weights []float64, vol float64) *Operator {
	n := len(weights)
	m := mat.NewDense(n, n, nil)
	for i, w := range weights {
		m.Set(i, i, w*vol)
	}
	return &Operator{m: m, n: n}
}

// Size returns the number of degrees of freedom the operator acts on.
func (o *Operator) Size() int { return o.n }

// Apply computes out = H * vals. Both slices must have length Size();
// a mismatch is a programmer error and panics.
func (o *Operator) Apply(vals, out []float64) {
	if len(vals) != o.n || len(out) != o.n {
		panic(fmt.Sprintf("hodge: Apply on %d dofs with len(vals)=%d len(out)=%d",
			o.n, len(vals), len(out)))
	}
	v := mat.NewVecDense(o.n, vals)
	res := mat.NewVecDense(o.n, out)
	res.MulVec(o.m, v)
}
