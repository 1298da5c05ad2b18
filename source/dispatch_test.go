package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polycell/cdoquad/geom"
)

func noopAnalytic(_ float64, pts []geom.Point, vals []float64) {
	for i := range pts {
		vals[i] = 0
	}
}

func TestDefaultReduction(t *testing.T) {
	red, err := DefaultReduction(SchemeVertexBased)
	require.NoError(t, err)
	assert.Equal(t, Dual, red)

	red, err = DefaultReduction(SchemeVertexCell)
	require.NoError(t, err)
	assert.Equal(t, Primal, red)

	_, err = DefaultReduction(Scheme(7))
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestBuildDispatchVertexBased(t *testing.T) {
	byVal, err := NewTermByValue(0, "", Scalar, geom.WholeDomain(), Dual, 1)
	require.NoError(t, err)

	quads := []QuadType{QuadBary, QuadBarySubdiv, QuadHigher, QuadHighest}
	terms := []*Term{byVal}
	for i, q := range quads {
		term, err := NewTermByAnalytic(i+1, "", Scalar, geom.WholeDomain(), Dual, noopAnalytic)
		require.NoError(t, err)
		require.NoError(t, term.SetQuadrature(q))
		terms = append(terms, term)
	}

	fns, flags, err := BuildDispatch(SchemeVertexBased, terms)
	require.NoError(t, err)
	require.Len(t, fns, 5)
	for i, fn := range fns {
		assert.NotNilf(t, fn, "term %d must resolve", i)
	}
	assert.True(t, flags.HasSources)
	assert.False(t, flags.NeedsHodge, "dual-only terms need no Hodge operator")
	assert.False(t, flags.NeedsMask)
}

func TestBuildDispatchPrimalNeedsHodge(t *testing.T) {
	term, err := NewTermByAnalytic(0, "", Scalar, geom.WholeDomain(), Primal, noopAnalytic)
	require.NoError(t, err)
	// Quadrature setting is irrelevant for pointwise potential terms.
	require.NoError(t, term.SetQuadrature(QuadHighest))

	for _, scheme := range []Scheme{SchemeVertexBased, SchemeVertexCell} {
		fns, flags, err := BuildDispatch(scheme, []*Term{term})
		require.NoError(t, err)
		assert.NotNil(t, fns[0])
		assert.True(t, flags.NeedsHodge)
	}
}

func TestBuildDispatchSubsetNeedsMask(t *testing.T) {
	term, err := NewTermByValue(0, "", Scalar, geom.CellSubset([]int{0}), Dual, 1)
	require.NoError(t, err)

	_, flags, err := BuildDispatch(SchemeVertexBased, []*Term{term})
	require.NoError(t, err)
	assert.True(t, flags.NeedsMask)
}

func TestBuildDispatchUnsupported(t *testing.T) {
	// byArray has no cellwise integrator under any combination.
	arr, err := NewTermByArray(0, "tabulated", Scalar, geom.WholeDomain(), Dual,
		ArrayDesc{Support: geom.AtCells}, []float64{1})
	require.NoError(t, err)
	_, _, err = BuildDispatch(SchemeVertexBased, []*Term{arr})
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.Contains(t, err.Error(), "tabulated")

	// Dual reduction under the vertex+cell scheme is unimplemented.
	dual, err := NewTermByValue(0, "", Scalar, geom.WholeDomain(), Dual, 1)
	require.NoError(t, err)
	_, _, err = BuildDispatch(SchemeVertexCell, []*Term{dual})
	assert.ErrorIs(t, err, ErrUnsupported)

	// Only scalar sources are integrated.
	vec, err := NewTermByValue(0, "", Vector, geom.WholeDomain(), Dual, 1)
	require.NoError(t, err)
	_, _, err = BuildDispatch(SchemeVertexBased, []*Term{vec})
	assert.ErrorIs(t, err, ErrUnsupported)

	_, _, err = BuildDispatch(Scheme(9), []*Term{dual})
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestBuildDispatchNoTerms(t *testing.T) {
	fns, flags, err := BuildDispatch(SchemeVertexBased, nil)
	require.NoError(t, err)
	assert.Empty(t, fns)
	assert.False(t, flags.HasSources)
}

func TestDualIntegrator(t *testing.T) {
	for _, q := range []QuadType{QuadBary, QuadBarySubdiv, QuadHigher, QuadHighest} {
		fn, err := DualIntegrator(q)
		require.NoError(t, err)
		assert.NotNil(t, fn)
	}

	_, err := DualIntegrator(QuadType(42))
	assert.ErrorIs(t, err, ErrUnsupported)
}
