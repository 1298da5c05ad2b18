package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/polycell/cdoquad/geom"
)

func TestTermFactoryDefaults(t *testing.T) {
	term, err := NewTermByValue(3, "", Scalar, geom.WholeDomain(), Dual, 1.5)
	require.NoError(t, err)

	assert.Equal(t, "sourceterm_03", term.Name())
	assert.Equal(t, QuadBary, term.Quadrature())
	assert.Equal(t, Dual, term.Reduction())
	assert.Equal(t, geom.AtDualCells, term.Support())
	assert.True(t, term.FullDomain())
	assert.Equal(t, 1.5, term.Value())

	named, err := NewTermByValue(0, "heating", Scalar, geom.WholeDomain(), Primal, 1)
	require.NoError(t, err)
	assert.Equal(t, "heating", named.Name())
	assert.Equal(t, geom.AtVertices, named.Support())
}

func TestTermFactoryValidation(t *testing.T) {
	_, err := NewTermByValue(0, "", VarKind(9), geom.WholeDomain(), Dual, 1)
	assert.ErrorIs(t, err, ErrInvalidVarKind)

	_, err = NewTermByValue(0, "", Scalar, nil, Dual, 1)
	assert.Error(t, err)

	_, err = NewTermByAnalytic(0, "", Scalar, geom.WholeDomain(), Dual, nil)
	assert.Error(t, err)

	// Vector/tensor kinds are declarable; rejection happens at dispatch.
	_, err = NewTermByValue(0, "", Vector, geom.WholeDomain(), Dual, 1)
	assert.NoError(t, err)
}

func TestSetQuadrature(t *testing.T) {
	term, err := NewTermByAnalytic(0, "", Scalar, geom.WholeDomain(), Dual,
		func(float64, []geom.Point, []float64) {})
	require.NoError(t, err)

	require.NoError(t, term.SetQuadrature(QuadHighest))
	assert.Equal(t, QuadHighest, term.Quadrature())

	assert.ErrorIs(t, term.SetQuadrature(QuadType(42)), ErrUnsupported)

	var nilTerm *Term
	assert.ErrorIs(t, nilTerm.SetQuadrature(QuadBary), ErrNilTerm)
}

func TestSetReductionSwap(t *testing.T) {
	term, err := NewTermByValue(0, "", Scalar, geom.WholeDomain(), Dual, 1)
	require.NoError(t, err)

	// Same reduction: no-op.
	require.NoError(t, term.SetReduction(Dual))
	assert.Equal(t, geom.AtDualCells, term.Support())

	// Dual at dual cells -> primal at vertices and back.
	require.NoError(t, term.SetReduction(Primal))
	assert.Equal(t, Primal, term.Reduction())
	assert.Equal(t, geom.AtVertices, term.Support())

	require.NoError(t, term.SetReduction(Dual))
	assert.Equal(t, geom.AtDualCells, term.Support())

	var nilTerm *Term
	assert.ErrorIs(t, nilTerm.SetReduction(Dual), ErrNilTerm)
}

func TestReleaseAll(t *testing.T) {
	owned, err := NewTermByArray(0, "", Scalar, geom.WholeDomain(), Dual,
		ArrayDesc{Support: geom.AtCells, Owned: true}, []float64{1, 2, 3})
	require.NoError(t, err)

	shared, err := NewTermByArray(1, "", Scalar, geom.WholeDomain(), Dual,
		ArrayDesc{Support: geom.AtCells}, []float64{4, 5, 6})
	require.NoError(t, err)

	ReleaseAll([]*Term{owned, nil, shared})

	assert.Nil(t, owned.array)
	assert.NotNil(t, shared.array)
}

func TestLogSetup(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	log := zap.New(core)

	term, err := NewTermByAnalytic(0, "radiative", Scalar, geom.WholeDomain(), Dual,
		func(float64, []geom.Point, []float64) {})
	require.NoError(t, err)
	require.NoError(t, term.SetQuadrature(QuadHigher))

	term.LogSetup(log, "energy")

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "energy", fields["equation"])
	assert.Equal(t, "radiative", fields["name"])
	assert.Equal(t, "by analytic function", fields["definition"])
	assert.Equal(t, "higher (10 points, quadratic)", fields["quadrature"])
}
