package source

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polycell/cdoquad/geom"
)

func TestBuildMaskFullDomainOnly(t *testing.T) {
	term, err := NewTermByValue(0, "", Scalar, geom.WholeDomain(), Dual, 1)
	require.NoError(t, err)

	masks, err := BuildMask([]*Term{term}, 10)
	require.NoError(t, err)
	assert.Nil(t, masks, "all-full-domain terms must not allocate a mask")
}

func TestBuildMaskSubset(t *testing.T) {
	sub, err := NewTermByValue(0, "", Scalar, geom.CellSubset([]int{1, 3}), Dual, 1)
	require.NoError(t, err)
	full, err := NewTermByValue(1, "", Scalar, geom.WholeDomain(), Dual, 2)
	require.NoError(t, err)

	masks, err := BuildMask([]*Term{sub, full}, 5)
	require.NoError(t, err)
	require.NotNil(t, masks)

	// Bit 0 only on cells 1 and 3; bit 1 everywhere, since the masked
	// path must still see the full-domain term.
	want := []Mask{0b10, 0b11, 0b10, 0b11, 0b10}
	if diff := cmp.Diff(want, masks); diff != "" {
		t.Errorf("mask mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildMaskEmptySubset(t *testing.T) {
	term, err := NewTermByValue(0, "broken", Scalar, geom.CellSubset(nil), Dual, 1)
	require.NoError(t, err)

	_, err = BuildMask([]*Term{term}, 5)
	assert.ErrorIs(t, err, ErrEmptySubset)
	assert.Contains(t, err.Error(), "broken")
}

func TestBuildMaskCellOutOfRange(t *testing.T) {
	term, err := NewTermByValue(0, "", Scalar, geom.CellSubset([]int{7}), Dual, 1)
	require.NoError(t, err)

	_, err = BuildMask([]*Term{term}, 5)
	assert.Error(t, err)
}

func TestBuildMaskTooManyTerms(t *testing.T) {
	terms := make([]*Term, MaxTerms+1)
	for i := range terms {
		term, err := NewTermByValue(i, "", Scalar, geom.WholeDomain(), Dual, 1)
		require.NoError(t, err)
		terms[i] = term
	}

	_, err := BuildMask(terms, 5)
	assert.ErrorIs(t, err, ErrTooManyTerms)
}
