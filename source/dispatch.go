package source

import (
	"fmt"

	"github.com/polycell/cdoquad/geom"
)

// Scheme is the space discretization the source terms feed.
type Scheme uint8

const (
	// SchemeVertexBased: CDO vertex-based, one unknown per primal vertex.
	SchemeVertexBased Scheme = iota
	// SchemeVertexCell: CDO vertex+cell-based, one extra cell unknown.
	SchemeVertexCell
)

func (s Scheme) String() string {
	switch s {
	case SchemeVertexBased:
		return "CDO vertex-based"
	case SchemeVertexCell:
		return "CDO vertex+cell-based"
	}
	return "unknown"
}

// DefaultReduction returns the reduction a source term defaults to under
// the given scheme.
func DefaultReduction(s Scheme) (Reduction, error) {
	switch s {
	case SchemeVertexBased:
		return Dual, nil
	case SchemeVertexCell:
		return Primal, nil
	}
	return Primal, fmt.Errorf("%w: %d", ErrUnknownScheme, s)
}

// CellwiseFn integrates one source term over one cell, adding its
// contribution into out (never overwriting). A nil term is a no-op.
type CellwiseFn func(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64)

// SystemFlags summarizes what the resolved source terms require from the
// surrounding assembly.
type SystemFlags struct {
	// HasSources is false when no term is declared; the cellwise
	// evaluator then returns after zeroing the local vector.
	HasSources bool
	// NeedsHodge is set when any primal-reduction term needs a
	// precomputed cellwise Hodge operator in the workspace.
	NeedsHodge bool
	// NeedsMask is set when any term is restricted to a cell subset.
	NeedsMask bool
}

type dispatchKey struct {
	scheme Scheme
	red    Reduction
	def    DefKind
	quad   QuadType
}

// The four-axis resolution as a flat sparse table. Entries absent from
// the table are unimplemented combinations and fail resolution. For every
// entry whose integrator ignores the quadrature axis, the key is
// normalized to QuadBary.
var cellwiseTable = map[dispatchKey]CellwiseFn{
	{SchemeVertexBased, Dual, ByValue, QuadBary}:          DualByValue,
	{SchemeVertexBased, Dual, ByAnalytic, QuadBary}:       DualBaryAnalytic,
	{SchemeVertexBased, Dual, ByAnalytic, QuadBarySubdiv}: DualSubdivAnalytic,
	{SchemeVertexBased, Dual, ByAnalytic, QuadHigher}:     DualQ10Analytic,
	{SchemeVertexBased, Dual, ByAnalytic, QuadHighest}:    DualQ5Analytic,
	{SchemeVertexBased, Primal, ByValue, QuadBary}:        VertexPotentialByValue,
	{SchemeVertexBased, Primal, ByAnalytic, QuadBary}:     VertexPotentialAnalytic,
	{SchemeVertexCell, Primal, ByValue, QuadBary}:         VertexCellPotentialByValue,
	{SchemeVertexCell, Primal, ByAnalytic, QuadBary}:      VertexCellPotentialAnalytic,
}

// DualIntegrator returns the dual-reduction analytic integrator for a
// quadrature type, used by the whole-mesh density evaluation.
func DualIntegrator(q QuadType) (CellwiseFn, error) {
	fn, ok := cellwiseTable[dispatchKey{SchemeVertexBased, Dual, ByAnalytic, q}]
	if !ok {
		return nil, fmt.Errorf("%w: dual analytic integrator for quadrature %q",
			ErrUnsupported, q)
	}
	return fn, nil
}

// BuildDispatch resolves one integration routine per term for the given
// scheme. Resolution is deterministic on (scheme, reduction, definition,
// quadrature); any combination outside the table is a configuration error
// surfaced here, before any cell loop begins. The returned flags record
// whether a Hodge operator or an activation mask must be prepared.
func BuildDispatch(scheme Scheme, terms []*Term) ([]CellwiseFn, SystemFlags, error) {
	var flags SystemFlags

	if len(terms) > MaxTerms {
		return nil, flags, fmt.Errorf("%w: %d declared, limit is %d",
			ErrTooManyTerms, len(terms), MaxTerms)
	}
	if scheme > SchemeVertexCell {
		return nil, flags, fmt.Errorf("%w: %d", ErrUnknownScheme, scheme)
	}

	fns := make([]CellwiseFn, len(terms))
	if len(terms) == 0 {
		return fns, flags, nil
	}
	flags.HasSources = true

	for i, t := range terms {
		if t == nil {
			continue
		}
		if t.kind != Scalar {
			return nil, flags, fmt.Errorf("%w: term %q: %s sources are not integrated (scalar only)",
				ErrUnsupported, t.name, t.kind)
		}

		key := dispatchKey{scheme: scheme, red: t.reduction, def: t.def, quad: QuadBary}
		if t.def == ByAnalytic && t.reduction == Dual {
			key.quad = t.quad
		}

		fn, ok := cellwiseTable[key]
		if !ok {
			return nil, flags, fmt.Errorf("%w: term %q: %s, %s reduction, %s, quadrature %q",
				ErrUnsupported, t.name, scheme, t.reduction, t.def, t.quad)
		}
		fns[i] = fn

		if t.reduction == Primal {
			flags.NeedsHodge = true
		}
		if !t.fullDomain {
			flags.NeedsMask = true
		}
	}

	return fns, flags, nil
}
