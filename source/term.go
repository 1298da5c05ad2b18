// Package source evaluates volumetric source terms of CDO vertex-based
// and vertex+cell-based schemes on polyhedral cells. A Term describes one
// user-declared source; BuildDispatch resolves one cellwise integration
// routine per term, BuildMask tags the cells each term acts on, and
// ComputeCellwise accumulates the active contributions into a cell-local
// load vector.
package source

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/polycell/cdoquad/geom"
)

// VarKind is the tensor order of the source field. Only scalar sources
// are integrated; vector and tensor kinds are declarable but rejected at
// dispatch time.
type VarKind uint8

const (
	Scalar VarKind = iota
	Vector
	Tensor
)

func (k VarKind) String() string {
	switch k {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case Tensor:
		return "tensor"
	}
	return "unknown"
}

// Reduction selects the discrete entities a source feeds: primal
// (vertices, cells) or dual (vertex-centered control volumes).
type Reduction uint8

const (
	Primal Reduction = iota
	Dual
)

func (r Reduction) String() string {
	if r == Dual {
		return "dual"
	}
	return "primal"
}

// DefKind is how the underlying physical field is specified.
type DefKind uint8

const (
	ByValue DefKind = iota
	ByAnalytic
	ByArray
)

func (d DefKind) String() string {
	switch d {
	case ByValue:
		return "by value"
	case ByAnalytic:
		return "by analytic function"
	case ByArray:
		return "by array"
	}
	return "unknown"
}

// QuadType selects the quadrature used by analytic dual-reduction
// integrators, in increasing exactness order.
type QuadType uint8

const (
	// QuadBary: one evaluation per vertex at the volume-weighted
	// barycenter of its dual-cell portion. Exact for affine fields.
	QuadBary QuadType = iota
	// QuadBarySubdiv: two evaluations per sub-tetrahedron. Same affine
	// exactness as QuadBary, better local resolution.
	QuadBarySubdiv
	// QuadHigher: ten-point rule, exact for quadratic fields.
	QuadHigher
	// QuadHighest: five-point Gauss rule per sub-tetrahedron, exact for
	// cubic fields. Expensive, use with care.
	QuadHighest
)

func (q QuadType) String() string {
	switch q {
	case QuadBary:
		return "barycentric"
	case QuadBarySubdiv:
		return "barycentric subdivision"
	case QuadHigher:
		return "higher (10 points, quadratic)"
	case QuadHighest:
		return "highest (5 points, cubic)"
	}
	return "unknown"
}

// AnalyticFunc evaluates a field at a batch of points at time t, writing
// one value per point into vals. len(vals) >= len(pts) always holds.
type AnalyticFunc func(t float64, pts []geom.Point, vals []float64)

// ArrayDesc describes the storage state of an array-backed definition.
type ArrayDesc struct {
	Support geom.Support
	Owned   bool // the term releases the array at teardown
}

// Term is one volumetric source term, immutable after construction apart
// from the quadrature and reduction mutators.
type Term struct {
	id   int
	name string

	loc        geom.MeshLocation
	fullDomain bool

	kind      VarKind
	reduction Reduction
	support   geom.Support
	def       DefKind
	quad      QuadType

	value     float64
	analytic  AnalyticFunc
	array     []float64
	arrayDesc ArrayDesc
}

func termName(name string, id int) string {
	if name == "" {
		return fmt.Sprintf("sourceterm_%02d", id)
	}
	return name
}

func newTerm(id int, name string, kind VarKind, loc geom.MeshLocation,
	red Reduction) (*Term, error) {

	if kind > Tensor {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVarKind, kind)
	}
	if loc == nil {
		return nil, fmt.Errorf("source: term %q: nil mesh location", termName(name, id))
	}

	support := geom.AtVertices
	if red == Dual {
		support = geom.AtDualCells
	}

	return &Term{
		id:         id,
		name:       termName(name, id),
		loc:        loc,
		fullDomain: loc.FullDomain(),
		kind:       kind,
		reduction:  red,
		support:    support,
		quad:       QuadBary,
	}, nil
}

// NewTermByValue declares a source term with a constant value.
func NewTermByValue(id int, name string, kind VarKind, loc geom.MeshLocation,
	red Reduction, val float64) (*Term, error) {

	t, err := newTerm(id, name, kind, loc, red)
	if err != nil {
		return nil, err
	}
	t.def = ByValue
	t.value = val
	return t, nil
}

// NewTermByAnalytic declares a source term backed by an analytic function
// of space and time.
func NewTermByAnalytic(id int, name string, kind VarKind, loc geom.MeshLocation,
	red Reduction, fn AnalyticFunc) (*Term, error) {

	t, err := newTerm(id, name, kind, loc, red)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("source: term %q: nil analytic function", t.name)
	}
	t.def = ByAnalytic
	t.analytic = fn
	return t, nil
}

// NewTermByArray declares a source term backed by a pre-tabulated array.
// desc records where the values live and whether the term owns them.
func NewTermByArray(id int, name string, kind VarKind, loc geom.MeshLocation,
	red Reduction, desc ArrayDesc, array []float64) (*Term, error) {

	t, err := newTerm(id, name, kind, loc, red)
	if err != nil {
		return nil, err
	}
	t.def = ByArray
	t.array = array
	t.arrayDesc = desc
	return t, nil
}

// SetQuadrature overrides the default (barycentric) quadrature. Only
// meaningful for analytic definitions.
func (t *Term) SetQuadrature(q QuadType) error {
	if t == nil {
		return ErrNilTerm
	}
	if q > QuadHighest {
		return fmt.Errorf("%w: term %q: quadrature %d", ErrUnsupported, t.name, q)
	}
	t.quad = q
	return nil
}

// SetReduction switches the term between primal and dual reduction. Only
// the dual-at-dual-cells <-> primal-at-vertices exchange is handled; any
// other support yields ErrReductionSwap. Variable kind and the mesh
// location are preserved.
func (t *Term) SetReduction(r Reduction) error {
	if t == nil {
		return ErrNilTerm
	}
	if t.reduction == r {
		return nil
	}
	switch {
	case r == Dual && t.support == geom.AtVertices:
		t.reduction, t.support = Dual, geom.AtDualCells
	case r == Primal && t.support == geom.AtDualCells:
		t.reduction, t.support = Primal, geom.AtVertices
	default:
		return fmt.Errorf("%w: term %q at %s", ErrReductionSwap, t.name, t.support)
	}
	return nil
}

func (t *Term) ID() int { return t.id }
func (t *Term) Name() string { return t.name }
func (t *Term) Kind() VarKind { return t.kind }
func (t *Term) Reduction() Reduction { return t.reduction }
func (t *Term) Support() geom.Support { return t.support }
func (t *Term) DefKind() DefKind { return t.def }
func (t *Term) Quadrature() QuadType { return t.quad }
func (t *Term) FullDomain() bool { return t.fullDomain }
func (t *Term) Location() geom.MeshLocation { return t.loc }
func (t *Term) Value() float64 { return t.value }
func (t *Term) Analytic() AnalyticFunc { return t.analytic }

// ReleaseAll tears down a batch of terms, dropping each owned backing
// array. Shared arrays are left to their owners. The slice entries are
// usable as zero descriptors afterwards.
func ReleaseAll(terms []*Term) {
	for _, t := range terms {
		if t == nil {
			continue
		}
		if t.arrayDesc.Owned {
			t.array = nil
		}
		t.analytic = nil
		t.loc = nil
	}
}

// LogSetup writes a structured summary of the term, in the manner of an
// equation setup report.
func (t *Term) LogSetup(log *zap.Logger, eqName string) {
	if t == nil {
		log.Info("source term", zap.String("equation", eqName), zap.Bool("empty", true))
		return
	}
	fields := []zap.Field{
		zap.String("equation", eqName),
		zap.String("name", t.name),
		zap.Stringer("kind", t.kind),
		zap.Stringer("reduction", t.reduction),
		zap.Stringer("definition", t.def),
		zap.Bool("full_domain", t.fullDomain),
	}
	if t.def == ByAnalytic {
		fields = append(fields, zap.Stringer("quadrature", t.quad))
	}
	log.Info("source term", fields...)
}
