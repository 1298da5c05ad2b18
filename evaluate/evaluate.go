// Package evaluate computes whole-mesh arrays from source-term
// definitions outside the cellwise assembly loop, typically for
// initialization or visualization: potentials (point values at vertices
// or cell centers) and densities (quantities integrated over dual cells
// or cells).
package evaluate

import (
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/polycell/cdoquad/geom"
	"github.com/polycell/cdoquad/quadrature"
	"github.com/polycell/cdoquad/source"
)

var (
	// ErrNilTerm is returned when no source term is supplied.
	ErrNilTerm = errors.New("evaluate: nil source term")

	// ErrUnsupported is returned for a (support, state, definition)
	// combination with no evaluation path.
	ErrUnsupported = errors.New("evaluate: unsupported combination")
)

// State distinguishes point values from integrated quantities.
type State uint8

const (
	// Potential: a point value, located at vertices or cell centers.
	Potential State = iota
	// Density: an integrated quantity, located at dual cells or cells.
	Density
)

func (s State) String() string {
	if s == Density {
		return "density"
	}
	return "potential"
}

// DofDescriptor describes the target unknown of a whole-mesh evaluation.
type DofDescriptor struct {
	Support geom.Support
	State   State
}

// Compute evaluates one source term over the whole mesh at time tcur and
// returns one value per target entity (vertices for AtVertices and
// AtDualCells, cells for AtCells). Terms restricted to a cell subset only
// touch the entities of that subset; the rest of the array stays zero.
func Compute(dof DofDescriptor, t *source.Term, mesh geom.Mesh, tcur float64) ([]float64, error) {
	if t == nil {
		return nil, ErrNilTerm
	}

	var n int
	switch dof.Support {
	case geom.AtVertices, geom.AtDualCells:
		n = mesh.NumVertices()
	case geom.AtCells:
		n = mesh.NumCells()
	default:
		return nil, fmt.Errorf("%w: support %q", ErrUnsupported, dof.Support)
	}
	vals := make([]float64, n)

	var err error
	switch dof.State {
	case Potential:
		err = potential(dof.Support, t, mesh, tcur, vals)
	case Density:
		err = density(dof.Support, t, mesh, tcur, vals)
	default:
		err = fmt.Errorf("%w: state %d", ErrUnsupported, dof.State)
	}
	if err != nil {
		return nil, fmt.Errorf("term %q: %w", t.Name(), err)
	}
	return vals, nil
}

// targetCells lists the cells a term acts on.
func targetCells(t *source.Term, mesh geom.Mesh) []int {
	if t.FullDomain() {
		cells := make([]int, mesh.NumCells())
		for c := range cells {
			cells[c] = c
		}
		return cells
	}
	return t.Location().Cells()
}

// targetVertices tags the vertices touched by the term's cells.
func targetVertices(t *source.Term, mesh geom.Mesh) []bool {
	tagged := make([]bool, mesh.NumVertices())
	if t.FullDomain() {
		for v := range tagged {
			tagged[v] = true
		}
		return tagged
	}
	for _, c := range t.Location().Cells() {
		for _, v := range mesh.CellVertices(c) {
			tagged[v] = true
		}
	}
	return tagged
}

func potential(support geom.Support, t *source.Term, mesh geom.Mesh,
	tcur float64, vals []float64) error {

	switch t.DefKind() {
	case source.ByValue:
		if support == geom.AtCells {
			for _, c := range targetCells(t, mesh) {
				vals[c] = t.Value()
			}
			return nil
		}
		for v, in := range targetVertices(t, mesh) {
			if in {
				vals[v] = t.Value()
			}
		}
		return nil

	case source.ByAnalytic:
		ana := t.Analytic()
		one := make([]geom.Point, 1)
		if support == geom.AtCells {
			for _, c := range targetCells(t, mesh) {
				one[0] = mesh.CellCenter(c)
				ana(tcur, one, vals[c:c+1])
			}
			return nil
		}
		for v, in := range targetVertices(t, mesh) {
			if in {
				one[0] = mesh.VertexCoord(v)
				ana(tcur, one, vals[v:v+1])
			}
		}
		return nil
	}

	return fmt.Errorf("%w: %s potential %s", ErrUnsupported, t.DefKind(), support)
}

func density(support geom.Support, t *source.Term, mesh geom.Mesh,
	tcur float64, vals []float64) error {

	switch {
	case t.DefKind() == source.ByValue && support == geom.AtCells:
		for _, c := range targetCells(t, mesh) {
			vals[c] = t.Value() * mesh.CellVolume(c)
		}
		return nil

	case t.DefKind() == source.ByValue && support == geom.AtDualCells:
		if t.FullDomain() {
			for v := range vals {
				vals[v] = t.Value() * mesh.DualVolume(v)
			}
			return nil
		}
		// Restricted: only the dual-cell portions inside the subset count.
		for _, c := range t.Location().Cells() {
			g := mesh.Cell(c)
			for lv, gv := range mesh.CellVertices(c) {
				vals[gv] += t.Value() * g.Weights[lv] * g.Volume
			}
		}
		return nil

	case t.DefKind() == source.ByAnalytic && support == geom.AtCells:
		for _, c := range targetCells(t, mesh) {
			vals[c] = cellIntegral(mesh.Cell(c), t.Quadrature(), t.Analytic(), tcur)
		}
		return nil

	case t.DefKind() == source.ByAnalytic && support == geom.AtDualCells:
		return dualDensityByAnalytic(t, mesh, tcur, vals)
	}

	return fmt.Errorf("%w: %s density %s", ErrUnsupported, t.DefKind(), support)
}

// cellIntegral integrates an analytic field over one cell via the
// face/edge tessellation, with the rule matching the requested quadrature
// order.
func cellIntegral(g *geom.CellGeometry, q source.QuadType, ana source.AnalyticFunc,
	tcur float64) float64 {

	one := make([]geom.Point, 1)
	val := make([]float64, 5)
	total := 0.0

	g.ForEachSubTet(func(st geom.SubTet) {
		xf := g.Faces[st.Face].Center
		xv1, xv2 := g.Verts[st.V1], g.Verts[st.V2]

		switch q {
		case source.QuadBary, source.QuadBarySubdiv:
			for k := 0; k < 3; k++ {
				one[0][k] = 0.25 * (xv1[k] + xv2[k] + xf[k] + g.Center[k])
			}
			ana(tcur, one, val)
			total += st.Volume * val[0]

		case source.QuadHigher:
			pts, wts := quadrature.TetPoints4(xv1, xv2, xf, g.Center, st.Volume)
			ana(tcur, pts[:], val)
			for p := 0; p < 4; p++ {
				total += wts[p] * val[p]
			}

		default: // QuadHighest
			pts, wts := quadrature.TetPoints5(xv1, xv2, xf, g.Center, st.Volume)
			ana(tcur, pts[:], val)
			for p := 0; p < 5; p++ {
				total += wts[p] * val[p]
			}
		}
	})

	return total
}

// dualDensityByAnalytic runs the cellwise dual-reduction integrator over
// the term's cells and scatters the per-vertex contributions into the
// mesh-wide array. Cells are independent, so the loop is split over
// workers; each worker accumulates into a private partial array that is
// merged after the group finishes.
func dualDensityByAnalytic(t *source.Term, mesh geom.Mesh, tcur float64,
	vals []float64) error {

	integrate, err := source.DualIntegrator(t.Quadrature())
	if err != nil {
		return err
	}

	cells := targetCells(t, mesh)
	if len(cells) == 0 {
		return nil
	}

	maxV, maxE := 0, 0
	for _, c := range cells {
		g := mesh.Cell(c)
		if g.NumVerts() > maxV {
			maxV = g.NumVerts()
		}
		if g.NumEdges() > maxE {
			maxE = g.NumEdges()
		}
	}

	nWorkers := runtime.GOMAXPROCS(0)
	if nWorkers > len(cells) {
		nWorkers = len(cells)
	}
	chunk := (len(cells) + nWorkers - 1) / nWorkers

	partials := make([][]float64, nWorkers)
	var eg errgroup.Group
	for w := 0; w < nWorkers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > len(cells) {
			hi = len(cells)
		}
		mine := cells[lo:hi]
		part := make([]float64, len(vals))
		partials[w] = part

		eg.Go(func() error {
			ws := source.NewWorkspace(maxV, maxE)
			ws.Time = tcur
			local := make([]float64, maxV)

			for _, c := range mine {
				g := mesh.Cell(c)
				out := local[:g.NumVerts()]
				for i := range out {
					out[i] = 0
				}
				integrate(t, g, ws, out)
				for lv, gv := range mesh.CellVertices(c) {
					part[gv] += out[lv]
				}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for _, part := range partials {
		for v, pv := range part {
			vals[v] += pv
		}
	}
	return nil
}
