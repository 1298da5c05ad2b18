package source

import (
	"fmt"

	"github.com/polycell/cdoquad/geom"
	"github.com/polycell/cdoquad/hodge"
)

// Workspace holds the per-thread scratch buffers the cellwise integrators
// work in, sized once to the largest cell and reused across cells. Every
// integrator both reads and overwrites the scratch slices during its own
// call, so concurrent evaluations of distinct cells must each use their
// own Workspace. Descriptors and the dispatch table may be shared.
//
// The buffers are deliberately separate per quantity; nothing here relies
// on overwrite ordering.
type Workspace struct {
	// Time is the current physical time handed to analytic functions.
	// Set by the caller before each evaluation pass.
	Time float64

	// Hodge is the precomputed cellwise Hodge operator required by the
	// primal potential integrators (flagged by SystemFlags.NeedsHodge).
	Hodge *hodge.Operator

	values      []float64    // pointwise evaluations, one per dof
	loads       []float64    // Hodge operator output, one per dof
	contrib     []float64    // per-vertex accumulation
	edgeVol     []float64    // dual sub-volume attached to each edge
	faceVertVol []float64    // per-face dual sub-volume attached to each vertex
	bary        []geom.Point // per-vertex dual-portion barycenters
	batchPts    []geom.Point // batched analytic evaluation points
	batchVals   []float64    // batched analytic evaluation results
}

// NewWorkspace allocates scratch buffers for cells with at most maxVerts
// vertices and maxEdges edges.
func NewWorkspace(maxVerts, maxEdges int) *Workspace {
	nDof := maxVerts + 1 // vertex+cell schemes carry one extra dof
	nBatch := 2 * maxEdges
	if nDof > nBatch {
		nBatch = nDof
	}
	if nBatch < 5 {
		nBatch = 5 // room for one Gauss point set
	}
	return &Workspace{
		values:      make([]float64, nDof),
		loads:       make([]float64, nDof),
		contrib:     make([]float64, nDof),
		edgeVol:     make([]float64, maxEdges),
		faceVertVol: make([]float64, maxVerts),
		bary:        make([]geom.Point, maxVerts),
		batchPts:    make([]geom.Point, nBatch),
		batchVals:   make([]float64, nBatch),
	}
}

// Fits reports whether the workspace can handle a cell of the given size.
func (ws *Workspace) Fits(g *geom.CellGeometry) bool {
	return g.NumVerts()+1 <= len(ws.values) && g.NumEdges() <= len(ws.edgeVol)
}

func (ws *Workspace) requireHodge(n int) *hodge.Operator {
	if ws.Hodge == nil {
		panic("source: primal potential integrator requires a precomputed Hodge operator")
	}
	if ws.Hodge.Size() != n {
		panic(fmt.Sprintf("source: Hodge operator acts on %d dofs, cell has %d",
			ws.Hodge.Size(), n))
	}
	return ws.Hodge
}
