package source

import (
	"github.com/polycell/cdoquad/geom"
	"github.com/polycell/cdoquad/quadrature"
)

// The cellwise integrators below share one contract: add the contribution
// of a single source term on a single cell into out, indexed by the
// cell-local dof numbering (vertices, then the cell dof for vertex+cell
// schemes). A nil term is a no-op so sparse dispatch tables stay cheap.
// An empty geometry or a missing output buffer is a programming defect
// and panics.

func assertCell(g *geom.CellGeometry, out []float64) {
	if g == nil || g.NumVerts() == 0 {
		panic("source: integrator called with an empty cell geometry")
	}
	if out == nil {
		panic("source: integrator called with a nil output vector")
	}
}

// DualByValue integrates a constant density over the dual-cell portions:
// out[v] += value * weight[v] * cellVolume.
func DualByValue(t *Term, g *geom.CellGeometry, _ *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	val := t.value
	for v, w := range g.Weights {
		out[v] += val * w * g.Volume
	}
}

// DualBaryAnalytic integrates an analytic density with the barycentric
// approximation: one evaluation per vertex, at the volume-weighted
// barycenter of the vertex's dual-cell portion. Exact for affine fields.
func DualBaryAnalytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	nv := g.NumVerts()
	bary := ws.bary[:nv]
	for v := range bary {
		bary[v] = geom.Point{}
	}

	// First moment of each dual portion, one half sub-tet at a time. The
	// half sub-tet next to v1 has barycenter
	// 0.25*(xf+xc) + 0.375*xv1 + 0.125*xv2 (its vertices are xv1, the
	// edge midpoint, xf and xc).
	g.ForEachSubTet(func(st geom.SubTet) {
		half := 0.5 * st.Volume
		xf := g.Faces[st.Face].Center
		xv1, xv2 := g.Verts[st.V1], g.Verts[st.V2]
		for k := 0; k < 3; k++ {
			xfc := 0.25 * (xf[k] + g.Center[k])
			bary[st.V1][k] += half * (xfc + 0.375*xv1[k] + 0.125*xv2[k])
			bary[st.V2][k] += half * (xfc + 0.375*xv2[k] + 0.125*xv1[k])
		}
	})

	for v := 0; v < nv; v++ {
		volVC := g.Volume * g.Weights[v]
		if volVC > 0 {
			bary[v] = bary[v].Scale(1 / volVC)
		}
	}

	res := ws.batchVals[:nv]
	t.analytic(ws.Time, bary, res)

	for v := 0; v < nv; v++ {
		out[v] += g.Volume * g.Weights[v] * res[v]
	}
}

// DualSubdivAnalytic integrates an analytic density with one point per
// half sub-tetrahedron (two per sub-tet, biased toward each edge
// endpoint). Same affine exactness as DualBaryAnalytic, better local
// resolution.
func DualSubdivAnalytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	pts := ws.batchPts[:2]
	res := ws.batchVals[:2]

	g.ForEachSubTet(func(st geom.SubTet) {
		half := 0.5 * st.Volume
		xf := g.Faces[st.Face].Center
		xv1, xv2 := g.Verts[st.V1], g.Verts[st.V2]
		for k := 0; k < 3; k++ {
			xfc := 0.25 * (xf[k] + g.Center[k])
			pts[0][k] = xfc + 0.375*xv1[k] + 0.125*xv2[k]
			pts[1][k] = xfc + 0.375*xv2[k] + 0.125*xv1[k]
		}
		t.analytic(ws.Time, pts, res)
		out[st.V1] += half * res[0]
		out[st.V2] += half * res[1]
	})
}

// DualQ10Analytic integrates an analytic density with a ten-point rule
// per vertex: samples at the cell center, the vertex, vertex-to-cell,
// edge, edge-to-cell, edge-to-face, face, face-to-cell and
// vertex-to-face midpoints, combined with the -1/20 (far points), 1/5
// (midpoints) and 1/10 (half-edge) weights. Exact for quadratic fields.
func DualQ10Analytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	nv, ne := g.NumVerts(), g.NumEdges()
	ana := t.analytic
	contrib := ws.contrib[:nv]

	one := ws.batchPts[:1]
	oneVal := ws.batchVals[:1]

	one[0] = g.Center
	ana(ws.Time, one, oneVal)
	valC := oneVal[0]

	resV := ws.values[:nv]
	ana(ws.Time, g.Verts, resV)

	ptsVC := ws.batchPts[:nv]
	for v := 0; v < nv; v++ {
		ptsVC[v] = g.Center.Mid(g.Verts[v])
	}
	resVC := ws.batchVals[:nv]
	ana(ws.Time, ptsVC, resVC)

	// -1/20 at the extremities, 1/5 at the midpoint.
	for v := 0; v < nv; v++ {
		valV := -0.05*(valC+resV[v]) + 0.2*resVC[v]
		contrib[v] = g.Weights[v] * g.Volume * valV
	}

	edgeVol := ws.edgeVol[:ne]
	for e := range edgeVol {
		edgeVol[e] = 0
	}
	faceVertVol := ws.faceVertVol[:nv]

	for f := range g.Faces {
		xf := g.Faces[f].Center

		for v := range faceVertVol {
			faceVertVol[v] = 0
		}

		for _, e := range g.Faces[f].Edges {
			v1, v2 := g.EdgeVerts[e][0], g.EdgeVerts[e][1]
			pefVol := geom.TetVolume(g.Verts[v1], g.Verts[v2], xf, g.Center)

			edgeVol[e] += pefVol
			faceVertVol[v1] += 0.5 * pefVol
			faceVertVol[v2] += 0.5 * pefVol

			one[0] = g.EdgeCenters[e].Mid(xf)
			ana(ws.Time, one, oneVal)

			efContrib := 0.1 * pefVol * oneVal[0]
			contrib[v1] += efContrib
			contrib[v2] += efContrib
		}

		one[0] = xf
		ana(ws.Time, one, oneVal)
		valF := -0.05 * oneVal[0]

		one[0] = xf.Mid(g.Center)
		ana(ws.Time, one, oneVal)
		valF += 0.2 * oneVal[0]

		for v := 0; v < nv; v++ {
			if faceVertVol[v] > 0 {
				one[0] = xf.Mid(g.Verts[v])
				ana(ws.Time, one, oneVal)
				contrib[v] += faceVertVol[v] * (valF + 0.2*oneVal[0])
			}
		}
	}

	// Half-edge points, batched two per edge.
	ptsEV := ws.batchPts[:2*ne]
	for e := 0; e < ne; e++ {
		xe := g.EdgeCenters[e]
		ptsEV[2*e] = g.Verts[g.EdgeVerts[e][0]].Mid(xe)
		ptsEV[2*e+1] = g.Verts[g.EdgeVerts[e][1]].Mid(xe)
	}
	valEV := ws.batchVals[:2*ne]
	ana(ws.Time, ptsEV, valEV)

	for e := 0; e < ne; e++ {
		volE := 0.1 * edgeVol[e]
		contrib[g.EdgeVerts[e][0]] += volE * valEV[2*e]
		contrib[g.EdgeVerts[e][1]] += volE * valEV[2*e+1]
	}

	// Edge centers and edge-to-cell midpoints, batched two per edge.
	ptsEC := ws.batchPts[:2*ne]
	for e := 0; e < ne; e++ {
		ptsEC[2*e] = g.EdgeCenters[e]
		ptsEC[2*e+1] = g.Center.Mid(g.EdgeCenters[e])
	}
	valEC := ws.batchVals[:2*ne]
	ana(ws.Time, ptsEC, valEC)

	for e := 0; e < ne; e++ {
		valE := -0.05*valEC[2*e] + 0.2*valEC[2*e+1]
		eContrib := 0.5 * edgeVol[e] * valE
		contrib[g.EdgeVerts[e][0]] += eContrib
		contrib[g.EdgeVerts[e][1]] += eContrib
	}

	for v := 0; v < nv; v++ {
		out[v] += contrib[v]
	}
}

// DualQ5Analytic integrates an analytic density with the five-point
// degree-3 Gauss rule on every half sub-tetrahedron. Exact for cubic
// fields; the most expensive routine here, use with care.
func DualQ5Analytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	res := ws.batchVals[:5]

	g.ForEachSubTet(func(st geom.SubTet) {
		half := 0.5 * st.Volume
		xe := g.EdgeCenters[st.Edge]
		xf := g.Faces[st.Face].Center

		for _, v := range [2]int{st.V1, st.V2} {
			pts, wts := quadrature.TetPoints5(g.Verts[v], xe, xf, g.Center, half)
			t.analytic(ws.Time, pts[:], res)
			sum := 0.0
			for p := 0; p < 5; p++ {
				sum += wts[p] * res[p]
			}
			out[v] += sum
		}
	})
}

// VertexPotentialByValue handles a constant potential at primal vertices:
// the value is broadcast to the vertices and pushed through the
// precomputed Hodge operator.
func VertexPotentialByValue(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	nv := g.NumVerts()
	h := ws.requireHodge(nv)

	eval := ws.values[:nv]
	for v := range eval {
		eval[v] = t.value
	}

	loads := ws.loads[:nv]
	h.Apply(eval, loads)
	for v := 0; v < nv; v++ {
		out[v] += loads[v]
	}
}

// VertexPotentialAnalytic handles an analytic potential at primal
// vertices: pointwise evaluation at the vertex coordinates, then the
// Hodge operator. The quadrature setting is ignored.
func VertexPotentialAnalytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	nv := g.NumVerts()
	h := ws.requireHodge(nv)

	eval := ws.values[:nv]
	t.analytic(ws.Time, g.Verts, eval)

	loads := ws.loads[:nv]
	h.Apply(eval, loads)
	for v := 0; v < nv; v++ {
		out[v] += loads[v]
	}
}

// VertexCellPotentialByValue is the vertex+cell-based variant of
// VertexPotentialByValue: one extra dof at the cell center.
func VertexCellPotentialByValue(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	n := g.NumVerts() + 1
	h := ws.requireHodge(n)

	eval := ws.values[:n]
	for i := range eval {
		eval[i] = t.value
	}

	loads := ws.loads[:n]
	h.Apply(eval, loads)
	for i := 0; i < n; i++ {
		out[i] += loads[i]
	}
}

// VertexCellPotentialAnalytic is the vertex+cell-based variant of
// VertexPotentialAnalytic: the potential is also evaluated at the cell
// center.
func VertexCellPotentialAnalytic(t *Term, g *geom.CellGeometry, ws *Workspace, out []float64) {
	if t == nil {
		return
	}
	assertCell(g, out)

	nv := g.NumVerts()
	n := nv + 1
	h := ws.requireHodge(n)

	eval := ws.values[:n]
	t.analytic(ws.Time, g.Verts, eval[:nv])

	one := ws.batchPts[:1]
	one[0] = g.Center
	t.analytic(ws.Time, one, eval[nv:])

	loads := ws.loads[:n]
	h.Apply(eval, loads)
	for i := 0; i < n; i++ {
		out[i] += loads[i]
	}
}

// ComputeCellwise accumulates the contributions of all source terms
// active on one cell into out, the cell-local load vector. out is zeroed
// first, so stale data from a previous equation never leaks through. With
// a nil mask every term applies (the full-domain fast path); otherwise
// only the terms whose bit is set in the cell's mask word run.
func ComputeCellwise(terms []*Term, g *geom.CellGeometry, masks []Mask,
	fns []CellwiseFn, flags SystemFlags, ws *Workspace, out []float64) {

	for i := range out {
		out[i] = 0
	}
	if !flags.HasSources {
		return
	}

	if masks == nil {
		for i, t := range terms {
			if fn := fns[i]; fn != nil {
				fn(t, g, ws, out)
			}
		}
		return
	}

	cellMask := masks[g.CellID]
	for i, t := range terms {
		if cellMask&(Mask(1)<<uint(i)) == 0 {
			continue
		}
		if fn := fns[i]; fn != nil {
			fn(t, g, ws, out)
		}
	}
}
