package geom

import "fmt"

// Face holds the per-face slice of a cellwise geometric cache: the face
// center and the cell-local ids of the edges bounding the face.
type Face struct {
	Center Point
	Edges  []int
}

// CellGeometry is the read-only geometric cache for one polyhedral cell.
// All connectivity is cell-local: vertex, edge and face ids index the
// slices below, not any mesh-wide numbering. A CellGeometry is valid for
// the duration of one cellwise evaluation and is never retained.
type CellGeometry struct {
	CellID int

	Verts   []Point   // vertex coordinates
	Weights []float64 // dual-cell volume fraction per vertex, sums to 1

	EdgeVerts   [][2]int // edge -> its two cell-local vertices
	EdgeCenters []Point

	Faces []Face

	Center Point
	Volume float64
}

func (g *CellGeometry) NumVerts() int { return len(g.Verts) }
func (g *CellGeometry) NumEdges() int { return len(g.EdgeVerts) }
func (g *CellGeometry) NumFaces() int { return len(g.Faces) }

// SubTet is one element of the tessellation of a polyhedral cell into
// tetrahedra. Each (face, edge) incidence yields the tetrahedron
// {xv1, xv2, face center, cell center}; the half nearest V1 and the half
// nearest V2 (each of volume Volume/2) belong to the dual cells of V1 and
// V2 respectively.
type SubTet struct {
	Face, Edge int
	V1, V2     int
	Volume     float64
}

// ForEachSubTet walks the face/edge tessellation of the cell, calling fn
// once per (face, edge) incidence. The traversal order is deterministic:
// faces in order, edges in face order. Restartable: each call walks the
// full tessellation again.
func (g *CellGeometry) ForEachSubTet(fn func(SubTet)) {
	for f := range g.Faces {
		xf := g.Faces[f].Center
		for _, e := range g.Faces[f].Edges {
			v1, v2 := g.EdgeVerts[e][0], g.EdgeVerts[e][1]
			vol := TetVolume(g.Verts[v1], g.Verts[v2], xf, g.Center)
			fn(SubTet{Face: f, Edge: e, V1: v1, V2: v2, Volume: vol})
		}
	}
}

// NewCellGeometry builds the geometric cache of one polyhedral cell from
// its vertex coordinates and its faces given as vertex loops. Edges,
// centers, the cell volume and the dual vertex weights are derived from
// the face/edge tessellation, so that the weights are exactly consistent
// with ForEachSubTet (they sum to 1 by construction).
func NewCellGeometry(cellID int, verts []Point, faceLoops [][]int) (*CellGeometry, error) {
	if len(verts) < 4 {
		return nil, fmt.Errorf("geom: cell %d has %d vertices, need at least 4", cellID, len(verts))
	}
	if len(faceLoops) < 4 {
		return nil, fmt.Errorf("geom: cell %d has %d faces, need at least 4", cellID, len(faceLoops))
	}

	g := &CellGeometry{
		CellID: cellID,
		Verts:  verts,
	}

	// Cell center: isobarycenter of the vertices.
	for _, x := range verts {
		g.Center = g.Center.Add(x)
	}
	g.Center = g.Center.Scale(1.0 / float64(len(verts)))

	// Derive the edge set from the face loops.
	edgeID := make(map[[2]int]int)
	for f, loop := range faceLoops {
		if len(loop) < 3 {
			return nil, fmt.Errorf("geom: cell %d face %d has %d vertices, need at least 3",
				cellID, f, len(loop))
		}
		face := Face{}
		for i, va := range loop {
			vb := loop[(i+1)%len(loop)]
			if va < 0 || va >= len(verts) || vb < 0 || vb >= len(verts) {
				return nil, fmt.Errorf("geom: cell %d face %d references vertex out of range",
					cellID, f)
			}
			key := [2]int{va, vb}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			e, ok := edgeID[key]
			if !ok {
				e = len(g.EdgeVerts)
				edgeID[key] = e
				g.EdgeVerts = append(g.EdgeVerts, key)
				g.EdgeCenters = append(g.EdgeCenters, verts[key[0]].Mid(verts[key[1]]))
			}
			face.Edges = append(face.Edges, e)
			face.Center = face.Center.Add(verts[va])
		}
		face.Center = face.Center.Scale(1.0 / float64(len(loop)))
		g.Faces = append(g.Faces, face)
	}

	// Volume and dual weights from the tessellation.
	g.Weights = make([]float64, len(verts))
	g.ForEachSubTet(func(t SubTet) {
		g.Volume += t.Volume
		g.Weights[t.V1] += 0.5 * t.Volume
		g.Weights[t.V2] += 0.5 * t.Volume
	})
	if g.Volume <= 0 {
		return nil, fmt.Errorf("geom: cell %d has non-positive volume %g", cellID, g.Volume)
	}
	for v := range g.Weights {
		g.Weights[v] /= g.Volume
	}

	return g, nil
}
