package geom

// Support locates where a set of discrete values lives on the mesh.
type Support uint8

const (
	// AtVertices: one value per primal vertex.
	AtVertices Support = iota
	// AtCells: one value per primal cell.
	AtCells
	// AtDualCells: one value per dual cell, i.e. per vertex-centered
	// control volume.
	AtDualCells
)

func (s Support) String() string {
	switch s {
	case AtVertices:
		return "vertices"
	case AtCells:
		return "cells"
	case AtDualCells:
		return "dual cells"
	}
	return "unknown"
}
