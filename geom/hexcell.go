package geom

// BoxCell builds the geometric cache of an axis-aligned hexahedral cell
// with one corner at origin and edge lengths dx, dy, dz. Intended for
// tests and examples; real meshes come from an external adapter.
func BoxCell(cellID int, origin Point, dx, dy, dz float64) *CellGeometry {
	o := origin
	verts := []Point{
		{o[0], o[1], o[2]},
		{o[0] + dx, o[1], o[2]},
		{o[0] + dx, o[1] + dy, o[2]},
		{o[0], o[1] + dy, o[2]},
		{o[0], o[1], o[2] + dz},
		{o[0] + dx, o[1], o[2] + dz},
		{o[0] + dx, o[1] + dy, o[2] + dz},
		{o[0], o[1] + dy, o[2] + dz},
	}
	faces := [][]int{
		{0, 3, 2, 1}, // z = z0
		{4, 5, 6, 7}, // z = z0+dz
		{0, 1, 5, 4}, // y = y0
		{1, 2, 6, 5}, // x = x0+dx
		{2, 3, 7, 6}, // y = y0+dy
		{3, 0, 4, 7}, // x = x0
	}
	g, err := NewCellGeometry(cellID, verts, faces)
	if err != nil {
		panic(err) // hard-coded connectivity cannot fail
	}
	return g
}

// UnitHexCell is the unit cube [0,1]^3 as a single cell: volume 1, eight
// vertices with dual weight 1/8 each.
func UnitHexCell() *CellGeometry {
	return BoxCell(0, Point{0, 0, 0}, 1, 1, 1)
}
