package geom

// MeshLocation identifies the subset of cells a source term applies to.
// Implementations are supplied by the mesh layer; the two constructors
// below cover the common cases.
type MeshLocation interface {
	// FullDomain reports whether the location covers every cell.
	FullDomain() bool
	// Cells returns the cell ids of the subset. nil when FullDomain holds.
	Cells() []int
}

type wholeDomain struct{}

func (wholeDomain) FullDomain() bool { return true }
func (wholeDomain) Cells() []int { return nil }

// WholeDomain returns the location covering every cell of the mesh.
func WholeDomain() MeshLocation { return wholeDomain{} }

type cellSubset []int

func (cellSubset) FullDomain() bool { return false }
func (s cellSubset) Cells() []int { return s }

// CellSubset returns the location made of the given cell ids.
func CellSubset(ids []int) MeshLocation { return cellSubset(ids) }

// Mesh is the read-only adapter surface the whole-mesh evaluator needs.
// Implementations are owned by the mesh layer; this package only supplies
// SingleCellMesh as a trivial implementation for tests and small cases.
type Mesh interface {
	NumCells() int
	NumVertices() int

	VertexCoord(v int) Point
	CellCenter(c int) Point
	CellVolume(c int) float64

	// DualVolume is the measure of the dual cell attached to vertex v,
	// accumulated over every incident primal cell.
	DualVolume(v int) float64

	// Cell returns the geometric cache of cell c.
	Cell(c int) *CellGeometry
	// CellVertices maps the cell-local vertex numbering of Cell(c) to
	// mesh-global vertex ids.
	CellVertices(c int) []int
}

// SingleCellMesh exposes one CellGeometry as a whole mesh. The cell-local
// and mesh-global vertex numberings coincide.
type SingleCellMesh struct {
	G *CellGeometry

	verts []int
}

func NewSingleCellMesh(g *CellGeometry) *SingleCellMesh {
	m := &SingleCellMesh{G: g, verts: make([]int, g.NumVerts())}
	for v := range m.verts {
		m.verts[v] = v
	}
	return m
}

func (m *SingleCellMesh) NumCells() int { return 1 }
func (m *SingleCellMesh) NumVertices() int { return m.G.NumVerts() }
func (m *SingleCellMesh) VertexCoord(v int) Point { return m.G.Verts[v] }
func (m *SingleCellMesh) CellCenter(int) Point { return m.G.Center }
func (m *SingleCellMesh) CellVolume(int) float64 { return m.G.Volume }
func (m *SingleCellMesh) DualVolume(v int) float64 { return m.G.Weights[v] * m.G.Volume }
func (m *SingleCellMesh) Cell(int) *CellGeometry { return m.G }
func (m *SingleCellMesh) CellVertices(int) []int { return m.verts }
