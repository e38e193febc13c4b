package maze

// CellState classifies one grid cell.
type CellState uint8

const (
	Wall CellState = iota
	Open
)

// Cell is an integer coordinate on the maze plane. X indexes columns, Z rows,
// matching the world's XZ ground plane.
type Cell struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Supported maze dimensions. Sizes outside this range are normalized by
// Generate, never rejected at runtime.
const (
	MinSize = 11
	MaxSize = 51
)

// Grid is the maze's topological truth: a rectangular field of Wall/Open
// cells plus the designated start and exit cells. A Grid is immutable once
// generated; a new level replaces it wholesale.
type Grid struct {
	width, height int
	cells         [][]CellState // indexed [z][x]
	start, exit   Cell
	seed          int64
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Start returns the carved entry cell, always (1,1).
func (g *Grid) Start() Cell { return g.start }

// Exit returns the carved exit cell, always (width-2, height-2).
func (g *Grid) Exit() Cell { return g.exit }

// Seed returns the seed the grid was generated from.
func (g *Grid) Seed() int64 { return g.seed }

// InBounds reports whether the cell lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.width && c.Z >= 0 && c.Z < g.height
}

// CellAt returns the state at (x,z). Out-of-bounds coordinates read as Wall,
// which keeps neighbor scans free of bounds bookkeeping.
func (g *Grid) CellAt(x, z int) CellState {
	if x < 0 || x >= g.width || z < 0 || z >= g.height {
		return Wall
	}
	return g.cells[z][x]
}

// IsOpen reports whether the cell is carved.
func (g *Grid) IsOpen(c Cell) bool {
	return g.CellAt(c.X, c.Z) == Open
}

// Rows returns a deep copy of the cell field, row by row. Callers may hand
// the copy to serializers without aliasing the grid.
func (g *Grid) Rows() [][]CellState {
	rows := make([][]CellState, g.height)
	for z := range g.cells {
		rows[z] = make([]CellState, g.width)
		copy(rows[z], g.cells[z])
	}
	return rows
}

// OpenCells lists every carved cell in row-major order.
func (g *Grid) OpenCells() []Cell {
	var cells []Cell
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			if g.cells[z][x] == Open {
				cells = append(cells, Cell{X: x, Z: z})
			}
		}
	}
	return cells
}

// WallCells lists every wall cell in row-major order.
func (g *Grid) WallCells() []Cell {
	var cells []Cell
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			if g.cells[z][x] == Wall {
				cells = append(cells, Cell{X: x, Z: z})
			}
		}
	}
	return cells
}

// TorchCells deterministically picks wall cells that border at least one open
// cell, taking every spacing-th candidate in row-major order. The selection
// is decorative data for the rendering layer; the core attaches no behavior
// to it.
func (g *Grid) TorchCells(spacing int) []Cell {
	if spacing < 1 {
		spacing = 1
	}
	var torches []Cell
	count := 0
	for z := 0; z < g.height; z++ {
		for x := 0; x < g.width; x++ {
			if g.cells[z][x] != Wall {
				continue
			}
			if g.CellAt(x+1, z) != Open && g.CellAt(x-1, z) != Open &&
				g.CellAt(x, z+1) != Open && g.CellAt(x, z-1) != Open {
				continue
			}
			if count%spacing == 0 {
				torches = append(torches, Cell{X: x, Z: z})
			}
			count++
		}
	}
	return torches
}
