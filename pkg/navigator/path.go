package navigator

import (
	"github.com/Rallt/Quantum-maze/pkg/maze"
)

// Path is an ordered walk through a maze from its entry cell to its exit
// cell. Paths produced by FindSecurePath are always simple: no cell is
// visited twice, so repeated-cell padding can never inflate the length
// without adding structure.
//
// A path is consumed exactly once by key derivation and should not be
// retained afterward.
type Path struct {
	cells []maze.Cell
}

// NewPath wraps an ordered cell sequence. The sequence is used as-is;
// callers own validation of adjacency.
func NewPath(cells []maze.Cell) *Path {
	return &Path{cells: cells}
}

// Cells returns the ordered cell sequence backing the path.
func (p *Path) Cells() []maze.Cell {
	return p.cells
}

// Length returns the number of moves (edges) on the path.
func (p *Path) Length() int {
	if len(p.cells) == 0 {
		return 0
	}
	return len(p.cells) - 1
}

// Start returns the first cell of the path.
func (p *Path) Start() maze.Cell {
	return p.cells[0]
}

// End returns the last cell of the path.
func (p *Path) End() maze.Cell {
	return p.cells[len(p.cells)-1]
}

// Directions renders the path as a string of direction letters
// (N/S/E/W/U/D), one per move.
func (p *Path) Directions() string {
	if len(p.cells) < 2 {
		return ""
	}
	out := make([]byte, 0, len(p.cells)-1)
	for i := 1; i < len(p.cells); i++ {
		d, ok := directionBetween(p.cells[i-1], p.cells[i])
		if !ok {
			out = append(out, '?')
			continue
		}
		out = append(out, d.Letter())
	}
	return string(out)
}

// DirectionChanges counts the moves whose direction differs from the
// previous move. The first move never counts as a change.
func (p *Path) DirectionChanges() int {
	if len(p.cells) < 3 {
		return 0
	}
	changes := 0
	prev, _ := directionBetween(p.cells[0], p.cells[1])
	for i := 2; i < len(p.cells); i++ {
		d, _ := directionBetween(p.cells[i-1], p.cells[i])
		if d != prev {
			changes++
			prev = d
		}
	}
	return changes
}

// Clone returns an independent copy of the path.
func (p *Path) Clone() *Path {
	cells := make([]maze.Cell, len(p.cells))
	copy(cells, p.cells)
	return &Path{cells: cells}
}

// directionBetween resolves the axis move from a to b. Returns false when
// the cells are not axis-adjacent.
func directionBetween(a, b maze.Cell) (maze.Direction, bool) {
	dx := int(b.X) - int(a.X)
	dy := int(b.Y) - int(a.Y)
	dz := int(b.Z) - int(a.Z)
	switch {
	case dx == -1 && dy == 0 && dz == 0:
		return maze.North, true
	case dx == 1 && dy == 0 && dz == 0:
		return maze.South, true
	case dx == 0 && dy == 1 && dz == 0:
		return maze.East, true
	case dx == 0 && dy == -1 && dz == 0:
		return maze.West, true
	case dx == 0 && dy == 0 && dz == 1:
		return maze.Up, true
	case dx == 0 && dy == 0 && dz == -1:
		return maze.Down, true
	}
	return 0, false
}
