package maze

import (
	"encoding/hex"
	"math/bits"

	"golang.org/x/crypto/sha3"

	"github.com/Rallt/Quantum-maze/pkg/pools"
)

// Direction identifies one of the six axis moves in the lattice.
type Direction uint8

const (
	North Direction = iota // -x
	South                  // +x
	East                   // +y
	West                   // -y
	Up                     // +z
	Down                   // -z

	numDirections
)

var directionVectors = [numDirections][3]int{
	North: {-1, 0, 0},
	South: {1, 0, 0},
	East:  {0, 1, 0},
	West:  {0, -1, 0},
	Up:    {0, 0, 1},
	Down:  {0, 0, -1},
}

var directionLetters = [numDirections]byte{'N', 'S', 'E', 'W', 'U', 'D'}

var opposites = [numDirections]Direction{
	North: South,
	South: North,
	East:  West,
	West:  East,
	Up:    Down,
	Down:  Up,
}

// Vector returns the unit move for the direction.
func (d Direction) Vector() (dx, dy, dz int) {
	v := directionVectors[d]
	return v[0], v[1], v[2]
}

// Letter returns the single-letter encoding of the direction.
func (d Direction) Letter() byte {
	return directionLetters[d]
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

func (d Direction) String() string {
	return string(directionLetters[d])
}

// Cell addresses one lattice position. Coordinates are always within
// [0, size) for the graph that produced the cell.
type Cell struct {
	X, Y, Z uint16
}

// Less orders cells lexicographically by (X, Y, Z).
func (c Cell) Less(o Cell) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

// Graph is a connected 3D lattice maze. Each cell carries a 6-bit passage
// mask, one bit per direction; a set bit means the wall toward that
// neighbour has been carved. Masks are kept symmetric on both sides of
// every passage.
type Graph struct {
	size       int
	cells      []uint8
	extraEdges int
}

// Size returns the lattice dimension.
func (g *Graph) Size() int {
	return g.size
}

// CellCount returns size^3.
func (g *Graph) CellCount() int {
	return len(g.cells)
}

// Entry returns the fixed entry cell (0,0,0).
func (g *Graph) Entry() Cell {
	return Cell{}
}

// Exit returns the fixed exit cell (size-1,size-1,size-1).
func (g *Graph) Exit() Cell {
	s := uint16(g.size - 1)
	return Cell{X: s, Y: s, Z: s}
}

// ExtraEdges returns the number of non-tree passages added on top of the
// spanning carve.
func (g *Graph) ExtraEdges() int {
	return g.extraEdges
}

func (g *Graph) index(x, y, z int) int {
	return (x*g.size+y)*g.size + z
}

// CellIndex returns the dense index of a cell, usable as a key into
// per-cell scratch slices sized CellCount().
func (g *Graph) CellIndex(c Cell) int {
	return g.index(int(c.X), int(c.Y), int(c.Z))
}

func (g *Graph) contains(x, y, z int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size && z >= 0 && z < g.size
}

// HasPassage reports whether the wall from c toward d has been carved.
func (g *Graph) HasPassage(c Cell, d Direction) bool {
	return g.cells[g.CellIndex(c)]&(1<<d) != 0
}

// Step returns the neighbouring cell in direction d, and false when the
// move would leave the lattice.
func (g *Graph) Step(c Cell, d Direction) (Cell, bool) {
	dx, dy, dz := d.Vector()
	x, y, z := int(c.X)+dx, int(c.Y)+dy, int(c.Z)+dz
	if !g.contains(x, y, z) {
		return Cell{}, false
	}
	return Cell{X: uint16(x), Y: uint16(y), Z: uint16(z)}, true
}

// Neighbors returns the cells reachable from c through carved passages,
// in direction order.
func (g *Graph) Neighbors(c Cell) []Cell {
	mask := g.cells[g.CellIndex(c)]
	out := make([]Cell, 0, bits.OnesCount8(mask))
	for d := Direction(0); d < numDirections; d++ {
		if mask&(1<<d) == 0 {
			continue
		}
		if n, ok := g.Step(c, d); ok {
			out = append(out, n)
		}
	}
	return out
}

// EdgeCount returns the number of carved passages.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, mask := range g.cells {
		total += bits.OnesCount8(mask)
	}
	return total / 2
}

// carve opens the passage from c toward d on both sides.
func (g *Graph) carve(c Cell, d Direction) {
	n, ok := g.Step(c, d)
	if !ok {
		return
	}
	g.cells[g.CellIndex(c)] |= 1 << d
	g.cells[g.CellIndex(n)] |= 1 << d.Opposite()
}

// Encode serializes the maze with a fixed-width layout: a 4-byte
// big-endian size followed by one mask byte per cell in scan order.
func (g *Graph) Encode() []byte {
	b := pools.NewBufferBuilder(4 + len(g.cells))
	b.WriteUint32BE(uint32(g.size))
	b.Write(g.cells)
	return b.Bytes()
}

// Fingerprint returns a 16-byte SHA3-512 prefix over the encoded maze.
// It identifies a generation cycle in logs and audit records and binds
// associated data without exposing the seed.
func (g *Graph) Fingerprint() []byte {
	sum := sha3.Sum512(g.Encode())
	return sum[:16]
}

// FingerprintHex returns Fingerprint as a hex string.
func (g *Graph) FingerprintHex() string {
	return hex.EncodeToString(g.Fingerprint())
}
