// Package maze generates deterministic 3D lattice mazes used as the
// structural entropy source for key derivation. Identical inputs always
// produce bit-identical graphs; the generator never consults the clock,
// goroutine scheduling, or any ambient entropy source.
package maze

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"golang.org/x/crypto/sha3"
)

// ErrInvalidParameter reports a construction parameter outside its
// documented range. It is never retried internally.
var ErrInvalidParameter = errors.New("maze: invalid parameter")

const (
	// MinSize is the smallest supported lattice dimension.
	MinSize = 4
	// MaxSize bounds the lattice so size^3 cells stay cheaply addressable.
	MaxSize = 64
)

const generateDomain = "qmaze/generate/v1"

// Generate builds a connected lattice maze from the seed. A randomized
// depth-first carve over all size^3 cells guarantees connectivity, then
// extra non-tree passages are opened with probability extraEdgeDensity
// per remaining adjacent pair to raise path-choice entropy.
//
// Pure function of its inputs; the same (seed, size, density) triple
// always yields the same graph.
func Generate(seed Seed, size int, extraEdgeDensity float64) (*Graph, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: maze size %d outside [%d, %d]",
			ErrInvalidParameter, size, MinSize, MaxSize)
	}
	if extraEdgeDensity < 0.0 || extraEdgeDensity > 1.0 ||
		math.IsNaN(extraEdgeDensity) {
		return nil, fmt.Errorf("%w: extra edge density %v outside [0.0, 1.0]",
			ErrInvalidParameter, extraEdgeDensity)
	}

	g := &Graph{
		size:  size,
		cells: make([]uint8, size*size*size),
	}
	stream := newCarveStream(seed, size, extraEdgeDensity)
	g.carveSpanningTree(stream)
	g.addExtraEdges(stream, extraEdgeDensity)
	return g, nil
}

// carveSpanningTree runs an iterative randomized depth-first carve
// starting at the entry cell. Every cell is visited exactly once, so the
// resulting passage set forms a spanning tree of the full lattice.
func (g *Graph) carveSpanningTree(stream *carveStream) {
	visited := make([]bool, len(g.cells))
	stack := make([]Cell, 0, len(g.cells))

	start := g.Entry()
	visited[g.CellIndex(start)] = true
	stack = append(stack, start)

	var open [numDirections]Direction
	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		n := 0
		for d := Direction(0); d < numDirections; d++ {
			next, ok := g.Step(cur, d)
			if ok && !visited[g.CellIndex(next)] {
				open[n] = d
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := open[stream.intn(n)]
		g.carve(cur, d)
		next, _ := g.Step(cur, d)
		visited[g.CellIndex(next)] = true
		stack = append(stack, next)
	}
}

// addExtraEdges opens additional passages between adjacent cells left
// unconnected by the spanning carve. Pairs are scanned in fixed index
// order through the positive directions only, so each pair is considered
// exactly once and the stream consumption stays reproducible.
func (g *Graph) addExtraEdges(stream *carveStream, density float64) {
	if density == 0.0 {
		return
	}
	positive := [3]Direction{South, East, Up}
	for x := 0; x < g.size; x++ {
		for y := 0; y < g.size; y++ {
			for z := 0; z < g.size; z++ {
				cur := Cell{X: uint16(x), Y: uint16(y), Z: uint16(z)}
				for _, d := range positive {
					if _, ok := g.Step(cur, d); !ok {
						continue
					}
					if g.HasPassage(cur, d) {
						continue
					}
					if stream.float64() < density {
						g.carve(cur, d)
						g.extraEdges++
					}
				}
			}
		}
	}
}

// carveStream is the deterministic pseudo-random byte stream driving a
// single generation cycle. It is a SHAKE256 XOF keyed by the seed and
// the generation parameters under a fixed domain separator.
type carveStream struct {
	xof sha3.ShakeHash
	buf [8]byte
}

func newCarveStream(seed Seed, size int, density float64) *carveStream {
	xof := sha3.NewShake256()
	xof.Write([]byte(generateDomain))
	xof.Write(seed[:])

	var params [12]byte
	binary.BigEndian.PutUint32(params[0:4], uint32(size))
	binary.BigEndian.PutUint64(params[4:12], math.Float64bits(density))
	xof.Write(params[:])

	return &carveStream{xof: xof}
}

func (s *carveStream) uint64() uint64 {
	s.xof.Read(s.buf[:])
	return binary.BigEndian.Uint64(s.buf[:])
}

// intn returns a uniform value in [0, n) using rejection sampling so the
// carve has no modulo bias.
func (s *carveStream) intn(n int) int {
	bound := uint64(n)
	limit := math.MaxUint64 - math.MaxUint64%bound
	for {
		v := s.uint64()
		if v < limit {
			return int(v % bound)
		}
	}
}

// float64 returns a uniform value in [0.0, 1.0) with 53 bits of precision.
func (s *carveStream) float64() float64 {
	return float64(s.uint64()>>11) / (1 << 53)
}
