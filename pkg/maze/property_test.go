package maze

import (
	"bytes"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestMazeInvariants uses property-based testing to verify structural
// invariants that must hold for every generated maze
func TestMazeInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 20

	properties := gopter.NewProperties(parameters)

	genFromByte := func(b byte, size int, density float64) *Graph {
		g, err := Generate(testSeed(b), size, density)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		return g
	}

	// Property 1: generation is a pure function of its inputs
	properties.Property("generation is deterministic", prop.ForAll(
		func(b byte, size int) bool {
			a := genFromByte(b, size, 0.2)
			c := genFromByte(b, size, 0.2)
			return bytes.Equal(a.Encode(), c.Encode())
		},
		gen.UInt8(),
		gen.IntRange(MinSize, 10),
	))

	// Property 2: every maze contains at least a spanning tree
	properties.Property("edge count never below spanning tree", prop.ForAll(
		func(b byte, size int, density float64) bool {
			g := genFromByte(b, size, density)
			return g.EdgeCount() >= g.CellCount()-1
		},
		gen.UInt8(),
		gen.IntRange(MinSize, 8),
		gen.Float64Range(0.0, 1.0),
	))

	// Property 3: the exit is always reachable from the entry
	properties.Property("entry connects to exit", prop.ForAll(
		func(b byte, size int, density float64) bool {
			g := genFromByte(b, size, density)

			visited := make([]bool, g.CellCount())
			queue := []Cell{g.Entry()}
			visited[g.CellIndex(g.Entry())] = true
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				if cur == g.Exit() {
					return true
				}
				for _, nb := range g.Neighbors(cur) {
					if idx := g.CellIndex(nb); !visited[idx] {
						visited[idx] = true
						queue = append(queue, nb)
					}
				}
			}
			return false
		},
		gen.UInt8(),
		gen.IntRange(MinSize, 8),
		gen.Float64Range(0.0, 0.5),
	))

	properties.TestingRun(t)
}
