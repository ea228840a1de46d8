package navigator

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Rallt/Quantum-maze/pkg/maze"
)

// TestSearchInvariants uses property-based testing to verify every found
// path is a valid qualifying walk
func TestSearchInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 15

	properties := gopter.NewProperties(parameters)

	properties.Property("found paths are simple qualifying walks", prop.ForAll(
		func(b byte, size int, density float64) bool {
			g, err := maze.Generate(testSeed(b), size, density)
			if err != nil {
				return false
			}
			p, err := FindSecurePath(g, Low, 0)
			if err != nil {
				// Low constraints are always satisfiable on these sizes.
				return false
			}

			cells := p.Cells()
			if cells[0] != g.Entry() || cells[len(cells)-1] != g.Exit() {
				return false
			}
			seen := make(map[maze.Cell]bool, len(cells))
			for i, c := range cells {
				if seen[c] {
					return false
				}
				seen[c] = true
				if i > 0 {
					ok := false
					for _, nb := range g.Neighbors(cells[i-1]) {
						if nb == c {
							ok = true
							break
						}
					}
					if !ok {
						return false
					}
				}
			}
			return p.Length() >= Low.MinLength &&
				p.DirectionChanges() >= Low.MinDirectionChanges
		},
		gen.UInt8(),
		gen.IntRange(5, 8),
		gen.Float64Range(0.0, 0.4),
	))

	properties.TestingRun(t)
}
