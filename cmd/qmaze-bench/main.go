package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/kdf"
	"github.com/Rallt/Quantum-maze/pkg/maze"
	"github.com/Rallt/Quantum-maze/pkg/navigator"
)

func main() {
	iterations := flag.Int("iterations", 5, "Runs per size/level combination")
	density := flag.Float64("density", 0.1, "Extra edge density")
	flag.Parse()

	fmt.Printf("🌀 Quantum Maze Pipeline Benchmark\n")
	fmt.Printf("==================================\n\n")
	fmt.Printf("Configuration:\n")
	fmt.Printf("  Iterations: %d\n", *iterations)
	fmt.Printf("  Extra Edge Density: %.2f\n\n", *density)

	master, err := kdf.NewMasterSecret(bytes.Repeat([]byte{0x42}, 32))
	if err != nil {
		log.Fatalf("Failed to create master secret: %v", err)
	}
	deriver := kdf.NewDeriver()

	sizes := []int{8, 12, 16, 24}
	levels := []navigator.Level{navigator.Low, navigator.Medium, navigator.High}

	fmt.Printf("%-6s %-8s %12s %12s %12s %8s %8s\n",
		"size", "level", "generate", "search", "derive", "length", "turns")
	fmt.Printf("%-6s %-8s %12s %12s %12s %8s %8s\n",
		"----", "-----", "--------", "------", "------", "------", "-----")

	for _, size := range sizes {
		for _, level := range levels {
			// High constraints need room; skip combinations that cannot
			// fit the length floor inside the lattice.
			if level.MinLength > size*size*size-1 {
				continue
			}

			var genTotal, searchTotal, deriveTotal time.Duration
			var pathLength, turns int
			failures := 0

			for i := 0; i < *iterations; i++ {
				seed, err := maze.RandomSeed()
				if err != nil {
					log.Fatalf("Failed to create seed: %v", err)
				}

				start := time.Now()
				g, err := maze.Generate(seed, size, *density)
				if err != nil {
					log.Fatalf("Generation failed: %v", err)
				}
				genTotal += time.Since(start)

				start = time.Now()
				path, err := navigator.FindSecurePath(g, level, 0)
				if err != nil {
					failures++
					continue
				}
				searchTotal += time.Since(start)
				pathLength = path.Length()
				turns = path.DirectionChanges()

				start = time.Now()
				key, err := deriver.Derive(path, master, uint64(i))
				if err != nil {
					log.Fatalf("Derivation failed: %v", err)
				}
				deriveTotal += time.Since(start)
				key.Zero()
			}

			ok := *iterations - failures
			if ok == 0 {
				fmt.Printf("%-6d %-8s %12s\n", size, level.Name, "all failed")
				continue
			}
			fmt.Printf("%-6d %-8s %12v %12v %12v %8d %8d\n",
				size, level.Name,
				(genTotal / time.Duration(*iterations)).Round(time.Microsecond),
				(searchTotal / time.Duration(ok)).Round(time.Microsecond),
				(deriveTotal / time.Duration(ok)).Round(time.Microsecond),
				pathLength, turns)
			if failures > 0 {
				fmt.Printf("       %-8s %d/%d searches missed the budget at base density\n",
					"", failures, *iterations)
			}
		}
	}
}
