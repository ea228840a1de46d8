// Package navigator searches lattice mazes for paths that satisfy
// security-level constraints. Plain shortest paths are rejected when they
// fall below the level's length or direction-change floors; candidates
// are enumerated in increasing length order instead, so the first
// qualifying path found is both minimal in qualifying length and
// lexicographically smallest among its peers. That determinism is what
// makes independent verification of a derivation possible.
package navigator

import (
	"errors"
	"fmt"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/maze"
)

// ErrNotFound reports that no qualifying path was discovered within the
// deadline or the bounded expansion limit. Recoverable: callers retry
// with a denser maze.
var ErrNotFound = errors.New("navigator: no qualifying path found")

// maxExpansions bounds the total search-space expansion of one
// FindSecurePath call, independent of the wall-clock deadline.
const maxExpansions = 4 << 20

// lexOrder lists moves by the lexicographic rank of the cell they lead
// to, so a depth-first enumeration emits paths in lexicographic order of
// their coordinate-tuple sequences.
var lexOrder = [6]maze.Direction{
	maze.North, maze.West, maze.Down, maze.Up, maze.East, maze.South,
}

// FindSecurePath searches g for the shortest path from entry to exit that
// satisfies the level's constraints, breaking length ties toward the
// lexicographically smallest coordinate sequence.
//
// Candidate lengths are enumerated from the true shortest distance
// upward in steps of two (the lattice is bipartite, so all entry-exit
// walks share the same length parity). Each length runs a depth-first
// enumeration pruned by exact distance-to-exit labels; the deadline and
// the expansion cap are checked at every expansion step.
//
// A deadline <= 0 falls back to the level's search budget.
func FindSecurePath(g *maze.Graph, level Level, deadline time.Duration) (*Path, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil maze", maze.ErrInvalidParameter)
	}
	if deadline <= 0 {
		deadline = level.SearchBudget
	}

	// A simple path visits each cell at most once.
	maxMoves := g.CellCount() - 1
	if level.MinLength > maxMoves {
		return nil, fmt.Errorf("%w: minimum length %d exceeds the %d-move simple-path ceiling",
			ErrNotFound, level.MinLength, maxMoves)
	}

	dist := exitDistances(g)
	shortest := dist[g.CellIndex(g.Entry())]
	if shortest < 0 {
		// Generation guarantees connectivity; kept as a guard for
		// hand-built graphs in tests.
		return nil, fmt.Errorf("%w: exit unreachable from entry", ErrNotFound)
	}

	target := shortest
	if target < level.MinLength {
		delta := level.MinLength - target
		target += delta + delta%2
	}

	st := &searchState{
		g:          g,
		dist:       dist,
		minChanges: level.MinDirectionChanges,
		deadline:   time.Now().Add(deadline),
		visited:    make([]bool, g.CellCount()),
		path:       make([]maze.Cell, 1, maxMoves+1),
	}
	entry := g.Entry()
	entryIdx := g.CellIndex(entry)
	for ; target <= maxMoves; target += 2 {
		st.visited[entryIdx] = true
		st.path = st.path[:1]
		st.path[0] = entry
		found, err := st.dfs(entry, target)
		st.visited[entryIdx] = false
		if err != nil {
			return nil, err
		}
		if found != nil {
			return found, nil
		}
	}
	return nil, fmt.Errorf("%w: search space exhausted below length %d",
		ErrNotFound, maxMoves)
}

type searchState struct {
	g          *maze.Graph
	dist       []int
	minChanges int
	deadline   time.Time
	expansions int
	visited    []bool
	path       []maze.Cell
}

// dfs extends the current path toward a complete walk of exactly target
// moves. Children are pruned by exact distance-to-exit and by length
// parity, so every surviving branch can still complete on time.
func (st *searchState) dfs(cur maze.Cell, target int) (*Path, error) {
	depth := len(st.path) - 1
	curIdx := st.g.CellIndex(cur)

	if depth == target {
		// Distance pruning guarantees cur is the exit here.
		if (&Path{cells: st.path}).DirectionChanges() >= st.minChanges {
			return (&Path{cells: st.path}).Clone(), nil
		}
		return nil, nil
	}
	if st.dist[curIdx] == 0 {
		// Reached the exit early; a simple path cannot leave and return.
		return nil, nil
	}

	for _, d := range lexOrder {
		if !st.g.HasPassage(cur, d) {
			continue
		}
		next, ok := st.g.Step(cur, d)
		if !ok {
			continue
		}
		idx := st.g.CellIndex(next)
		if st.visited[idx] {
			continue
		}
		remaining := target - depth - 1
		nd := st.dist[idx]
		if nd < 0 || nd > remaining || (remaining-nd)%2 != 0 {
			continue
		}

		st.expansions++
		if st.expansions > maxExpansions {
			return nil, fmt.Errorf("%w: expansion limit reached after %d steps",
				ErrNotFound, st.expansions)
		}
		if time.Now().After(st.deadline) {
			return nil, fmt.Errorf("%w: search deadline exceeded after %d expansions",
				ErrNotFound, st.expansions)
		}

		st.visited[idx] = true
		st.path = append(st.path, next)
		found, err := st.dfs(next, target)
		st.path = st.path[:len(st.path)-1]
		st.visited[idx] = false
		if found != nil || err != nil {
			return found, err
		}
	}
	return nil, nil
}

// exitDistances labels every cell with its exact carved-passage distance
// to the exit via breadth-first search. Unreachable cells stay -1.
func exitDistances(g *maze.Graph) []int {
	dist := make([]int, g.CellCount())
	for i := range dist {
		dist[i] = -1
	}

	exit := g.Exit()
	dist[g.CellIndex(exit)] = 0
	queue := make([]maze.Cell, 0, g.CellCount())
	queue = append(queue, exit)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curDist := dist[g.CellIndex(cur)]
		for _, next := range g.Neighbors(cur) {
			idx := g.CellIndex(next)
			if dist[idx] < 0 {
				dist[idx] = curDist + 1
				queue = append(queue, next)
			}
		}
	}
	return dist
}
