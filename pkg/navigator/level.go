package navigator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rallt/Quantum-maze/pkg/maze"
)

// Level maps a named security level to the constraints a path must meet
// before it is accepted as key material, plus the default time budget
// granted to the search. Immutable configuration value.
type Level struct {
	Name                string
	MinLength           int // minimum moves (edges) on the path
	MinDirectionChanges int
	SearchBudget        time.Duration
}

var (
	// Low accepts short paths and suits frequent rotation with small mazes.
	Low = Level{Name: "low", MinLength: 8, MinDirectionChanges: 2, SearchBudget: time.Second}
	// Medium is the default production level.
	Medium = Level{Name: "medium", MinLength: 24, MinDirectionChanges: 6, SearchBudget: 2 * time.Second}
	// High demands long, turn-heavy paths and needs larger mazes to satisfy.
	High = Level{Name: "high", MinLength: 48, MinDirectionChanges: 12, SearchBudget: 5 * time.Second}
)

// ParseLevel resolves a configured level name.
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return Level{}, fmt.Errorf("%w: unknown security level %q",
			maze.ErrInvalidParameter, name)
	}
}

func (l Level) String() string {
	return l.Name
}
