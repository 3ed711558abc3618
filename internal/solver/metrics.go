package solver

import (
	"context"
	"time"

	"svw.info/tubesort/internal/canon"
	"svw.info/tubesort/internal/domain"
	"svw.info/tubesort/internal/engine"
	"svw.info/tubesort/internal/ports"
)

// Metrics summarizes the bounded reachable set of a puzzle, for offline
// difficulty calibration. This mode keeps exploring past the first solution.
type Metrics struct {
	Result    ports.Result
	States    int // distinct states explored (initial state included)
	Edges     int // pruned legal transitions considered
	DeadEnds  int // stuck states: no legal pour, not solved
	MaxDepth  int
	Branching float64 // Edges / States
	DeadEnd   float64 // DeadEnds / States
}

// SolveMetrics explores the full reachable set under the same pruning and
// ceiling rules as Solve, recording branching and dead-end statistics.
// Not intended for runtime generation; use Solve there.
func (b *BFSSolver) SolveMetrics(ctx context.Context, s domain.PuzzleState) (Metrics, ports.Stats, error) {
	start := time.Now()
	nodes := 0
	ceiling := b.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	m := Metrics{States: 1, Result: ports.Result{Outcome: domain.Unsolvable}}
	if engine.IsLevelComplete(s) {
		m.Result = ports.Result{Outcome: domain.Solvable, Par: 0}
	}
	if engine.IsStuck(s) {
		m.DeadEnds++
	}

	visited := map[string]struct{}{canon.Key(s): {}}
	frontier := []domain.PuzzleState{s}

	for depth := 1; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return m, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		var next []domain.PuzzleState
		for _, cur := range frontier {
			for _, mv := range b.candidates(cur) {
				nodes++
				m.Edges++
				child := engine.Pour(cur, mv.From, mv.To)
				key := canon.Key(child)
				if _, seen := visited[key]; seen {
					continue
				}
				visited[key] = struct{}{}
				m.States++
				if depth > m.MaxDepth {
					m.MaxDepth = depth
				}
				if engine.IsLevelComplete(child) {
					if m.Result.Outcome != domain.Solvable {
						m.Result = ports.Result{Outcome: domain.Solvable, Par: depth}
					}
					continue // no pours leave a completed state
				}
				if engine.IsStuck(child) {
					m.DeadEnds++
					continue
				}
				next = append(next, child)
			}
		}
		if len(visited) > ceiling {
			if m.Result.Outcome != domain.Solvable {
				m.Result = ports.Result{Outcome: domain.Indeterminate}
			}
			break
		}
		frontier = next
	}

	if m.States > 0 {
		m.Branching = float64(m.Edges) / float64(m.States)
		m.DeadEnd = float64(m.DeadEnds) / float64(m.States)
	}
	return m, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}
