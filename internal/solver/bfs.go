// Package solver decides puzzle solvability by breadth-first search over the
// pour graph, deduplicated with canonical state keys and bounded by an
// explored-state ceiling.
package solver

import (
	"context"
	"time"

	"svw.info/tubesort/internal/canon"
	"svw.info/tubesort/internal/domain"
	"svw.info/tubesort/internal/engine"
	"svw.info/tubesort/internal/ports"
)

// DefaultCeiling bounds the visited-state count. Realistic puzzles (up to 8
// filled tubes) stay well inside it; anything larger comes back Indeterminate.
const DefaultCeiling = 200_000

// BFSSolver runs a level-synchronous BFS from the given state. The first
// completed state found is at minimum depth, which is the puzzle's par.
type BFSSolver struct {
	Ceiling int

	// disablePruning turns off the empty-destination pruning rules; only
	// differential tests use it. Pruning never changes the verdict, only
	// the search cost.
	disablePruning bool
}

func NewBFSSolver() *BFSSolver { return &BFSSolver{Ceiling: DefaultCeiling} }

// Solve explores breadth-first until a completed state, an empty frontier, or
// the visited ceiling. The ceiling check happens once per depth level, so the
// visited set can overshoot by at most one level's worth of states.
func (b *BFSSolver) Solve(ctx context.Context, s domain.PuzzleState) (ports.Result, ports.Stats, error) {
	start := time.Now()
	nodes := 0

	if engine.IsLevelComplete(s) {
		return ports.Result{Outcome: domain.Solvable, Par: 0}, ports.Stats{Duration: time.Since(start)}, nil
	}

	ceiling := b.Ceiling
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	visited := map[string]struct{}{canon.Key(s): {}}
	frontier := []domain.PuzzleState{s}

	for depth := 1; len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return ports.Result{Outcome: domain.Indeterminate}, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		var next []domain.PuzzleState
		for _, cur := range frontier {
			for _, mv := range b.candidates(cur) {
				nodes++
				child := engine.Pour(cur, mv.From, mv.To)
				if engine.IsLevelComplete(child) {
					return ports.Result{Outcome: domain.Solvable, Par: depth},
						ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
				}
				key := canon.Key(child)
				if _, seen := visited[key]; seen {
					continue
				}
				visited[key] = struct{}{}
				next = append(next, child)
			}
		}
		if len(visited) > ceiling {
			return ports.Result{Outcome: domain.Indeterminate},
				ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}
		frontier = next
	}

	return ports.Result{Outcome: domain.Unsolvable}, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

// candidates enumerates the pours worth exploring from a state. On top of
// base legality (non-empty, non-complete source; CanPour) it applies two
// prunes for empty destinations:
//
//  1. an entirely single-color source never pours into an empty tube; that
//     move only relocates a uniform tube;
//  2. all simultaneously-empty tubes are interchangeable, so only the first
//     empty index is ever a destination.
func (b *BFSSolver) candidates(s domain.PuzzleState) []domain.Move {
	firstEmpty := -1
	for i, t := range s.Tubes {
		if len(t) == 0 {
			firstEmpty = i
			break
		}
	}
	var moves []domain.Move
	for from, src := range s.Tubes {
		if len(src) == 0 || engine.IsTubeComplete(src, nil, s.Capacity) {
			continue
		}
		uniform := isUniform(src)
		for to, dst := range s.Tubes {
			if from == to || !engine.CanPour(src, dst, s.Capacity) {
				continue
			}
			if len(dst) == 0 && !b.disablePruning {
				if uniform || to != firstEmpty {
					continue
				}
			}
			moves = append(moves, domain.Move{From: from, To: to})
		}
	}
	return moves
}

func isUniform(t domain.Tube) bool {
	for _, c := range t {
		if c != t[0] {
			return false
		}
	}
	return true
}
