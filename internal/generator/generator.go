// Package generator produces levels by rejection sampling: shuffle a color
// pool into tubes, filter degenerate layouts, then let the solver accept or
// reject the candidate under the tier's profile.
package generator

import (
	"context"
	"math/rand"
	"time"

	"svw.info/tubesort/internal/domain"
	"svw.info/tubesort/internal/engine"
	"svw.info/tubesort/internal/ports"
	"svw.info/tubesort/internal/solver"
	"svw.info/tubesort/internal/tiers"
)

// TubeGenerator creates levels for a difficulty tier. Each Generate call is
// self-contained: its own seeded RNG and its own solver instance, so
// concurrent calls share nothing.
type TubeGenerator struct {
	Tiers *tiers.Table

	// NewSolver builds the verifier for one candidate with the tier's
	// visited-state ceiling. Swappable for tests.
	NewSolver func(ceiling int) ports.Solver
}

// NewTubeGenerator wires a generator over the given tier table.
func NewTubeGenerator(table *tiers.Table) *TubeGenerator {
	return &TubeGenerator{
		Tiers: table,
		NewSolver: func(ceiling int) ports.Solver {
			s := solver.NewBFSSolver()
			s.Ceiling = ceiling
			return s
		},
	}
}

// NewPuzzle distributes a uniformly shuffled pool of colors*tubesPerColor
// full tubes worth of units into tubes of exactly capacity units each, then
// appends emptyTubes empty ones. Usable standalone for tests; Generate layers
// the accept/reject loop on top.
func NewPuzzle(rng *rand.Rand, colors, tubesPerColor, emptyTubes, capacity int) domain.PuzzleState {
	filled := colors * tubesPerColor
	pool := make([]domain.Color, 0, filled*capacity)
	for c := 1; c <= colors; c++ {
		for i := 0; i < tubesPerColor*capacity; i++ {
			pool = append(pool, domain.Color(c))
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	tubes := make([]domain.Tube, 0, filled+emptyTubes)
	for i := 0; i < filled; i++ {
		t := make(domain.Tube, capacity)
		copy(t, pool[i*capacity:(i+1)*capacity])
		tubes = append(tubes, t)
	}
	for i := 0; i < emptyTubes; i++ {
		tubes = append(tubes, domain.Tube{})
	}
	return domain.PuzzleState{Capacity: capacity, Tubes: tubes}
}

// Generate samples candidates until one passes the tier's filters, recording
// exact par when the solver proves it and an estimate otherwise. It never
// fails outright: when the retry budget runs out, the last candidate is
// accepted with an estimated par.
func (g *TubeGenerator) Generate(ctx context.Context, seed int64, diff domain.Difficulty) (*domain.Level, ports.Stats, error) {
	start := time.Now()
	p := g.Tiers.For(diff)
	rng := rand.New(rand.NewSource(seed))
	nodes := 0

	estimate := solver.EstimatePar(p.FilledTubes(), p.Capacity)

	// Created lazily: tiers past the feasible threshold never solve.
	var sv ports.Solver

	var last domain.PuzzleState
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		state := NewPuzzle(rng, p.Colors, p.TubesPerColor, p.EmptyTubes, p.Capacity)
		last = state
		if isDegenerate(state) {
			continue
		}

		// Exact verification is cost-prohibitive past the feasible
		// filled-tube threshold; estimate instead of solving.
		if p.FilledTubes() > p.MaxSolvableTubes {
			return g.accept(rng, state, p, seed, diff, estimate, false),
				ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}

		if sv == nil {
			sv = g.NewSolver(p.SolverCeiling)
		}
		res, st, err := sv.Solve(ctx, state)
		nodes += st.Nodes
		if err != nil {
			return nil, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		switch res.Outcome {
		case domain.Indeterminate:
			// Unsolvability is unproven; rejecting here would bias
			// generation time unacceptably.
			return g.accept(rng, state, p, seed, diff, estimate, false),
				ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		case domain.Unsolvable:
			continue
		case domain.Solvable:
			if res.Par < p.MinPar {
				continue // trivially easy
			}
			return g.accept(rng, state, p, seed, diff, res.Par, true),
				ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
		}
	}

	// Retry budget exhausted: ship the last candidate rather than no level.
	if len(last.Tubes) == 0 {
		last = NewPuzzle(rng, p.Colors, p.TubesPerColor, p.EmptyTubes, p.Capacity)
	}
	return g.accept(rng, last, p, seed, diff, estimate, false),
		ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

func (g *TubeGenerator) accept(rng *rand.Rand, state domain.PuzzleState, p tiers.Params, seed int64, diff domain.Difficulty, par int, exact bool) *domain.Level {
	return &domain.Level{
		Seed:       seed,
		Difficulty: diff,
		State:      state,
		Locked:     lockSegments(rng, state, p.LockedFraction),
		Par:        par,
		ParExact:   exact,
		ColorCount: p.Colors,
		CreatedAt:  time.Now().UnixNano(),
	}
}

// isDegenerate rejects layouts that need no solver call: already complete,
// or holding a pre-solved uniform tube that trivializes difficulty.
func isDegenerate(s domain.PuzzleState) bool {
	if engine.IsLevelComplete(s) {
		return true
	}
	for _, t := range s.Tubes {
		if len(t) == 0 {
			continue
		}
		uniform := true
		for _, c := range t {
			if c != t[0] {
				uniform = false
				break
			}
		}
		if uniform {
			return true
		}
	}
	return false
}

// lockSegments hides everything below the top of a fraction of filled tubes.
// Applied only after acceptance, so it can never alter solvability; the
// solver always saw true colors.
func lockSegments(rng *rand.Rand, s domain.PuzzleState, fraction float64) []domain.LockedMask {
	if fraction <= 0 {
		return nil
	}
	masks := make([]domain.LockedMask, len(s.Tubes))
	any := false
	for i, t := range s.Tubes {
		if len(t) < 2 || rng.Float64() >= fraction {
			continue
		}
		m := make(domain.LockedMask, len(t))
		for j := 0; j < len(t)-1; j++ {
			m[j] = true
		}
		masks[i] = m
		any = true
	}
	if !any {
		return nil
	}
	return masks
}
