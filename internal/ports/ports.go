package ports

import (
	"context"
	"time"

	"svw.info/tubesort/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Result is a solver verdict. Par is meaningful only when Outcome is
// Solvable; it is then the proven minimum pour count.
type Result struct {
	Outcome domain.SolveOutcome
	Par     int
}

// Solver decides solvability of a puzzle state within a bounded search.
type Solver interface {
	Solve(ctx context.Context, s domain.PuzzleState) (Result, Stats, error)
}

// Generator creates new levels at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, seed int64, difficulty domain.Difficulty) (*domain.Level, Stats, error)
}

// Validator performs fast sanity checks on a state, e.g. one restored from
// persistence (capacity bounds, color accounting).
type Validator interface {
	Validate(ctx context.Context, s domain.PuzzleState) (ok bool, conflicts []int, err error)
}

// Hinter returns a suggested legal pour, if any exists.
type Hinter interface {
	Hint(ctx context.Context, s domain.PuzzleState) (domain.Hint, bool, error)
}

// Storage persists and retrieves levels as JSON.
type Storage interface {
	Save(ctx context.Context, l *domain.Level) error
	Load(ctx context.Context, id string) (*domain.Level, error)
	List(ctx context.Context) ([]domain.LevelMeta, error)
}
