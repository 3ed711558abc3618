package usecase

import (
	"context"
	"errors"

	"svw.info/tubesort/internal/domain"
	"svw.info/tubesort/internal/engine"
	"svw.info/tubesort/internal/ports"
)

type Service struct {
	Solver    ports.Solver
	Generator ports.Generator
	Validator ports.Validator
	Hinter    ports.Hinter
	Storage   ports.Storage
}

func NewService(s ports.Solver, g ports.Generator, v ports.Validator, h ports.Hinter, st ports.Storage) *Service {
	return &Service{Solver: s, Generator: g, Validator: v, Hinter: h, Storage: st}
}

var errNotConfigured = errors.New("usecase dependency not configured")

func (u *Service) Solve(ctx context.Context, s domain.PuzzleState) (ports.Result, ports.Stats, error) {
	if u.Solver == nil {
		return ports.Result{}, ports.Stats{}, errNotConfigured
	}
	return u.Solver.Solve(ctx, s)
}

func (u *Service) Generate(ctx context.Context, seed int64, d domain.Difficulty) (*domain.Level, ports.Stats, error) {
	if u.Generator == nil {
		return nil, ports.Stats{}, errNotConfigured
	}
	return u.Generator.Generate(ctx, seed, d)
}

// Pour applies a player move, rejecting illegal pairs with
// engine.ErrIllegalMove. The engine is pure, so no port indirection here.
func (u *Service) Pour(ctx context.Context, s domain.PuzzleState, from, to int) (domain.PuzzleState, error) {
	return engine.AttemptPour(s, from, to)
}

// Moves reports the legal pours plus the terminal flags the UI cares about.
func (u *Service) Moves(s domain.PuzzleState) (moves []domain.Move, complete, stuck bool) {
	moves = engine.ValidMoves(s)
	complete = engine.IsLevelComplete(s)
	stuck = !complete && len(moves) == 0
	return moves, complete, stuck
}

func (u *Service) Validate(ctx context.Context, s domain.PuzzleState) (bool, []int, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, s)
}

func (u *Service) Hint(ctx context.Context, s domain.PuzzleState) (domain.Hint, bool, error) {
	if u.Hinter == nil {
		return domain.Hint{}, false, errNotConfigured
	}
	return u.Hinter.Hint(ctx, s)
}

// Persistence
func (u *Service) Save(ctx context.Context, l *domain.Level) error {
	if u.Storage == nil {
		return errNotConfigured
	}
	return u.Storage.Save(ctx, l)
}
func (u *Service) Load(ctx context.Context, id string) (*domain.Level, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.Load(ctx, id)
}
func (u *Service) List(ctx context.Context) ([]domain.LevelMeta, error) {
	if u.Storage == nil {
		return nil, errNotConfigured
	}
	return u.Storage.List(ctx)
}
