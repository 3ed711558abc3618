package storage

import (
	"context"
	"errors"
	"os"
	"testing"

	"svw.info/tubesort/internal/domain"
)

func sampleLevel(d domain.Difficulty) *domain.Level {
	return &domain.Level{
		Seed:       42,
		Difficulty: d,
		State: domain.PuzzleState{Capacity: 4, Tubes: []domain.Tube{
			{1, 2, 1, 2}, {2, 1, 2, 1}, {}, {},
		}},
		Par:        6,
		ParExact:   true,
		ColorCount: 2,
		CreatedAt:  1700000000,
		Name:       "roundtrip",
	}
}

func TestSaveAssignsIDAndRoundTrips(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	l := sampleLevel(domain.Hard)
	if err := s.Save(ctx, l); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if l.ID == "" {
		t.Fatal("Save left ID empty")
	}

	got, err := s.Load(ctx, l.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Par != l.Par || got.ParExact != l.ParExact || got.ColorCount != l.ColorCount {
		t.Fatalf("metadata mismatch: got %+v", got)
	}
	if len(got.State.Tubes) != len(l.State.Tubes) || got.State.Capacity != l.State.Capacity {
		t.Fatalf("state shape mismatch: got %+v", got.State)
	}
	for i, tube := range l.State.Tubes {
		if len(got.State.Tubes[i]) != len(tube) {
			t.Fatalf("tube %d mismatch: %v vs %v", i, got.State.Tubes[i], tube)
		}
		for j, c := range tube {
			if got.State.Tubes[i][j] != c {
				t.Fatalf("tube %d unit %d mismatch", i, j)
			}
		}
	}
}

func TestLoadMissingIDReturnsNotExist(t *testing.T) {
	s := NewFS(t.TempDir())
	if _, err := s.Load(context.Background(), "nope"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestListSpansDifficultyBuckets(t *testing.T) {
	s := NewFS(t.TempDir())
	ctx := context.Background()

	for _, d := range []domain.Difficulty{domain.Easy, domain.Expert} {
		if err := s.Save(ctx, sampleLevel(d)); err != nil {
			t.Fatalf("Save(%v) failed: %v", d, err)
		}
	}
	metas, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("List returned %d entries, want 2", len(metas))
	}
	for _, m := range metas {
		if m.ID == "" || m.Par != 6 {
			t.Fatalf("bad meta entry: %+v", m)
		}
	}
}
