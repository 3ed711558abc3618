package engine

import (
	"errors"
	"math/rand"
	"testing"

	"svw.info/tubesort/internal/domain"
)

const (
	cA = domain.Color(1)
	cB = domain.Color(2)
	cC = domain.Color(3)
)

func state(capacity int, tubes ...domain.Tube) domain.PuzzleState {
	return domain.PuzzleState{Capacity: capacity, Tubes: tubes}
}

func TestPourIntoEmptyMovesTopRun(t *testing.T) {
	s := state(4,
		domain.Tube{cA, cB, cA, cB},
		domain.Tube{cB, cA, cB, cA},
		domain.Tube{},
		domain.Tube{},
	)
	if !CanPour(s.Tubes[0], s.Tubes[2], s.Capacity) {
		t.Fatal("pour into empty tube must be legal")
	}
	out := Pour(s, 0, 2)
	if got := out.Tubes[0]; len(got) != 3 || got[0] != cA || got[1] != cB || got[2] != cA {
		t.Fatalf("source after pour = %v, want [A B A]", got)
	}
	if got := out.Tubes[2]; len(got) != 1 || got[0] != cB {
		t.Fatalf("destination after pour = %v, want [B]", got)
	}
	// Copy-on-write: input untouched.
	if len(s.Tubes[0]) != 4 || len(s.Tubes[2]) != 0 {
		t.Fatalf("input state mutated: %v", s.Tubes)
	}
}

func TestPourMergesFullRunUpToFreeSpace(t *testing.T) {
	s := state(4,
		domain.Tube{cA, cB, cB, cB},
		domain.Tube{cA, cA, cB},
	)
	out := Pour(s, 0, 1)
	if got := out.Tubes[0]; len(got) != 3 {
		t.Fatalf("source = %v, want two of three B units moved", got)
	}
	if got := out.Tubes[1]; len(got) != 4 || got[3] != cB {
		t.Fatalf("destination = %v, want filled to capacity with B", got)
	}
}

func TestTopRunLengthStopsAtLockedIndex(t *testing.T) {
	tube := domain.Tube{cB, cB, cB, cB}
	mask := domain.LockedMask{true, true, false, false}
	if got := TopRunLength(tube, nil); got != 4 {
		t.Fatalf("unmasked run = %d, want 4", got)
	}
	if got := TopRunLength(tube, mask); got != 2 {
		t.Fatalf("masked run = %d, want 2", got)
	}
}

func TestIsTubeCompleteRequiresFullUniformUnlocked(t *testing.T) {
	cases := []struct {
		name   string
		tube   domain.Tube
		locked domain.LockedMask
		want   bool
	}{
		{"full uniform", domain.Tube{cA, cA, cA, cA}, nil, true},
		{"short uniform", domain.Tube{cA, cA, cA}, nil, false},
		{"mixed", domain.Tube{cA, cA, cA, cB}, nil, false},
		{"locked bottom", domain.Tube{cA, cA, cA, cA}, domain.LockedMask{true, false, false, false}, false},
		{"empty", domain.Tube{}, nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsTubeComplete(tc.tube, tc.locked, 4); got != tc.want {
				t.Fatalf("IsTubeComplete = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStuckStateHasNoMoves(t *testing.T) {
	// No empty tubes, both full, mismatched tops.
	s := state(4,
		domain.Tube{cA, cA, cB, cB},
		domain.Tube{cB, cB, cA, cA},
	)
	if moves := ValidMoves(s); len(moves) != 0 {
		t.Fatalf("ValidMoves = %v, want none", moves)
	}
	if !IsStuck(s) {
		t.Fatal("IsStuck = false, want true")
	}
}

func TestCompleteLevelIsNotStuck(t *testing.T) {
	s := state(4,
		domain.Tube{cA, cA, cA, cA},
		domain.Tube{cB, cB, cB, cB},
		domain.Tube{},
	)
	if !IsLevelComplete(s) {
		t.Fatal("IsLevelComplete = false, want true")
	}
	if IsStuck(s) {
		t.Fatal("IsStuck = true on a complete level")
	}
}

func TestAttemptPourRejectsIllegalPairs(t *testing.T) {
	s := state(4,
		domain.Tube{cA, cA, cA, cA},
		domain.Tube{cB},
		domain.Tube{},
	)
	for _, mv := range []domain.Move{
		{From: 2, To: 0},  // empty source
		{From: 1, To: 0},  // destination full
		{From: 1, To: 1},  // self pour
		{From: 5, To: 0},  // out of range
		{From: 0, To: -1}, // out of range
	} {
		if _, err := AttemptPour(s, mv.From, mv.To); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("AttemptPour(%d,%d) err = %v, want ErrIllegalMove", mv.From, mv.To, err)
		}
	}
}

func TestPourMaskedLimitsRunAndRevealsTop(t *testing.T) {
	s := state(4,
		domain.Tube{cB, cB, cB},
		domain.Tube{},
	)
	masks := []domain.LockedMask{{true, true, false}, nil}
	out, newMasks := PourMasked(s, masks, 0, 1)
	if got := out.Tubes[1]; len(got) != 1 {
		t.Fatalf("masked pour moved %d units, want 1", len(got))
	}
	// The newly exposed source top is revealed.
	if m := newMasks[0]; len(m) < 2 || m[1] {
		t.Fatalf("source mask after pour = %v, want top revealed", m)
	}
}

// A mask shorter than its tube still belongs to the caller: the reveal step
// must write to a copy, never through the input slice.
func TestPourMaskedLeavesCallerMaskUntouched(t *testing.T) {
	s := state(4,
		domain.Tube{cB, cB, cB},
		domain.Tube{},
	)
	masks := []domain.LockedMask{{true}, nil}
	out, newMasks := PourMasked(s, masks, 0, 1)
	if got := out.Tubes[0]; len(got) != 1 {
		t.Fatalf("source after masked pour = %v, want one unit left", got)
	}
	if !masks[0][0] {
		t.Fatal("PourMasked mutated the caller's mask in place")
	}
	if m := newMasks[0]; len(m) != 1 || m[0] {
		t.Fatalf("returned mask = %v, want exposed top revealed", m)
	}
}

// Random playouts hold the structural invariants: lengths within capacity and
// unit conservation.
func TestInvariantsUnderRandomPlayout(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := state(4,
		domain.Tube{cA, cC, cB, cA},
		domain.Tube{cB, cA, cC, cB},
		domain.Tube{cC, cB, cA, cC},
		domain.Tube{},
		domain.Tube{},
	)
	units := s.UnitCount()
	for i := 0; i < 200; i++ {
		moves := ValidMoves(s)
		if len(moves) == 0 {
			break
		}
		mv := moves[rng.Intn(len(moves))]
		s = Pour(s, mv.From, mv.To)
		if s.UnitCount() != units {
			t.Fatalf("step %d: unit count %d, want %d", i, s.UnitCount(), units)
		}
		for j, tube := range s.Tubes {
			if len(tube) > s.Capacity {
				t.Fatalf("step %d: tube %d over capacity: %v", i, j, tube)
			}
		}
	}
}
