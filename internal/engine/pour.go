// Package engine implements the pour rules: legality, execution, completion
// and deadlock checks. All functions are pure; Pour returns a fresh state and
// never mutates its input.
package engine

import (
	"errors"

	"svw.info/tubesort/internal/domain"
)

// ErrIllegalMove is returned by AttemptPour for any pour CanPour rejects.
// It carries no detail: callers decide UI affordances with CanPour or
// ValidMoves before pouring.
var ErrIllegalMove = errors.New("engine: illegal move")

// TopColor returns the color at the top of the tube, or false if it is empty.
func TopColor(t domain.Tube) (domain.Color, bool) {
	if len(t) == 0 {
		return 0, false
	}
	return t[len(t)-1], true
}

// TopRunLength counts consecutive equal colors at the top of the tube.
// A nil mask means nothing is hidden. With a mask, the run stops at the first
// locked index scanning downward: the player cannot drag liquid they cannot
// see.
func TopRunLength(t domain.Tube, locked domain.LockedMask) int {
	if len(t) == 0 {
		return 0
	}
	top := t[len(t)-1]
	n := 0
	for i := len(t) - 1; i >= 0; i-- {
		if i < len(locked) && locked[i] {
			break
		}
		if t[i] != top {
			break
		}
		n++
	}
	return n
}

// CanPour reports whether pouring src into dst is legal: src non-empty, dst
// below capacity, and dst either empty or matching src's top color.
func CanPour(src, dst domain.Tube, capacity int) bool {
	top, ok := TopColor(src)
	if !ok {
		return false
	}
	if len(dst) >= capacity {
		return false
	}
	if len(dst) == 0 {
		return true
	}
	return dst[len(dst)-1] == top
}

// Pour moves the top run of s.Tubes[from] into s.Tubes[to], transferring
// min(run length, free space) units, and returns the resulting state.
// Uninvolved tubes are shared by reference with the input; they are treated
// as immutable everywhere, so sharing is safe.
//
// The pair must be legal: callers check CanPour first (or use AttemptPour).
// Pour panics on an illegal pair rather than corrupting state.
func Pour(s domain.PuzzleState, from, to int) domain.PuzzleState {
	return pour(s, from, to, nil)
}

// PourMasked is Pour with the player's locked masks applied: the transferred
// run is limited to what the masks reveal. It returns updated masks alongside
// the state: the source mask is truncated and a newly exposed top, if locked,
// is revealed.
func PourMasked(s domain.PuzzleState, masks []domain.LockedMask, from, to int) (domain.PuzzleState, []domain.LockedMask) {
	var srcMask domain.LockedMask
	if from < len(masks) {
		srcMask = masks[from]
	}
	out := pour(s, from, to, srcMask)

	newMasks := make([]domain.LockedMask, len(masks))
	copy(newMasks, masks)
	if from < len(newMasks) && len(newMasks[from]) > 0 {
		n := len(out.Tubes[from])
		m := newMasks[from]
		if n < len(m) {
			m = m[:n]
		}
		// Always copy before the reveal write: the caller's mask stays
		// untouched like every other input.
		m = append(domain.LockedMask{}, m...)
		if n > 0 && n-1 < len(m) {
			m[n-1] = false
		}
		newMasks[from] = m
	}
	return out, newMasks
}

func pour(s domain.PuzzleState, from, to int, srcMask domain.LockedMask) domain.PuzzleState {
	src, dst := s.Tubes[from], s.Tubes[to]
	if from == to || !CanPour(src, dst, s.Capacity) {
		panic("engine: illegal pour, caller must check CanPour")
	}
	color := src[len(src)-1]
	count := TopRunLength(src, srcMask)
	if free := s.Capacity - len(dst); count > free {
		count = free
	}

	tubes := make([]domain.Tube, len(s.Tubes))
	copy(tubes, s.Tubes)

	newSrc := make(domain.Tube, len(src)-count)
	copy(newSrc, src[:len(src)-count])
	newDst := make(domain.Tube, 0, len(dst)+count)
	newDst = append(newDst, dst...)
	for i := 0; i < count; i++ {
		newDst = append(newDst, color)
	}
	tubes[from] = newSrc
	tubes[to] = newDst
	return domain.PuzzleState{Capacity: s.Capacity, Tubes: tubes}
}

// AttemptPour is the checked form of Pour for callers that did not pre-check:
// it returns ErrIllegalMove instead of panicking.
func AttemptPour(s domain.PuzzleState, from, to int) (domain.PuzzleState, error) {
	if from == to || from < 0 || to < 0 || from >= len(s.Tubes) || to >= len(s.Tubes) {
		return domain.PuzzleState{}, ErrIllegalMove
	}
	if !CanPour(s.Tubes[from], s.Tubes[to], s.Capacity) {
		return domain.PuzzleState{}, ErrIllegalMove
	}
	return Pour(s, from, to), nil
}

// IsTubeComplete reports whether the tube is at capacity, single-colored and
// fully revealed. A full tube that still conceals a locked position is not
// complete.
func IsTubeComplete(t domain.Tube, locked domain.LockedMask, capacity int) bool {
	if len(t) != capacity {
		return false
	}
	for i, c := range t {
		if c != t[0] {
			return false
		}
		if i < len(locked) && locked[i] {
			return false
		}
	}
	return true
}

// IsLevelComplete reports whether every tube is either empty or complete.
func IsLevelComplete(s domain.PuzzleState) bool {
	for _, t := range s.Tubes {
		if len(t) != 0 && !IsTubeComplete(t, nil, s.Capacity) {
			return false
		}
	}
	return true
}

// ValidMoves enumerates every legal pour: from != to, source non-empty and
// not already complete, CanPour true. Order is deterministic: ascending from,
// then ascending to.
func ValidMoves(s domain.PuzzleState) []domain.Move {
	var moves []domain.Move
	for from, src := range s.Tubes {
		if len(src) == 0 || IsTubeComplete(src, nil, s.Capacity) {
			continue
		}
		for to, dst := range s.Tubes {
			if from == to {
				continue
			}
			if CanPour(src, dst, s.Capacity) {
				moves = append(moves, domain.Move{From: from, To: to})
			}
		}
	}
	return moves
}

// IsStuck reports a dead end: the level is not complete and no legal pour
// exists.
func IsStuck(s domain.PuzzleState) bool {
	return !IsLevelComplete(s) && len(ValidMoves(s)) == 0
}
