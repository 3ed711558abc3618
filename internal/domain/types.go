package domain

import (
	"encoding/json"
	"fmt"
)

// MaxColors is the size of the color alphabet the encoding supports.
const MaxColors = 16

// Color identifies one liquid color. Valid colors start at 1; zero is never
// stored in a tube.
type Color uint8

// Tube is an ordered stack of colors, bottom at index 0, top at the last
// index. Its length never exceeds the puzzle's capacity.
type Tube []Color

// Clone returns an independent copy of the tube.
func (t Tube) Clone() Tube {
	out := make(Tube, len(t))
	copy(out, t)
	return out
}

// MarshalJSON encodes the tube as a plain array of color numbers. Without
// this, encoding/json would base64-encode the uint8-kinded slice and the
// persisted form would not be a readable list of color tokens.
func (t Tube) MarshalJSON() ([]byte, error) {
	ints := make([]int, len(t))
	for i, c := range t {
		ints[i] = int(c)
	}
	return json.Marshal(ints)
}

func (t *Tube) UnmarshalJSON(b []byte) error {
	var ints []int
	if err := json.Unmarshal(b, &ints); err != nil {
		return err
	}
	out := make(Tube, len(ints))
	for i, v := range ints {
		if v < 0 || v > MaxColors {
			return fmt.Errorf("color %d out of range [0,%d]", v, MaxColors)
		}
		out[i] = Color(v)
	}
	*t = out
	return nil
}

// LockedMask parallels a Tube's indices; true hides that position from the
// player. Locking is presentation-only and never visible to the solver.
type LockedMask []bool

// Move identifies a pour from one tube index to another. The amount moved is
// derived from the state, never stored.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// PuzzleState holds all tubes of one puzzle plus the shared capacity.
// Tube order is stable and meaningful to the UI; search-level equivalence
// under tube permutation lives in the canon package, not here.
type PuzzleState struct {
	Capacity int    `json:"capacity"`
	Tubes    []Tube `json:"tubes"`
}

// Clone returns a deep copy of the state.
func (s PuzzleState) Clone() PuzzleState {
	tubes := make([]Tube, len(s.Tubes))
	for i, t := range s.Tubes {
		tubes[i] = t.Clone()
	}
	return PuzzleState{Capacity: s.Capacity, Tubes: tubes}
}

// UnitCount returns the total number of liquid units across all tubes.
func (s PuzzleState) UnitCount() int {
	n := 0
	for _, t := range s.Tubes {
		n += len(t)
	}
	return n
}

// Hint describes a suggested pour for the UI. It is a legal move, not a
// claim about the optimal line.
type Hint struct {
	Message string `json:"message,omitempty"`
	Move    Move   `json:"move"`
}

// Level is a generated puzzle with its metadata, immutable after creation.
type Level struct {
	ID         string       `json:"id,omitempty"`
	Seed       int64        `json:"seed,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty"`
	State      PuzzleState  `json:"state"`
	Locked     []LockedMask `json:"locked,omitempty"`
	Par        int          `json:"par"`
	ParExact   bool         `json:"parExact"`
	ColorCount int          `json:"colorCount"`
	CreatedAt  int64        `json:"createdAt,omitempty"`
	// Optional user metadata
	Name string `json:"name,omitempty"`
}

// LevelMeta is a lightweight listing entry.
type LevelMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Par        int        `json:"par"`
	CreatedAt  int64      `json:"createdAt"`
}
