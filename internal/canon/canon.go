// Package canon fingerprints puzzle states for search deduplication. Tubes
// are interchangeable containers, so two states differing only by a
// permutation of tube order are the same search node and must share a key.
package canon

import (
	"sort"
	"strings"

	"svw.info/tubesort/internal/domain"
)

// sep terminates each tube token. It is outside the color range, so keys of
// states with different tube partitions can never collide (e.g. {AB,C} vs
// {A,BC}).
const sep = byte(0)

// Key returns the canonical fingerprint of a state: each tube encoded as its
// color bytes bottom-to-top, tokens sorted lexicographically, then joined.
// Order within a tube matters; order of tubes does not.
func Key(s domain.PuzzleState) string {
	tokens := make([]string, len(s.Tubes))
	for i, t := range s.Tubes {
		b := make([]byte, len(t))
		for j, c := range t {
			b[j] = byte(c)
		}
		tokens[i] = string(b)
	}
	sort.Strings(tokens)

	var buf strings.Builder
	buf.Grow(s.UnitCount() + len(tokens))
	for _, tok := range tokens {
		buf.WriteString(tok)
		buf.WriteByte(sep)
	}
	return buf.String()
}

// Equivalent reports whether two states are the same search node, i.e. equal
// up to a permutation of tube order.
func Equivalent(a, b domain.PuzzleState) bool {
	if a.Capacity != b.Capacity || len(a.Tubes) != len(b.Tubes) {
		return false
	}
	return Key(a) == Key(b)
}
