// Package validator sanity-checks puzzle states, mainly ones restored from
// persistence, without re-running generation or the solver.
package validator

import (
	"context"

	"svw.info/tubesort/internal/domain"
)

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate checks the structural invariants every reachable state satisfies:
// tube lengths within capacity, colors inside the alphabet, and each color's
// total unit count a multiple of capacity (pours conserve units, so totals
// never drift off full-tube multiples). Conflicting tube indices are
// reported for the UI.
func (v *FastValidator) Validate(ctx context.Context, s domain.PuzzleState) (bool, []int, error) {
	conf := make([]int, 0, 4)
	if s.Capacity < 2 || len(s.Tubes) == 0 {
		return false, conf, nil
	}
	var totals [domain.MaxColors + 1]int
	for i, t := range s.Tubes {
		if len(t) > s.Capacity {
			conf = append(conf, i)
			continue
		}
		for _, c := range t {
			if c == 0 || int(c) > domain.MaxColors {
				conf = append(conf, i)
				break
			}
			totals[c]++
		}
	}
	if len(conf) > 0 {
		return false, conf, nil
	}
	for c := 1; c <= domain.MaxColors; c++ {
		if totals[c]%s.Capacity != 0 {
			// Point at every tube holding the unbalanced color.
			for i, t := range s.Tubes {
				for _, tc := range t {
					if int(tc) == c {
						conf = append(conf, i)
						break
					}
				}
			}
			return false, conf, nil
		}
	}
	return true, nil, nil
}
