// Package hint implements a minimal Hinter for stuck players. It suggests a
// legal pour, preferring ones that merge color runs; it makes no optimality
// claim.
package hint

import (
	"context"
	"fmt"

	"svw.info/tubesort/internal/domain"
	"svw.info/tubesort/internal/engine"
)

type FirstMove struct{}

func NewFirstMove() *FirstMove { return &FirstMove{} }

// Hint returns the first legal pour onto a matching non-empty tube, falling
// back to the first legal pour of any kind.
func (h *FirstMove) Hint(ctx context.Context, s domain.PuzzleState) (domain.Hint, bool, error) {
	moves := engine.ValidMoves(s)
	if len(moves) == 0 {
		return domain.Hint{}, false, nil
	}
	pick := moves[0]
	for _, mv := range moves {
		if len(s.Tubes[mv.To]) > 0 {
			pick = mv
			break
		}
	}
	msg := fmt.Sprintf("Try pouring tube %d into tube %d", pick.From+1, pick.To+1)
	return domain.Hint{Message: msg, Move: pick}, true, nil
}
