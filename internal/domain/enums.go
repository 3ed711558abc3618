package domain

// Difficulty labels target puzzle generation & grading.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

// SolveOutcome is the three-way result of a bounded search. Indeterminate is
// a defined outcome, not an error: the search hit its exploration ceiling
// before proving anything either way.
type SolveOutcome int

const (
	Unsolvable SolveOutcome = iota
	Solvable
	Indeterminate
)

func (o SolveOutcome) String() string {
	switch o {
	case Solvable:
		return "solvable"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unsolvable"
	}
}
