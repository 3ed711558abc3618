package solver

// EstimatePar approximates par for puzzles the exact search cannot verify,
// as a linear function of filled-tube count and capacity. Deliberately on
// the tight side of observed optimal lines, so the estimate is not trivially
// beatable.
func EstimatePar(filledTubes, capacity int) int {
	if filledTubes <= 0 {
		return 0
	}
	return filledTubes * (capacity - 1)
}
