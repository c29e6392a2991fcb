package runtime

// SetSteps forces the step counter so tests can reach its upper bound.
func SetSteps(e *Engine, n uint64) {
	e.steps = n
}
