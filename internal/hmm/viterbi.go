package hmm

// Path is a decoded hidden-state sequence together with its probability.
type Path[S comparable] struct {
	States []S

	// Probability is the joint probability of States and the observations,
	// including the start and end transitions.
	Probability float64
}

// Decode returns the most probable hidden-state sequence for obs.
// The result has one state per observation and never contains the start
// or end pseudo-states.
func (m *Model[S, O]) Decode(obs []O) ([]S, error) {
	path, err := m.Viterbi(obs)
	if err != nil {
		return nil, err
	}
	return path.States, nil
}

// Viterbi runs the Viterbi algorithm over obs and returns the winning path
// with its probability.
//
// Ties go to the later state in model order, both when choosing a
// predecessor and when choosing the final state. A step where every
// candidate is zero therefore resolves to the last state rather than
// failing.
func (m *Model[S, O]) Viterbi(obs []O) (Path[S], error) {
	cols, err := m.columns(obs)
	if err != nil {
		return Path[S]{}, err
	}

	n := len(m.states)
	delta := make([]float64, n)
	for s := 0; s < n; s++ {
		delta[s] = m.initial[s] * m.emission.At(s, cols[0])
	}

	// backpointers[i][s] is the predecessor of state s at step i+1.
	backpointers := make([][]int, 0, len(cols)-1)
	next := make([]float64, n)
	for _, o := range cols[1:] {
		bp := make([]int, n)
		for s := 0; s < n; s++ {
			e := m.emission.At(s, o)
			best, arg := 0.0, 0
			for p := 0; p < n; p++ {
				if c := delta[p] * m.transition.At(p, s) * e; c >= best {
					best, arg = c, p
				}
			}
			next[s] = best
			bp[s] = arg
		}
		backpointers = append(backpointers, bp)
		delta, next = next, delta
	}

	best, last := 0.0, 0
	for s := 0; s < n; s++ {
		if c := delta[s] * m.final[s]; c >= best {
			best, last = c, s
		}
	}

	states := make([]S, len(cols))
	idx := last
	states[len(states)-1] = m.states[idx]
	for i := len(backpointers) - 1; i >= 0; i-- {
		idx = backpointers[i][idx]
		states[i] = m.states[idx]
	}

	return Path[S]{States: states, Probability: best}, nil
}
