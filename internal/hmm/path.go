package hmm

import "fmt"

// PathProbability returns the joint probability of one explicit hidden
// path and obs: the start transition, every step transition and emission,
// and the end transition (1 when the model gives none).
func (m *Model[S, O]) PathProbability(path []S, obs []O) (float64, error) {
	cols, err := m.columns(obs)
	if err != nil {
		return 0, err
	}
	if len(path) != len(cols) {
		return 0, fmt.Errorf("%w: %d states for %d observations", ErrLengthMismatch, len(path), len(cols))
	}

	idx := make([]int, len(path))
	for i, s := range path {
		j, ok := m.stateIndex[s]
		if !ok {
			le := tableError(ErrUnknownState, s, nil)
			le.Index = i
			return 0, le
		}
		idx[i] = j
	}

	p := m.initial[idx[0]] * m.emission.At(idx[0], cols[0])
	for i := 1; i < len(idx); i++ {
		p = p * m.transition.At(idx[i-1], idx[i]) * m.emission.At(idx[i], cols[i])
	}
	return p * m.final[idx[len(idx)-1]], nil
}
