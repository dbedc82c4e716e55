package hmm

import "gonum.org/v1/gonum/floats"

// Likelihood returns the probability of obs under the model, summed over
// every hidden path (forward algorithm).
func (m *Model[S, O]) Likelihood(obs []O) (float64, error) {
	cols, err := m.columns(obs)
	if err != nil {
		return 0, err
	}

	n := len(m.states)
	alpha := make([]float64, n)
	for s := 0; s < n; s++ {
		alpha[s] = m.initial[s] * m.emission.At(s, cols[0])
	}

	next := make([]float64, n)
	for _, o := range cols[1:] {
		for s := 0; s < n; s++ {
			e := m.emission.At(s, o)
			sum := 0.0
			for p := 0; p < n; p++ {
				sum += alpha[p] * m.transition.At(p, s) * e
			}
			next[s] = sum
		}
		alpha, next = next, alpha
	}

	return floats.Dot(alpha, m.final), nil
}
