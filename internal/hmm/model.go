package hmm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Definition is the caller-assembled description of a model.
//
// Transition rows are keyed by source state (Start or one of States) and
// columns by target state (one of States or End). Emission rows are keyed
// by state and columns by observation. Rows are not required to sum to 1.
type Definition[S, O comparable] struct {
	Start S
	End   S

	// States lists the ordinary states. The order fixes how ties are
	// broken during decoding.
	States []S

	Transition map[S]map[S]float64
	Emission   map[S]map[O]float64
}

// Model is a compiled, read-only Hidden Markov Model.
type Model[S, O comparable] struct {
	start, end S
	states     []S
	stateIndex map[S]int
	obsIndex   map[O]int

	// initial[s] is the probability of Start -> states[s].
	initial []float64
	// final[s] is the probability of states[s] -> End, 1 when not given.
	final []float64
	// transition.At(p, s) is the probability of states[p] -> states[s].
	transition *mat.Dense
	// emission.At(s, o) is the probability of states[s] emitting the
	// observation in column o.
	emission *mat.Dense
}

// New validates def and compiles it into a Model.
//
// Every ordinary state needs a start transition, a transition to every
// ordinary state, and an emission for every observation that any state
// can emit. Transitions into End are optional.
func New[S, O comparable](def Definition[S, O]) (*Model[S, O], error) {
	n := len(def.States)
	if n == 0 {
		return nil, ErrNoStates
	}
	if def.Start == def.End {
		return nil, tableError(ErrPseudoState, def.Start, nil)
	}

	m := &Model[S, O]{
		start:      def.Start,
		end:        def.End,
		states:     make([]S, n),
		stateIndex: make(map[S]int, n),
		obsIndex:   make(map[O]int),
		initial:    make([]float64, n),
		final:      make([]float64, n),
		transition: mat.NewDense(n, n, nil),
	}
	copy(m.states, def.States)

	for i, s := range m.states {
		if s == def.Start || s == def.End {
			return nil, tableError(ErrPseudoState, s, nil)
		}
		if _, dup := m.stateIndex[s]; dup {
			return nil, tableError(ErrDuplicateState, s, nil)
		}
		m.stateIndex[s] = i
	}

	if err := m.compileTransitions(def.Transition); err != nil {
		return nil, err
	}
	if err := m.compileEmissions(def.Emission); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Model[S, O]) compileTransitions(table map[S]map[S]float64) error {
	for from := range table {
		if _, known := m.stateIndex[from]; !known && from != m.start {
			return tableError(ErrUnknownState, from, nil)
		}
	}

	startRow := table[m.start]
	for s, to := range m.states {
		p, ok := startRow[to]
		if !ok {
			return tableError(ErrMissingTransition, m.start, to)
		}
		if err := checkProbability(p, m.start, to); err != nil {
			return err
		}
		m.initial[s] = p
	}

	for from, fromState := range m.states {
		row := table[fromState]
		for key := range row {
			if _, known := m.stateIndex[key]; !known && key != m.end {
				return tableError(ErrUnknownState, fromState, key)
			}
		}
		for to, toState := range m.states {
			p, ok := row[toState]
			if !ok {
				return tableError(ErrMissingTransition, fromState, toState)
			}
			if err := checkProbability(p, fromState, toState); err != nil {
				return err
			}
			m.transition.Set(from, to, p)
		}

		m.final[from] = 1
		if p, ok := row[m.end]; ok {
			if err := checkProbability(p, fromState, m.end); err != nil {
				return err
			}
			m.final[from] = p
		}
	}
	return nil
}

func (m *Model[S, O]) compileEmissions(table map[S]map[O]float64) error {
	// Pseudo-states emit nothing.
	for state := range table {
		if _, known := m.stateIndex[state]; !known {
			return tableError(ErrUnknownState, state, nil)
		}
	}

	// The alphabet is every observation any state emits.
	for _, s := range m.states {
		for o := range table[s] {
			if _, ok := m.obsIndex[o]; !ok {
				m.obsIndex[o] = len(m.obsIndex)
			}
		}
	}
	if len(m.obsIndex) == 0 {
		return fmt.Errorf("%w: no state emits any observation", ErrMissingEmission)
	}

	m.emission = mat.NewDense(len(m.states), len(m.obsIndex), nil)
	for s, state := range m.states {
		row := table[state]
		for o, col := range m.obsIndex {
			p, ok := row[o]
			if !ok {
				return tableError(ErrMissingEmission, state, o)
			}
			if err := checkProbability(p, state, o); err != nil {
				return err
			}
			m.emission.Set(s, col, p)
		}
	}
	return nil
}

func checkProbability(p float64, from, to any) error {
	if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		le := tableError(ErrInvalidProbability, from, to)
		le.Err = fmt.Errorf("%w %v", ErrInvalidProbability, p)
		return le
	}
	return nil
}

// States returns a copy of the ordinary states in model order.
func (m *Model[S, O]) States() []S {
	out := make([]S, len(m.states))
	copy(out, m.states)
	return out
}

// Start returns the start pseudo-state.
func (m *Model[S, O]) Start() S { return m.start }

// End returns the end pseudo-state.
func (m *Model[S, O]) End() S { return m.end }

// NumObservations returns the size of the observation alphabet.
func (m *Model[S, O]) NumObservations() int { return len(m.obsIndex) }

// columns maps an observation sequence onto emission columns.
func (m *Model[S, O]) columns(obs []O) ([]int, error) {
	if len(obs) == 0 {
		return nil, ErrEmptySequence
	}
	cols := make([]int, len(obs))
	for i, o := range obs {
		c, ok := m.obsIndex[o]
		if !ok {
			le := tableError(ErrUnknownObservation, nil, o)
			le.Index = i
			return nil, le
		}
		cols[i] = c
	}
	return cols, nil
}
