// Package weather provides the two-state HOT/COLD reference model, the
// parser that turns digit strings into observations and the labels of its
// states.
package weather

import (
	"errors"
	"fmt"

	"github.com/SyedDaiam9101/hmm-service/internal/hmm"
)

// Name identifies the model in caches, metrics and logs.
const Name = "weather"

// State is a hidden weather state.
type State string

const (
	Start State = "START"
	Hot   State = "HOT"
	Cold  State = "COLD"
	End   State = "END"
)

// Observation is the number of ice creams eaten on a day.
type Observation int

const (
	One Observation = iota
	Two
	Three
)

var observationNames = [...]string{"ONE", "TWO", "THREE"}

func (o Observation) String() string {
	if o < 0 || int(o) >= len(observationNames) {
		return fmt.Sprintf("Observation(%d)", int(o))
	}
	return observationNames[o]
}

// DefaultSequences are decoded when no input is given.
var DefaultSequences = []string{"331122313", "331123312"}

// ErrInvalidDigit is returned for input characters outside 1..3.
var ErrInvalidDigit = errors.New("invalid observation digit")

// Definition returns the reference model parameters.
func Definition() hmm.Definition[State, Observation] {
	return hmm.Definition[State, Observation]{
		Start:  Start,
		End:    End,
		States: []State{Hot, Cold},
		Transition: map[State]map[State]float64{
			Start: {Hot: 0.8, Cold: 0.2},
			Hot:   {Hot: 0.7, Cold: 0.3, End: 1.0},
			Cold:  {Hot: 0.4, Cold: 0.6, End: 1.0},
		},
		Emission: map[State]map[Observation]float64{
			Hot:  {One: 0.2, Two: 0.4, Three: 0.4},
			Cold: {One: 0.5, Two: 0.4, Three: 0.1},
		},
	}
}

// New compiles the reference model.
func New() (*hmm.Model[State, Observation], error) {
	return hmm.New(Definition())
}

// ParseObservations converts a string of digits 1..3 into observations;
// digit d becomes the observation with index d-1.
func ParseObservations(digits string) ([]Observation, error) {
	if digits == "" {
		return nil, hmm.ErrEmptySequence
	}
	obs := make([]Observation, 0, len(digits))
	for i, r := range digits {
		if r < '1' || r > '3' {
			return nil, fmt.Errorf("%w %q at position %d", ErrInvalidDigit, r, i)
		}
		obs = append(obs, Observation(r-'1'))
	}
	return obs, nil
}

// Label returns the display name of a state.
func Label(s State) string {
	return string(s)
}
