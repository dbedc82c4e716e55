package hmm

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weatherDefinition is the two-state HOT/COLD model with string keys.
func weatherDefinition() Definition[string, string] {
	return Definition[string, string]{
		Start:  "START",
		End:    "END",
		States: []string{"HOT", "COLD"},
		Transition: map[string]map[string]float64{
			"START": {"HOT": 0.8, "COLD": 0.2},
			"HOT":   {"HOT": 0.7, "COLD": 0.3, "END": 1.0},
			"COLD":  {"HOT": 0.4, "COLD": 0.6, "END": 1.0},
		},
		Emission: map[string]map[string]float64{
			"HOT":  {"1": 0.2, "2": 0.4, "3": 0.4},
			"COLD": {"1": 0.5, "2": 0.4, "3": 0.1},
		},
	}
}

func mustModel(t *testing.T, def Definition[string, string]) *Model[string, string] {
	t.Helper()
	m, err := New(def)
	require.NoError(t, err)
	return m
}

func symbols(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func TestNew_Accessors(t *testing.T) {
	m := mustModel(t, weatherDefinition())

	assert.Equal(t, "START", m.Start())
	assert.Equal(t, "END", m.End())
	assert.Equal(t, []string{"HOT", "COLD"}, m.States())
	assert.Equal(t, 3, m.NumObservations())
}

func TestNew_StatesIsACopy(t *testing.T) {
	def := weatherDefinition()
	m := mustModel(t, def)

	def.States[0] = "MUTATED"
	got := m.States()
	got[1] = "ALSO MUTATED"

	assert.Equal(t, []string{"HOT", "COLD"}, m.States())
}

func TestNew_EndTransitionDefaultsToOne(t *testing.T) {
	def := weatherDefinition()
	delete(def.Transition["HOT"], "END")
	def.Transition["COLD"]["END"] = 0.25

	m := mustModel(t, def)
	assert.Equal(t, []float64{1, 0.25}, m.final)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Definition[string, string])
		want   error
	}{
		{
			name:   "no states",
			mutate: func(d *Definition[string, string]) { d.States = nil },
			want:   ErrNoStates,
		},
		{
			name:   "start equals end",
			mutate: func(d *Definition[string, string]) { d.End = d.Start },
			want:   ErrPseudoState,
		},
		{
			name:   "start listed as ordinary state",
			mutate: func(d *Definition[string, string]) { d.States = append(d.States, "START") },
			want:   ErrPseudoState,
		},
		{
			name:   "duplicate state",
			mutate: func(d *Definition[string, string]) { d.States = []string{"HOT", "COLD", "HOT"} },
			want:   ErrDuplicateState,
		},
		{
			name:   "missing start transition",
			mutate: func(d *Definition[string, string]) { delete(d.Transition["START"], "COLD") },
			want:   ErrMissingTransition,
		},
		{
			name:   "missing start row",
			mutate: func(d *Definition[string, string]) { delete(d.Transition, "START") },
			want:   ErrMissingTransition,
		},
		{
			name:   "missing state transition",
			mutate: func(d *Definition[string, string]) { delete(d.Transition["COLD"], "HOT") },
			want:   ErrMissingTransition,
		},
		{
			name:   "transition to unknown state",
			mutate: func(d *Definition[string, string]) { d.Transition["HOT"]["WARM"] = 0.1 },
			want:   ErrUnknownState,
		},
		{
			name:   "transition row for end state",
			mutate: func(d *Definition[string, string]) { d.Transition["END"] = map[string]float64{"HOT": 1} },
			want:   ErrUnknownState,
		},
		{
			name:   "negative transition",
			mutate: func(d *Definition[string, string]) { d.Transition["HOT"]["COLD"] = -0.3 },
			want:   ErrInvalidProbability,
		},
		{
			name:   "NaN end transition",
			mutate: func(d *Definition[string, string]) { d.Transition["COLD"]["END"] = math.NaN() },
			want:   ErrInvalidProbability,
		},
		{
			name:   "infinite emission",
			mutate: func(d *Definition[string, string]) { d.Emission["HOT"]["2"] = math.Inf(1) },
			want:   ErrInvalidProbability,
		},
		{
			name:   "emission row missing a symbol",
			mutate: func(d *Definition[string, string]) { delete(d.Emission["COLD"], "3") },
			want:   ErrMissingEmission,
		},
		{
			name:   "emission row for start state",
			mutate: func(d *Definition[string, string]) { d.Emission["START"] = map[string]float64{"1": 1} },
			want:   ErrUnknownState,
		},
		{
			name:   "emission row for unknown state",
			mutate: func(d *Definition[string, string]) { d.Emission["WARM"] = map[string]float64{"4": 1} },
			want:   ErrUnknownState,
		},
		{
			name:   "no emissions at all",
			mutate: func(d *Definition[string, string]) { d.Emission = nil },
			want:   ErrMissingEmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := weatherDefinition()
			tt.mutate(&def)

			m, err := New(def)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNew_LookupErrorNamesKeys(t *testing.T) {
	def := weatherDefinition()
	delete(def.Transition["COLD"], "HOT")

	_, err := New(def)

	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "COLD", le.From)
	assert.Equal(t, "HOT", le.To)
	assert.Equal(t, -1, le.Index)
	assert.Equal(t, "missing transition probability: COLD -> HOT", err.Error())
}

func TestNew_RowsAreNotNormalised(t *testing.T) {
	def := weatherDefinition()
	def.Transition["HOT"]["HOT"] = 3
	def.Emission["COLD"]["1"] = 2

	_, err := New(def)
	assert.NoError(t, err)
}
