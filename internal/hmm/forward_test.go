package hmm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allPaths enumerates every state sequence of length n.
func allPaths(states []string, n int) [][]string {
	if n == 0 {
		return [][]string{{}}
	}
	var out [][]string
	for _, prefix := range allPaths(states, n-1) {
		for _, s := range states {
			p := make([]string, 0, n)
			p = append(p, prefix...)
			out = append(out, append(p, s))
		}
	}
	return out
}

// allSequences enumerates every observation sequence of length n.
func allSequences(alphabet []string, n int) [][]string {
	return allPaths(alphabet, n)
}

// skewedDefinition has explicit, unequal end transitions and one state
// with none, so the default of 1 is exercised alongside real values.
func skewedDefinition() Definition[string, string] {
	return Definition[string, string]{
		Start:  "<s>",
		End:    "</s>",
		States: []string{"A", "B"},
		Transition: map[string]map[string]float64{
			"<s>": {"A": 0.6, "B": 0.4},
			"A":   {"A": 0.5, "B": 0.3, "</s>": 0.2},
			"B":   {"A": 0.1, "B": 0.9},
		},
		Emission: map[string]map[string]float64{
			"A": {"x": 0.7, "y": 0.3},
			"B": {"x": 0.2, "y": 0.8},
		},
	}
}

func TestLikelihood_MatchesBruteForce(t *testing.T) {
	defs := map[string]Definition[string, string]{
		"weather": weatherDefinition(),
		"skewed":  skewedDefinition(),
	}

	for name, def := range defs {
		t.Run(name, func(t *testing.T) {
			m := mustModel(t, def)

			var alphabet []string
			for o := range def.Emission[def.States[0]] {
				alphabet = append(alphabet, o)
			}

			for n := 1; n <= 3; n++ {
				for _, obs := range allSequences(alphabet, n) {
					want := 0.0
					for _, path := range allPaths(def.States, n) {
						p, err := m.PathProbability(path, obs)
						require.NoError(t, err)
						want += p
					}

					got, err := m.Likelihood(obs)
					require.NoError(t, err)
					assert.InEpsilon(t, want, got, 1e-12, "sequence %v", obs)
				}
			}
		})
	}
}

func TestLikelihood_Weather(t *testing.T) {
	m := mustModel(t, weatherDefinition())

	tests := []struct {
		obs  string
		want float64
	}{
		{"1", 0.26},
		{"3", 0.34},
		{"313", 0.026264},
		{"331122313", 3.575714750873601e-05},
		{"331123312", 3.9516275425280015e-05},
	}

	for _, tt := range tests {
		t.Run(tt.obs, func(t *testing.T) {
			got, err := m.Likelihood(symbols(tt.obs))
			require.NoError(t, err)
			assert.InEpsilon(t, tt.want, got, 1e-12)
		})
	}
}

func TestLikelihood_EndTransitionWeightsTermination(t *testing.T) {
	def := weatherDefinition()
	def.Transition["HOT"]["END"] = 0.5
	def.Transition["COLD"]["END"] = 0.5
	halved := mustModel(t, def)
	full := mustModel(t, weatherDefinition())

	a, err := full.Likelihood(symbols("3"))
	require.NoError(t, err)
	b, err := halved.Likelihood(symbols("3"))
	require.NoError(t, err)

	assert.InEpsilon(t, a/2, b, 1e-12)
}

func TestLikelihood_EmptySequence(t *testing.T) {
	m := mustModel(t, weatherDefinition())

	_, err := m.Likelihood(nil)
	assert.ErrorIs(t, err, ErrEmptySequence)
}

func TestLikelihood_UnknownObservation(t *testing.T) {
	m := mustModel(t, weatherDefinition())

	_, err := m.Likelihood(symbols("3147"))
	require.ErrorIs(t, err, ErrUnknownObservation)

	var le *LookupError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "4", le.To)
	assert.Equal(t, 2, le.Index)
}
