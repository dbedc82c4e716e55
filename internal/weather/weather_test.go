package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedDaiam9101/hmm-service/internal/hmm"
)

func decode(t *testing.T, input string) string {
	t.Helper()
	m, err := New()
	require.NoError(t, err)

	obs, err := ParseObservations(input)
	require.NoError(t, err)

	path, err := m.Decode(obs)
	require.NoError(t, err)
	return input + ":" + initials(path)
}

func initials(path []State) string {
	var b strings.Builder
	for _, s := range path {
		b.WriteByte(s[0])
	}
	return b.String()
}

func TestDecodeDefaultSequences(t *testing.T) {
	assert.Equal(t, "331122313:HHCCHHHHH", decode(t, DefaultSequences[0]))
	assert.Equal(t, "331123312:HHCCHHHHH", decode(t, DefaultSequences[1]))
}

func TestDecodeShortSequences(t *testing.T) {
	tests := map[string]string{
		"1":   "1:H",
		"2":   "2:H",
		"3":   "3:H",
		"12":  "12:HH",
		"31":  "31:HC",
		"313": "313:HHH",
	}
	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, decode(t, input))
		})
	}
}

func TestLikelihood(t *testing.T) {
	m, err := New()
	require.NoError(t, err)

	obs, err := ParseObservations("313")
	require.NoError(t, err)

	got, err := m.Likelihood(obs)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.026264, got, 1e-12)
}

func TestParseObservations(t *testing.T) {
	obs, err := ParseObservations("3312")
	require.NoError(t, err)
	assert.Equal(t, []Observation{Three, Three, One, Two}, obs)
}

func TestParseObservations_Errors(t *testing.T) {
	_, err := ParseObservations("")
	assert.ErrorIs(t, err, hmm.ErrEmptySequence)

	for _, input := range []string{"0", "4", "31a", "1 2", "１"} {
		_, err := ParseObservations(input)
		assert.ErrorIs(t, err, ErrInvalidDigit, "input %q", input)
	}

	_, err = ParseObservations("124")
	assert.EqualError(t, err, `invalid observation digit '4' at position 2`)

	// Everything before the first bad rune is a single-byte digit, so the
	// offset is also the rune position.
	_, err = ParseObservations("31é2")
	assert.EqualError(t, err, `invalid observation digit 'é' at position 2`)
}

func TestObservationString(t *testing.T) {
	assert.Equal(t, "ONE", One.String())
	assert.Equal(t, "THREE", Three.String())
	assert.Equal(t, "Observation(7)", Observation(7).String())
}
