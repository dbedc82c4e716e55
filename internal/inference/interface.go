// internal/inference/interface.go
package inference

import (
	"context"
	"errors"
)

// ErrInvalidInput marks errors caused by the caller's observation string
// rather than by the model.
var ErrInvalidInput = errors.New("invalid input")

// Decoding is the result of decoding one observation sequence.
type Decoding struct {
	// States holds the label of every decoded state, one per observation.
	States []string `json:"states"`
	// Path is the first letter of each label, concatenated.
	Path string `json:"path"`
	// Probability is the probability of the decoded path.
	Probability float64 `json:"probability"`
}

// Engine defines the interface for running HMM inference over a raw
// observation string.
// This abstraction allows for easy mocking in tests and swapping models.
type Engine interface {
	// Name identifies the model behind the engine.
	Name() string

	// Decode returns the most likely hidden path for input.
	Decode(ctx context.Context, input string) (Decoding, error)

	// Likelihood returns the total probability of input under the model.
	Likelihood(ctx context.Context, input string) (float64, error)

	// Close releases any resources held by the engine.
	Close() error
}
