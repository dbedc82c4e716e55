// internal/inference/mock.go
package inference

import (
	"context"
	"fmt"
	"sync"

	"github.com/SyedDaiam9101/hmm-service/internal/hmm"
)

// Mock is a mock implementation of Engine for testing.
// It returns a fixed decoding and likelihood without running a model.
type Mock struct {
	mu sync.Mutex

	// ModelName is returned by Name.
	ModelName string
	// Result is returned by every successful Decode call.
	Result Decoding
	// Probability is returned by every successful Likelihood call.
	Probability float64
	// Err, when set, is returned by Decode and Likelihood.
	Err error

	calls int
}

// NewMock creates a Mock that decodes every input to a single HOT state.
func NewMock() *Mock {
	return &Mock{
		ModelName:   "mock",
		Result:      Decoding{States: []string{"HOT"}, Path: "H", Probability: 0.5},
		Probability: 0.25,
	}
}

// NewMockWithResult creates a Mock returning the given decoding.
func NewMockWithResult(d Decoding) *Mock {
	m := NewMock()
	m.Result = d
	return m
}

// Name returns ModelName.
func (m *Mock) Name() string {
	return m.ModelName
}

// Decode returns Result, or Err when configured.
func (m *Mock) Decode(_ context.Context, input string) (Decoding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := m.check(input); err != nil {
		return Decoding{}, err
	}
	return m.Result, nil
}

// Likelihood returns Probability, or Err when configured.
func (m *Mock) Likelihood(_ context.Context, input string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++

	if err := m.check(input); err != nil {
		return 0, err
	}
	return m.Probability, nil
}

func (m *Mock) check(input string) error {
	if m.Err != nil {
		return m.Err
	}
	if input == "" {
		return fmt.Errorf("mock: %w", hmm.ErrEmptySequence)
	}
	return nil
}

// Close is a no-op for the mock implementation
func (m *Mock) Close() error {
	return nil
}

// CallCount returns the number of Decode and Likelihood calls so far.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// SetError configures the mock to fail every following call with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Err = err
}

// ClearError clears any configured error
func (m *Mock) ClearError() {
	m.SetError(nil)
}

// Ensure Mock implements Engine at compile time
var _ Engine = (*Mock)(nil)
