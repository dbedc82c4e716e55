// internal/inference/inference.go
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SyedDaiam9101/hmm-service/internal/hmm"
	"github.com/SyedDaiam9101/hmm-service/internal/metrics"
	"github.com/SyedDaiam9101/hmm-service/internal/weather"
)

const tracerName = "github.com/SyedDaiam9101/hmm-service/internal/inference"

// ParseFunc converts a raw observation string into model observations.
type ParseFunc[O comparable] func(string) ([]O, error)

// LabelFunc names a hidden state for output.
type LabelFunc[S comparable] func(S) string

// HMM adapts a compiled hmm.Model to the Engine interface.
// The model is immutable, so an HMM is safe for concurrent use.
type HMM[S, O comparable] struct {
	name   string
	model  *hmm.Model[S, O]
	parse  ParseFunc[O]
	label  LabelFunc[S]
	tracer trace.Tracer
}

// New creates an Engine around model. parse turns request strings into
// observations and label names decoded states.
func New[S, O comparable](name string, model *hmm.Model[S, O], parse ParseFunc[O], label LabelFunc[S]) (*HMM[S, O], error) {
	if model == nil {
		return nil, fmt.Errorf("model is nil")
	}
	if parse == nil || label == nil {
		return nil, fmt.Errorf("parse and label functions are required")
	}
	return &HMM[S, O]{
		name:   name,
		model:  model,
		parse:  parse,
		label:  label,
		tracer: otel.Tracer(tracerName),
	}, nil
}

// NewWeather creates an Engine serving the HOT/COLD reference model.
func NewWeather() (*HMM[weather.State, weather.Observation], error) {
	model, err := weather.New()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s model: %w", weather.Name, err)
	}
	return New(weather.Name, model, weather.ParseObservations, weather.Label)
}

// Name returns the model name.
func (h *HMM[S, O]) Name() string {
	return h.name
}

// Decode parses input and runs Viterbi decoding over it.
func (h *HMM[S, O]) Decode(ctx context.Context, input string) (Decoding, error) {
	_, span := h.startSpan(ctx, "hmm.Decode", input)
	defer span.End()

	obs, err := h.observations(input)
	if err != nil {
		return Decoding{}, spanError(span, err)
	}

	start := time.Now()
	path, err := h.model.Viterbi(obs)
	metrics.RecordInferenceLatency("decode", time.Since(start).Seconds())
	if err != nil {
		return Decoding{}, spanError(span, err)
	}

	d := Decoding{
		States:      make([]string, len(path.States)),
		Probability: path.Probability,
	}
	var initials strings.Builder
	for i, s := range path.States {
		d.States[i] = h.label(s)
		if d.States[i] != "" {
			initials.WriteByte(d.States[i][0])
		}
	}
	d.Path = initials.String()

	span.SetAttributes(attribute.String("hmm.path", d.Path))
	return d, nil
}

// Likelihood parses input and runs the forward algorithm over it.
func (h *HMM[S, O]) Likelihood(ctx context.Context, input string) (float64, error) {
	_, span := h.startSpan(ctx, "hmm.Likelihood", input)
	defer span.End()

	obs, err := h.observations(input)
	if err != nil {
		return 0, spanError(span, err)
	}

	start := time.Now()
	p, err := h.model.Likelihood(obs)
	metrics.RecordInferenceLatency("likelihood", time.Since(start).Seconds())
	if err != nil {
		return 0, spanError(span, err)
	}

	span.SetAttributes(attribute.Float64("hmm.likelihood", p))
	return p, nil
}

// Close is a no-op; the model holds no external resources.
func (h *HMM[S, O]) Close() error {
	return nil
}

func (h *HMM[S, O]) observations(input string) ([]O, error) {
	obs, err := h.parse(input)
	if err != nil {
		if errors.Is(err, hmm.ErrEmptySequence) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	metrics.RecordSequenceLength(len(obs))
	return obs, nil
}

func (h *HMM[S, O]) startSpan(ctx context.Context, name, input string) (context.Context, trace.Span) {
	return h.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("hmm.model", h.name),
		attribute.Int("hmm.input_length", len(input)),
	))
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

// Ensure HMM implements Engine at compile time
var _ Engine = (*HMM[weather.State, weather.Observation])(nil)
