// internal/handler/handler.go
package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/SyedDaiam9101/hmm-service/internal/cache"
	"github.com/SyedDaiam9101/hmm-service/internal/inference"
	"github.com/SyedDaiam9101/hmm-service/internal/logging"
	"github.com/SyedDaiam9101/hmm-service/internal/metrics"
	"github.com/SyedDaiam9101/hmm-service/internal/middleware"
	"github.com/SyedDaiam9101/hmm-service/internal/rpc"
)

// DefaultCacheTTL is used when no TTL option is given.
const DefaultCacheTTL = 10 * time.Minute

// Handler implements the rpc.HMMServer interface.
// It uses the inference.Engine interface for flexibility and testability.
type Handler struct {
	infer    inference.Engine
	cache    *cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger used for per-request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) { h.logger = logger }
}

// WithCacheTTL sets how long decoded paths are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(h *Handler) { h.cacheTTL = ttl }
}

// New creates a new Handler with the given engine and cache. The cache may
// be nil, in which case every request runs the engine.
func New(infer inference.Engine, c *cache.Cache, opts ...Option) *Handler {
	h := &Handler{
		infer:    infer,
		cache:    c,
		cacheTTL: DefaultCacheTTL,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Decode returns the most likely hidden path for the request's observations.
func (h *Handler) Decode(ctx context.Context, req *rpc.DecodeRequest) (*rpc.DecodeResponse, error) {
	if req == nil {
		return nil, invalidArgumentError("request cannot be nil")
	}
	if req.Observations == "" {
		return nil, invalidArgumentError("observations cannot be empty")
	}
	if h.infer == nil {
		return nil, failedPreconditionError("inference engine not initialized")
	}

	requestID := requestIDFrom(ctx)
	model := h.infer.Name()

	if d, ok := h.lookup(ctx, requestID, model, req.Observations); ok {
		return decodeResponse(model, d, true), nil
	}

	d, err := h.infer.Decode(ctx, req.Observations)
	if err != nil {
		h.logger.WarnContext(ctx, "decode failed", "request_id", requestID, "model", model, "error", err)
		return nil, grpcError(err)
	}

	h.store(ctx, requestID, model, req.Observations, d)

	h.logger.DebugContext(ctx, "decoded", "request_id", requestID, "model", model,
		"length", len(req.Observations), "path", d.Path)

	return decodeResponse(model, d, false), nil
}

// Likelihood returns the forward probability of the request's observations.
func (h *Handler) Likelihood(ctx context.Context, req *rpc.LikelihoodRequest) (*rpc.LikelihoodResponse, error) {
	if req == nil {
		return nil, invalidArgumentError("request cannot be nil")
	}
	if req.Observations == "" {
		return nil, invalidArgumentError("observations cannot be empty")
	}
	if h.infer == nil {
		return nil, failedPreconditionError("inference engine not initialized")
	}

	requestID := requestIDFrom(ctx)
	model := h.infer.Name()

	p, err := h.infer.Likelihood(ctx, req.Observations)
	if err != nil {
		h.logger.WarnContext(ctx, "likelihood failed", "request_id", requestID, "model", model, "error", err)
		return nil, grpcError(err)
	}

	return &rpc.LikelihoodResponse{Model: model, Likelihood: p}, nil
}

// lookup consults the cache. Cache failures are logged and treated as misses.
func (h *Handler) lookup(ctx context.Context, requestID, model, input string) (inference.Decoding, bool) {
	if h.cache == nil {
		return inference.Decoding{}, false
	}

	d, found, err := h.cache.GetDecoding(ctx, model, input)
	switch {
	case err != nil:
		metrics.RecordCacheLookup(metrics.CacheError)
		h.logger.WarnContext(ctx, "cache lookup failed", "request_id", requestID, "error", err)
		return inference.Decoding{}, false
	case found:
		metrics.RecordCacheLookup(metrics.CacheHit)
		return d, true
	default:
		metrics.RecordCacheLookup(metrics.CacheMiss)
		return inference.Decoding{}, false
	}
}

func (h *Handler) store(ctx context.Context, requestID, model, input string, d inference.Decoding) {
	if h.cache == nil {
		return
	}
	if err := h.cache.SetDecoding(ctx, model, input, d, h.cacheTTL); err != nil {
		h.logger.WarnContext(ctx, "cache store failed", "request_id", requestID, "error", err)
	}
}

func decodeResponse(model string, d inference.Decoding, cached bool) *rpc.DecodeResponse {
	return &rpc.DecodeResponse{
		Model:       model,
		States:      d.States,
		Path:        d.Path,
		Probability: d.Probability,
		Cached:      cached,
	}
}

func requestIDFrom(ctx context.Context) string {
	if id := middleware.GetRequestID(ctx); id != "" {
		return id
	}
	return "unknown"
}

// Ensure Handler implements rpc.HMMServer at compile time
var _ rpc.HMMServer = (*Handler)(nil)
