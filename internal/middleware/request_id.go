package middleware

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// RequestIDHeader carries the caller's correlation id for an HMM call.
const RequestIDHeader = "x-request-id"

// MaxRequestIDLength caps a client-supplied id. Longer ids are replaced,
// since the id is copied into every log record of the call.
const MaxRequestIDLength = 128

type requestIDKey struct{}

// UnaryRequestIDInterceptor gives every Decode and Likelihood call a
// request id: the client's x-request-id when usable, otherwise a fresh
// UUID. The id is stored in the context for the handler and the logging
// interceptor, and returned to the client as a response header.
func UnaryRequestIDInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		id, ok := incomingRequestID(ctx)
		if !ok {
			id = uuid.NewString()
		}
		ctx = WithRequestID(ctx, id)

		// No server transport in direct calls; the id still reaches the handler.
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDHeader, id))

		return handler(ctx, req)
	}
}

// incomingRequestID returns the first non-blank x-request-id of the call,
// rejecting ids over MaxRequestIDLength.
func incomingRequestID(ctx context.Context) (string, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", false
	}
	for _, v := range md.Get(RequestIDHeader) {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		return v, len(v) <= MaxRequestIDLength
	}
	return "", false
}

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns the id stored by UnaryRequestIDInterceptor, or ""
// outside an intercepted call.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
