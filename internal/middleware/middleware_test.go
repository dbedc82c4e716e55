// internal/middleware/middleware_test.go
package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/SyedDaiam9101/hmm-service/internal/logging"
	"github.com/SyedDaiam9101/hmm-service/internal/metrics"
)

func TestUnaryRequestIDInterceptor_GeneratesID(t *testing.T) {
	interceptor := UnaryRequestIDInterceptor()

	var capturedCtx context.Context
	mockHandler := func(ctx context.Context, req interface{}) (interface{}, error) {
		capturedCtx = ctx
		return "response", nil
	}

	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}
	_, err := interceptor(context.Background(), nil, info, mockHandler)
	require.NoError(t, err)

	requestID := GetRequestID(capturedCtx)
	// UUID format: 36 chars with dashes
	assert.Len(t, requestID, 36)
}

func TestUnaryRequestIDInterceptor_PreservesExistingID(t *testing.T) {
	interceptor := UnaryRequestIDInterceptor()

	existingID := "test-request-id-12345"

	var capturedCtx context.Context
	mockHandler := func(ctx context.Context, req interface{}) (interface{}, error) {
		capturedCtx = ctx
		return "response", nil
	}

	md := metadata.Pairs(RequestIDHeader, existingID)
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}

	_, err := interceptor(ctx, nil, info, mockHandler)
	require.NoError(t, err)

	assert.Equal(t, existingID, GetRequestID(capturedCtx))
}

func TestUnaryRequestIDInterceptor_ReplacesUnusableID(t *testing.T) {
	tests := map[string]string{
		"blank":     "   ",
		"oversized": strings.Repeat("a", MaxRequestIDLength+1),
	}
	for name, incoming := range tests {
		t.Run(name, func(t *testing.T) {
			var got string
			handler := func(ctx context.Context, req interface{}) (interface{}, error) {
				got = GetRequestID(ctx)
				return nil, nil
			}

			ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDHeader, incoming))
			_, err := UnaryRequestIDInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/hmm.v1.HMM/Decode"}, handler)
			require.NoError(t, err)

			assert.NotEqual(t, incoming, got)
			assert.Len(t, got, 36)
		})
	}
}

func TestUnaryRequestIDInterceptor_TrimsID(t *testing.T) {
	var got string
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		got = GetRequestID(ctx)
		return nil, nil
	}

	md := metadata.Pairs(RequestIDHeader, "", RequestIDHeader, " req-7 ")
	ctx := metadata.NewIncomingContext(context.Background(), md)
	_, err := UnaryRequestIDInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/hmm.v1.HMM/Decode"}, handler)
	require.NoError(t, err)

	assert.Equal(t, "req-7", got)
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestUnaryMetricsInterceptor_RecordsCode(t *testing.T) {
	interceptor := UnaryMetricsInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Metrics"}

	failing := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "bad")
	}
	_, err := interceptor(context.Background(), nil, info, failing)
	require.Error(t, err)

	_, err = interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	// One series per (method, code) pair.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(metrics.GRPCServerHandlingSeconds), 2)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, "OK", statusCode(nil))
	assert.Equal(t, "NotFound", statusCode(status.Error(codes.NotFound, "x")))
	assert.Equal(t, "Unknown", statusCode(assert.AnError))
}

func TestUnaryLoggingInterceptor(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelInfo)

	interceptor := UnaryLoggingInterceptor(logger)
	info := &grpc.UnaryServerInfo{FullMethod: "/hmm.v1.HMM/Decode"}
	ctx := WithRequestID(context.Background(), "req-1")

	_, err := interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rpc handled")
	assert.Contains(t, out, "method=/hmm.v1.HMM/Decode")
	assert.Contains(t, out, "request_id=req-1")
	assert.Contains(t, out, "code=OK")

	buf.Reset()
	_, err = interceptor(ctx, nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "empty")
	})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "code=InvalidArgument")
}
