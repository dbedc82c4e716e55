package middleware

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
)

// UnaryLoggingInterceptor logs one record per unary call with its method,
// request ID, status code and duration. Failed calls are logged at warn.
// It must run after UnaryRequestIDInterceptor to see the request ID.
func UnaryLoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		attrs := []any{
			"method", info.FullMethod,
			"request_id", GetRequestID(ctx),
			"code", statusCode(err),
			"duration", time.Since(start),
		}
		if err != nil {
			logger.WarnContext(ctx, "rpc failed", append(attrs, "error", err)...)
		} else {
			logger.InfoContext(ctx, "rpc handled", attrs...)
		}

		return resp, err
	}
}
