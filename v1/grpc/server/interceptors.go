package server

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDKey is the metadata key carrying the request id in both directions
const RequestIDKey = "x-request-id"

// RPCRecorder receives per-call metrics; *monitoring.Metrics satisfies it
type RPCRecorder interface {
	RecordGRPCRequest(fullMethod, code string, duration time.Duration)
}

// RecoveryInterceptor turns handler panics into codes.Internal
func RecoveryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("gRPC handler panicked",
					"method", info.FullMethod,
					"panic", r,
					"stack", string(debug.Stack()))
				err = status.Error(codes.Internal, "internal server error")
			}
		}()
		return handler(ctx, req)
	}
}

// LoggingInterceptor assigns a request id (reusing an incoming x-request-id)
// and logs each call with its status code and latency
func LoggingInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		requestID := incomingRequestID(ctx)
		_ = grpc.SetHeader(ctx, metadata.Pairs(RequestIDKey, requestID))

		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		attrs := []any{
			"method", info.FullMethod,
			"requestId", requestID,
			"code", code.String(),
			"duration", time.Since(start),
		}
		switch code {
		case codes.OK:
			slog.Info("gRPC request completed", attrs...)
		case codes.NotFound, codes.InvalidArgument:
			slog.Warn("gRPC request failed", attrs...)
		default:
			slog.Error("gRPC request failed", append(attrs, "error", err)...)
		}
		return resp, err
	}
}

// MetricsInterceptor records call count and latency per method and status code
func MetricsInterceptor(recorder RPCRecorder) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		recorder.RecordGRPCRequest(info.FullMethod, status.Code(err).String(), time.Since(start))
		return resp, err
	}
}

func incomingRequestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(RequestIDKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.NewString()
}
