package server

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/gov-dx-sandbox/member-service/v1/grpc/memberpb"
	"github.com/gov-dx-sandbox/member-service/v1/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// Server hosts MemberService together with the gRPC health and reflection services
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
}

// NewServer builds a gRPC server for memberService. recorder may be nil.
func NewServer(memberService *services.MemberService, recorder RPCRecorder, opts ...grpc.ServerOption) *Server {
	interceptors := []grpc.UnaryServerInterceptor{
		RecoveryInterceptor(),
		LoggingInterceptor(),
	}
	if recorder != nil {
		interceptors = append(interceptors, MetricsInterceptor(recorder))
	}
	opts = append(opts, grpc.ChainUnaryInterceptor(interceptors...))

	grpcServer := grpc.NewServer(opts...)
	memberpb.RegisterMemberServiceServer(grpcServer, NewMemberServer(memberService))

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(memberpb.ServiceName, healthpb.HealthCheckResponse_SERVING)

	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
	}
}

// Serve accepts connections on lis until Shutdown is called
func (s *Server) Serve(lis net.Listener) error {
	slog.Info("gRPC server listening", "addr", lis.Addr().String())
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Shutdown marks the server NOT_SERVING and drains in-flight calls, forcing
// a hard stop when ctx expires first
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("gRPC server stopped gracefully")
	case <-ctx.Done():
		slog.Warn("gRPC server forced to shutdown")
		s.grpcServer.Stop()
	}
}
