// Package grpcserver wraps a grpc.Server with the health and reflection services
package grpcserver

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

type Server struct {
	addr   string
	health *health.Server
	Server *grpc.Server
}

// New creates a server listening on addr once started. opts are passed to
// grpc.NewServer (interceptors, credentials).
func New(addr string, opts ...grpc.ServerOption) *Server {
	s := grpc.NewServer(opts...)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	reflection.Register(s)
	return &Server{
		addr:   addr,
		health: hs,
		Server: s,
	}
}

// SetServing marks a service as serving in the health service
func (s *Server) SetServing(service string) {
	s.health.SetServingStatus(service, healthpb.HealthCheckResponse_SERVING)
}

// Start listens on the configured address and serves until Stop
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve serves on an existing listener. The listener is closed on Stop.
func (s *Server) Serve(lis net.Listener) error {
	return s.Server.Serve(lis)
}

// Stop reports NOT_SERVING to health checks and drains in-flight calls
func (s *Server) Stop() {
	s.health.Shutdown()
	s.Server.GracefulStop()
}
