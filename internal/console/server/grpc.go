package server

import (
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName: имя сервиса в gRPC health check.
const ServiceName = "crimewatch.v1.Dashboard"

// NewHealthServer поднимает gRPC сервер со стандартным протоколом
// grpc.health.v1 для проб балансировщика и k8s.
// Изначально статус NOT_SERVING, main переключает его после старта.
func NewHealthServer(opts ...grpc.ServerOption) (*grpc.Server, *health.Server) {
	srv := grpc.NewServer(opts...)
	hs := health.NewServer()
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(srv, hs)
	return srv, hs
}
