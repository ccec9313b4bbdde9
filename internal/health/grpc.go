package health

import (
	"context"
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
)

// ServiceName is the name gRPC health clients ask for.
const ServiceName = "primind.appointment.booking.v1.BookingService"

type grpcChecker struct {
	checker *Checker
}

// Check answers for the whole server ("") and ServiceName; anything else is
// NotFound.
func (g *grpcChecker) Check(ctx context.Context, req *grpchealth.CheckRequest) (*grpchealth.CheckResponse, error) {
	if req.Service != "" && req.Service != ServiceName {
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown service %q", req.Service))
	}

	if g.checker.Check(ctx).Status == StatusUnhealthy {
		return &grpchealth.CheckResponse{Status: grpchealth.StatusNotServing}, nil
	}
	return &grpchealth.CheckResponse{Status: grpchealth.StatusServing}, nil
}

// GRPCHandler serves grpc.health.v1.Health backed by the same checks as
// ReadyHandler. It must be mounted on an h2c-capable server.
func (c *Checker) GRPCHandler() (string, http.Handler) {
	return grpchealth.NewHandler(&grpcChecker{checker: c})
}
