package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/CamilaNiebles/sls-assesment/application/ports"
	"github.com/CamilaNiebles/sls-assesment/pkg/utils"
)

const serviceName = "notes-api"

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Timestamp    string            `json:"timestamp"`
	Dependencies map[string]string `json:"dependencies"`
}

// HealthService reports service liveness. Check never returns an error: a
// failing dependency degrades the payload, it does not fail the endpoint.
type HealthService struct {
	probe  ports.DatabaseProbe
	logger *zap.Logger
}

// NewHealthService creates a new health service
func NewHealthService(probe ports.DatabaseProbe, logger *zap.Logger) *HealthService {
	return &HealthService{
		probe:  probe,
		logger: logger,
	}
}

// Check probes the database and reports aggregate status.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:       "ok",
		Service:      serviceName,
		Timestamp:    utils.NowRFC3339(),
		Dependencies: map[string]string{"database": "ok"},
	}

	if err := s.probe.Ping(ctx); err != nil {
		s.logger.Warn("Database liveness probe failed", zap.Error(err))
		status.Status = "degraded"
		status.Dependencies["database"] = "down"
	}

	return status
}
