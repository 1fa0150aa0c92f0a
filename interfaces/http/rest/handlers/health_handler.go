package handlers

import (
	"context"
	"net/http"

	"github.com/CamilaNiebles/sls-assesment/application/services"
	"github.com/CamilaNiebles/sls-assesment/pkg/common"
)

// HealthChecker reports service and dependency health.
type HealthChecker interface {
	Check(ctx context.Context) services.HealthStatus
}

// HealthHandler handles health check requests
type HealthHandler struct {
	service HealthChecker
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service HealthChecker) *HealthHandler {
	return &HealthHandler{service: service}
}

// Check handles GET /health. Always 200; a down dependency shows up in the
// payload, not the status code.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, h.service.Check(r.Context()))
}
