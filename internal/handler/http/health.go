package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-lite/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-lite/internal/pkg/database"
)

type HealthHandler interface {
	Root(w http.ResponseWriter, r *http.Request)
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	store   database.Pinger
	name    string
	version string
}

func NewHealthHandler(store database.Pinger, name, version string) HealthHandler {
	return &healthHandlerImpl{store: store, name: name, version: version}
}

// Root handles GET /
func (h *healthHandlerImpl) Root(w http.ResponseWriter, r *http.Request) {
	response.Success(w, map[string]string{
		"name":    h.name,
		"version": h.version,
		"status":  "running",
	})
}

// Health handles GET /health
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		slog.Error("health check failed", "error", err)
		response.ServiceUnavailable(w, "Database unreachable")
		return
	}

	response.Success(w, map[string]string{"status": "healthy"})
}
