package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/invotrack/invotrack/internal/httpapi/respond"
	"github.com/invotrack/invotrack/internal/storage"
)

// HealthHandler reports service and store health.
type HealthHandler struct {
	store  storage.Store
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store storage.Store, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{store: store, logger: logger}
}

// Check handles GET /healthz. It pings the backing store so a wedged
// database surfaces as unhealthy.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.logger.Error("health check failed", "error", err)
		respond.Error(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	respond.JSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
