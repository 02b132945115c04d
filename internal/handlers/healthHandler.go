package handlers

import (
	"context"
	"net/http"
	"time"
)

// Root godoc
// @Summary      Liveness banner
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]string{
		"message": "University Bot API is running",
		"docs":    "/swagger/index.html",
	})
}

// Health godoc
// @Summary      Basic health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, map[string]any{
		"status":      "healthy",
		"message":     "API is running",
		"environment": h.settings.Environment,
		"debug":       h.settings.Debug,
	})
}

// HealthDetailed godoc
// @Summary      Health check including database connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /health/detailed [get]
func (h *Handler) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	status := "healthy"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "error: " + err.Error()
		status = "degraded"
	}
	writeJsonResponse(w, http.StatusOK, map[string]any{
		"status":      status,
		"database":    dbStatus,
		"environment": h.settings.Environment,
		"debug":       h.settings.Debug,
	})
}
