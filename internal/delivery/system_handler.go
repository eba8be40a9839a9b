package delivery

import (
	"net/http"
	"time"

	"github.com/sopdesk/sopdesk/internal/config"
)

type SystemHandler struct {
	cfg *config.Config
}

func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.cfg.Environment,
	})
}

// GET /debug — presence flags only, never values.
func (h *SystemHandler) Debug(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"environment": h.cfg.Environment,
		"config":      h.cfg.PresenceFlags(),
	})
}
