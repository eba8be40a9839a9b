package delivery

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sopdesk/sopdesk/internal/domain"
	"github.com/sopdesk/sopdesk/internal/models"
)

type SopHandler struct {
	sops       *domain.SopService
	log        *zap.SugaredLogger
	production bool
}

func NewSopHandler(sops *domain.SopService, log *zap.SugaredLogger, production bool) *SopHandler {
	return &SopHandler{
		sops:       sops,
		log:        log,
		production: production,
	}
}

// GET /api/sop?page&limit
func (h *SopHandler) List(w http.ResponseWriter, r *http.Request) {
	page := intQuery(r, "page", domain.DefaultPage)
	limit := intQuery(r, "limit", domain.DefaultLimit)

	records, info, err := h.sops.List(r.Context(), page, limit)
	if err != nil {
		h.log.Errorw("list sops failed", "error", err)
		writeError(w, h.production, err)
		return
	}

	// Empty window still serializes as [], not null.
	if records == nil {
		records = []models.Record{}
	}

	writeJSON(w, http.StatusOK, listResponse{
		Success:    true,
		Data:       records,
		Pagination: info,
	})
}

// GET /api/sop/{id}
func (h *SopHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := h.sops.GetByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrMissingID) {
			h.log.Errorw("get sop failed", "id", id, "error", err)
		}
		writeError(w, h.production, err)
		return
	}

	writeJSON(w, http.StatusOK, itemResponse{Success: true, Data: rec})
}

// intQuery parses a numeric query parameter, falling back to def when the
// parameter is missing or not a number.
func intQuery(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
