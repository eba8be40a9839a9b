package delivery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sopdesk/sopdesk/internal/domain"
	"github.com/sopdesk/sopdesk/internal/models"
)

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type itemResponse struct {
	Success bool          `json:"success"`
	Data    models.Record `json:"data"`
}

type listResponse struct {
	Success    bool            `json:"success"`
	Data       []models.Record `json:"data"`
	Pagination models.Page     `json:"pagination"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError is the single funnel every handler failure goes through.
// Client-side outcomes keep their message in every mode; upstream
// failures expose their detail only outside production. The status code
// survives either way.
func writeError(w http.ResponseWriter, production bool, err error) {
	status := http.StatusInternalServerError
	kind := "Internal Server Error"

	switch {
	case errors.Is(err, domain.ErrMissingID):
		status = http.StatusBadRequest
		kind = "Bad Request"
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		kind = "Not Found"
	}

	message := err.Error()
	if production && status >= http.StatusInternalServerError {
		message = "an unexpected error occurred"
	}

	writeJSON(w, status, errorBody{Error: kind, Message: message})
}
