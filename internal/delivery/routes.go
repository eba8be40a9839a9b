package delivery

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, hSop *SopHandler, hSystem *SystemHandler) {

	r.Get("/health", hSystem.Health)
	r.Get("/debug", hSystem.Debug)

	// sop read surface
	r.Get("/api/sop", hSop.List)
	r.Get("/api/sop/{id}", hSop.GetByID)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "Not Found",
			Message: fmt.Sprintf("route %s %s does not exist", req.Method, req.URL.Path),
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "Not Found",
			Message: fmt.Sprintf("route %s %s does not exist", req.Method, req.URL.Path),
		})
	})
}
