package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/metcal/asset-api/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string, fieldErrors []models.FieldError) {
	writeJSON(w, status, models.ErrorResponse{Detail: detail, Errors: fieldErrors})
}
