package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/metcal/asset-api/internal/models"
	"github.com/metcal/asset-api/internal/services"
)

// AssetHandler handles HTTP requests for asset records.
type AssetHandler struct {
	service services.AssetServiceProvider
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(service services.AssetServiceProvider) *AssetHandler {
	return &AssetHandler{service: service}
}

// assetID parses the {id} route parameter. A non-numeric id cannot name any
// asset, so it reports not-found rather than a validation error.
func assetID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil
}

// List handles GET /api/assets.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.service.GetAllAssets()
	if err != nil {
		log.Error().Err(err).Msg("failed to list assets")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeJSON(w, http.StatusOK, assets)
}

// Get handles GET /api/asset/{id}.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}

	asset, err := h.service.GetAssetByID(id)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			writeError(w, http.StatusNotFound, "Asset not found", nil)
			return
		}
		log.Error().Err(err).Int64("asset_id", id).Msg("failed to get asset")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}

// Create handles POST /api/asset. The created record is read back so the
// response carries the server-assigned id and created_at.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload models.AssetCreate
	if fieldErrors := models.DecodeStrict(r.Body, &payload); fieldErrors != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}
	if fieldErrors := payload.Validate(); len(fieldErrors) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}

	id, err := h.service.CreateAsset(payload.Fields())
	if err != nil {
		log.Error().Err(err).Msg("failed to create asset")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}

	asset, err := h.service.GetAssetByID(id)
	if err != nil {
		log.Error().Err(err).Int64("asset_id", id).Msg("asset missing after create")
		writeError(w, http.StatusInternalServerError, "Asset retrieval failed", nil)
		return
	}
	writeJSON(w, http.StatusCreated, asset)
}

// Update handles PUT /api/asset/{id}: partial update, then read back.
func (h *AssetHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := assetID(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}

	var payload models.AssetUpdate
	if fieldErrors := models.DecodeStrict(r.Body, &payload); fieldErrors != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}
	fieldErrors, err := payload.Validate()
	if err != nil {
		writeError(w, http.StatusBadRequest, "No fields provided for update", nil)
		return
	}
	if len(fieldErrors) > 0 {
		writeError(w, http.StatusBadRequest, "Invalid request payload", fieldErrors)
		return
	}

	matched, err := h.service.UpdateAsset(id, payload.Fields())
	if err != nil {
		log.Error().Err(err).Int64("asset_id", id).Msg("failed to update asset")
		writeError(w, http.StatusInternalServerError, "Internal server error", nil)
		return
	}
	if !matched {
		writeError(w, http.StatusNotFound, "Asset not found", nil)
		return
	}

	asset, err := h.service.GetAssetByID(id)
	if err != nil {
		log.Error().Err(err).Int64("asset_id", id).Msg("asset missing after update")
		writeError(w, http.StatusInternalServerError, "Asset retrieval failed", nil)
		return
	}
	writeJSON(w, http.StatusOK, asset)
}
