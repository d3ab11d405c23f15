package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metcal/asset-api/internal/models"
	"github.com/metcal/asset-api/internal/services"
)

type fakeAssetService struct {
	listFn   func() ([]models.Asset, error)
	getFn    func(id int64) (models.Asset, error)
	createFn func(fields map[string]any) (int64, error)
	updateFn func(id int64, fields map[string]any) (bool, error)
}

func (f *fakeAssetService) GetAllAssets() ([]models.Asset, error) {
	if f.listFn == nil {
		return []models.Asset{}, nil
	}
	return f.listFn()
}

func (f *fakeAssetService) GetAssetByID(id int64) (models.Asset, error) {
	if f.getFn == nil {
		return models.Asset{}, services.ErrAssetNotFound
	}
	return f.getFn(id)
}

func (f *fakeAssetService) CreateAsset(fields map[string]any) (int64, error) {
	if f.createFn == nil {
		return 1, nil
	}
	return f.createFn(fields)
}

func (f *fakeAssetService) UpdateAsset(id int64, fields map[string]any) (bool, error) {
	if f.updateFn == nil {
		return true, nil
	}
	return f.updateFn(id, fields)
}

func assetRoutes(svc services.AssetServiceProvider) http.Handler {
	h := NewAssetHandler(svc)
	r := chi.NewRouter()
	r.Get("/api/assets", h.List)
	r.Route("/api/asset", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
	})
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	return resp
}

func sample(id int64) models.Asset {
	status := "active"
	return models.Asset{ID: id, Name: "Widget", Status: &status, CreatedAt: "2024-01-01 00:00:00"}
}

func TestAssetList(t *testing.T) {
	svc := &fakeAssetService{
		listFn: func() ([]models.Asset, error) {
			return []models.Asset{sample(2), sample(1)}, nil
		},
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodGet, "/api/assets", "")
	require.Equal(t, http.StatusOK, resp.Code)

	var assets []models.Asset
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &assets))
	require.Len(t, assets, 2)
	assert.Equal(t, int64(2), assets[0].ID)
}

func TestAssetGet(t *testing.T) {
	svc := &fakeAssetService{
		getFn: func(id int64) (models.Asset, error) {
			if id != 7 {
				return models.Asset{}, services.ErrAssetNotFound
			}
			return sample(7), nil
		},
	}
	routes := assetRoutes(svc)

	resp := doRequest(t, routes, http.MethodGet, "/api/asset/7", "")
	require.Equal(t, http.StatusOK, resp.Code)

	resp = doRequest(t, routes, http.MethodGet, "/api/asset/8", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Asset not found")
}

func TestAssetGet_NonNumericID(t *testing.T) {
	called := false
	svc := &fakeAssetService{
		getFn: func(id int64) (models.Asset, error) {
			called = true
			return models.Asset{}, nil
		},
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodGet, "/api/asset/abc", "")
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.False(t, called)
}

func TestAssetCreate(t *testing.T) {
	var gotFields map[string]any
	svc := &fakeAssetService{
		createFn: func(fields map[string]any) (int64, error) {
			gotFields = fields
			return 3, nil
		},
		getFn: func(id int64) (models.Asset, error) {
			return sample(id), nil
		},
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodPost, "/api/asset", `{"name":"Widget","value":10.5}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var asset models.Asset
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &asset))
	assert.Equal(t, int64(3), asset.ID)

	assert.Equal(t, "Widget", gotFields["name"])
	assert.Equal(t, 10.5, gotFields["value"])
	assert.Len(t, gotFields, len(models.AssetColumns))
}

func TestAssetCreate_ValidationFailureWritesNothing(t *testing.T) {
	created := false
	svc := &fakeAssetService{
		createFn: func(fields map[string]any) (int64, error) {
			created = true
			return 1, nil
		},
	}
	routes := assetRoutes(svc)

	for _, body := range []string{
		`{"name":"Widget","value":-1}`,
		`{"value":1}`,
		`{"name":"Widget","serial":"A1"}`,
		`not json`,
	} {
		resp := doRequest(t, routes, http.MethodPost, "/api/asset", body)
		require.Equal(t, http.StatusBadRequest, resp.Code, "body %q", body)
		assert.Contains(t, resp.Body.String(), "Invalid request payload")
	}
	assert.False(t, created)
}

func TestAssetCreate_ReadBackMiss(t *testing.T) {
	svc := &fakeAssetService{
		createFn: func(fields map[string]any) (int64, error) { return 9, nil },
		getFn: func(id int64) (models.Asset, error) {
			return models.Asset{}, services.ErrAssetNotFound
		},
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodPost, "/api/asset", `{"name":"Widget"}`)
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "Asset retrieval failed")
}

func TestAssetUpdate(t *testing.T) {
	var gotFields map[string]any
	svc := &fakeAssetService{
		updateFn: func(id int64, fields map[string]any) (bool, error) {
			gotFields = fields
			return true, nil
		},
		getFn: func(id int64) (models.Asset, error) { return sample(id), nil },
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodPut, "/api/asset/7", `{"status":"retired"}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Len(t, gotFields, 1)
	assert.Equal(t, "retired", gotFields["status"])
}

func TestAssetUpdate_EmptyPayloadWritesNothing(t *testing.T) {
	updated := false
	svc := &fakeAssetService{
		updateFn: func(id int64, fields map[string]any) (bool, error) {
			updated = true
			return true, nil
		},
	}
	routes := assetRoutes(svc)

	for _, body := range []string{`{}`, `{"status":null}`} {
		resp := doRequest(t, routes, http.MethodPut, "/api/asset/7", body)
		require.Equal(t, http.StatusBadRequest, resp.Code, "body %q", body)
		assert.Contains(t, resp.Body.String(), "No fields provided for update")
	}
	assert.False(t, updated)
}

func TestAssetUpdate_UnknownID(t *testing.T) {
	svc := &fakeAssetService{
		updateFn: func(id int64, fields map[string]any) (bool, error) { return false, nil },
	}
	resp := doRequest(t, assetRoutes(svc), http.MethodPut, "/api/asset/404", `{"status":"retired"}`)
	require.Equal(t, http.StatusNotFound, resp.Code)
	assert.Contains(t, resp.Body.String(), "Asset not found")
}
