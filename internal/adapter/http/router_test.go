package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/estate-admin/internal/adapter/http/middleware"
	"github.com/your-org/estate-admin/internal/listing/usecase"
	"github.com/your-org/estate-admin/internal/platform/logger"
)

const (
	testSecret   = "router-test-secret"
	testAdminUID = "uid-admin-001"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewLogger()
	h := NewHandler(usecase.NewDraftUsecase(log), nil, nil, nil, log)
	return NewRouter(h, testSecret, testAdminUID, log)
}

func adminToken(t *testing.T) string {
	t.Helper()
	claims := middleware.Claims{
		UserID: testAdminUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func TestRouter_HealthzIsPublic(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRouter_APIRequiresAuth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_DraftLifecycle(t *testing.T) {
	router := testRouter(t)
	token := adminToken(t)

	do := func(method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != nil {
			req = httptest.NewRequest(method, path, body)
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		req.Header.Set("Authorization", token)
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	// Open a draft.
	rec := do(http.MethodPost, "/api/drafts", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		DraftID string `json:"draftId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.DraftID)
	base := "/api/drafts/" + created.DraftID

	// Set a scalar field.
	rec = do(http.MethodPatch, base+"/fields",
		bytes.NewBufferString(`{"name":"city","value":"Almaty"}`), "application/json")
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Rebuild the tree to 3 floors, then floor 2 to 2 apartments.
	rec = do(http.MethodPut, base+"/floors",
		bytes.NewBufferString(`{"count":3}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(http.MethodPut, base+"/floors/1/apartments",
		bytes.NewBufferString(`{"count":2}`), "application/json")
	require.Equal(t, http.StatusOK, rec.Code)

	var view draftView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "Almaty", view.City)
	assert.Equal(t, 3, view.NumFloors)
	require.Len(t, view.Floors, 3)
	require.Len(t, view.Floors[1].Apartments, 2)
	assert.Equal(t, "2_02", view.Floors[1].Apartments[1].ID)

	// Invalid count is a 400 and leaves the draft alone.
	rec = do(http.MethodPut, base+"/floors",
		bytes.NewBufferString(`{"count":0}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Stage the primary image; fetch it back through the preview endpoint.
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "facade.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	rec = do(http.MethodPost, base+"/image", &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, rec.Code)
	var staged struct {
		PreviewToken string `json:"previewToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &staged))
	assert.True(t, strings.HasPrefix(staged.PreviewToken, "preview-"))

	rec = do(http.MethodGet, base+"/previews/"+staged.PreviewToken, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image-bytes", rec.Body.String())

	// Discard; the draft is gone.
	rec = do(http.MethodDelete, base, nil, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(http.MethodGet, base, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
