package router

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"promo-admin/internal/handler"
	"promo-admin/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAPIKey = "router-test-key"

// stubPromoService records which operation the router reached.
type stubPromoService struct {
	called string
	id     int64
}

func (s *stubPromoService) List(ctx context.Context) ([]model.Promo, error) {
	s.called = "List"
	return []model.Promo{{ID: 1, Judul: "Promo"}}, nil
}

func (s *stubPromoService) Get(ctx context.Context, id int64) (*model.Promo, error) {
	s.called, s.id = "Get", id
	return &model.Promo{ID: id, Judul: "Promo"}, nil
}

func (s *stubPromoService) Create(ctx context.Context, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	s.called = "Create"
	return &model.Promo{ID: 1}, nil
}

func (s *stubPromoService) Update(ctx context.Context, id int64, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	s.called, s.id = "Update", id
	return &model.Promo{ID: id}, nil
}

func (s *stubPromoService) Delete(ctx context.Context, id int64) error {
	s.called, s.id = "Delete", id
	return nil
}

// stubMenuService records which operation the router reached.
type stubMenuService struct {
	called string
}

func (s *stubMenuService) List(ctx context.Context) ([]model.Menu, error) {
	s.called = "List"
	return []model.Menu{}, nil
}

func (s *stubMenuService) Get(ctx context.Context, id uuid.UUID) (*model.Menu, error) {
	s.called = "Get"
	return &model.Menu{IDMenu: id}, nil
}

func (s *stubMenuService) Create(ctx context.Context, rawID string, input map[string]string) (*model.Menu, error) {
	s.called = "Create"
	return &model.Menu{IDMenu: uuid.New()}, nil
}

func (s *stubMenuService) Update(ctx context.Context, id uuid.UUID, input map[string]string) (*model.Menu, error) {
	s.called = "Update"
	return &model.Menu{IDMenu: id}, nil
}

func (s *stubMenuService) Delete(ctx context.Context, id uuid.UUID) error {
	s.called = "Delete"
	return nil
}

func newTestRouter(t *testing.T) (http.Handler, *stubPromoService, *stubMenuService, string) {
	t.Helper()

	logger := zerolog.Nop()
	views, err := handler.NewViews()
	require.NoError(t, err)

	promos := &stubPromoService{}
	menus := &stubMenuService{}
	imageDir := t.TempDir()

	h := New(
		handler.NewPromoHandler(promos, views, 1<<20, logger),
		handler.NewMenuHandler(menus, logger),
		imageDir,
		testAPIKey,
		1<<20,
		logger,
	)
	return h, promos, menus, imageDir
}

func TestRouter_PromoRoutes(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		form           url.Values
		expectedStatus int
		expectedCall   string
		expectedID     int64
	}{
		{name: "Index", method: http.MethodGet, path: "/admin/promosi", expectedStatus: http.StatusOK, expectedCall: "List"},
		{name: "Create form", method: http.MethodGet, path: "/admin/promosi/create", expectedStatus: http.StatusOK},
		{name: "Store", method: http.MethodPost, path: "/admin/promosi", form: url.Values{"judul": {"x"}}, expectedStatus: http.StatusSeeOther, expectedCall: "Create"},
		{name: "Edit form", method: http.MethodGet, path: "/admin/promosi/4/edit", expectedStatus: http.StatusOK, expectedCall: "Get", expectedID: 4},
		{name: "Update via _method", method: http.MethodPost, path: "/admin/promosi/4", form: url.Values{"_method": {"PUT"}}, expectedStatus: http.StatusSeeOther, expectedCall: "Update", expectedID: 4},
		{name: "Destroy via _method", method: http.MethodPost, path: "/admin/promosi/6", form: url.Values{"_method": {"DELETE"}}, expectedStatus: http.StatusSeeOther, expectedCall: "Delete", expectedID: 6},
		{name: "Native DELETE", method: http.MethodDelete, path: "/admin/promosi/6", expectedStatus: http.StatusSeeOther, expectedCall: "Delete", expectedID: 6},
		{name: "Unknown admin path", method: http.MethodGet, path: "/admin/promosi/6/show", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, promos, _, _ := newTestRouter(t)

			var body io.Reader
			if tt.form != nil {
				body = strings.NewReader(tt.form.Encode())
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			if tt.form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			req.AddCookie(&http.Cookie{Name: "api_key", Value: testAPIKey})
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedCall, promos.called)
			assert.Equal(t, tt.expectedID, promos.id)
		})
	}
}

func TestRouter_OversizedUploadIsRejected(t *testing.T) {
	logger := zerolog.Nop()
	views, err := handler.NewViews()
	require.NoError(t, err)

	promos := &stubPromoService{}
	router := New(
		handler.NewPromoHandler(promos, views, 1<<10, logger),
		handler.NewMenuHandler(&stubMenuService{}, logger),
		t.TempDir(),
		testAPIKey,
		1<<10,
		logger,
	)

	for _, path := range []string{"/admin/promosi", "/admin/promosi/1"} {
		t.Run(path, func(t *testing.T) {
			var buf bytes.Buffer
			mw := multipart.NewWriter(&buf)
			require.NoError(t, mw.WriteField("_method", "PUT"))
			part, err := mw.CreateFormFile("image", "big.png")
			require.NoError(t, err)
			_, err = part.Write(bytes.Repeat([]byte{0x42}, 4<<10))
			require.NoError(t, err)
			require.NoError(t, mw.Close())

			req := httptest.NewRequest(http.MethodPost, path, &buf)
			req.Header.Set("Content-Type", mw.FormDataContentType())
			req.AddCookie(&http.Cookie{Name: "api_key", Value: testAPIKey})
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			assert.Empty(t, promos.called)
		})
	}
}

func TestRouter_Auth(t *testing.T) {
	router, _, menus, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/promosi", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, menus.called)

	req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "List", menus.called)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/promosi", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
}

func TestRouter_Images(t *testing.T) {
	router, _, _, imageDir := newTestRouter(t)

	require.NoError(t, os.WriteFile(filepath.Join(imageDir, "banner.png"), []byte("png-bytes"), 0644))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/image/banner.png", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/image/missing.png", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/image/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
