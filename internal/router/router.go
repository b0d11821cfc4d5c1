package router

import (
	"net/http"
	"strings"

	"promo-admin/internal/handler"
	"promo-admin/internal/middleware"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// imageDir is served read-only under /image/.
func New(
	promoHandler *handler.PromoHandler,
	menuHandler *handler.MenuHandler,
	imageDir string,
	apiKey string,
	maxUploadBytes int64,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Uploaded images
	mux.Handle("GET /image/", http.StripPrefix("/image/", noDirectoryListing(http.FileServer(http.Dir(imageDir)))))

	// Promo admin pages
	mux.HandleFunc("GET /admin/promosi", promoHandler.Index)
	mux.HandleFunc("GET /admin/promosi/create", promoHandler.Create)
	mux.HandleFunc("POST /admin/promosi", promoHandler.Store)
	mux.HandleFunc("GET /admin/promosi/{id}/edit", promoHandler.Edit)
	mux.HandleFunc("PUT /admin/promosi/{id}", promoHandler.Update)
	mux.HandleFunc("PATCH /admin/promosi/{id}", promoHandler.Update)
	mux.HandleFunc("DELETE /admin/promosi/{id}", promoHandler.Destroy)

	// Public promo listing
	mux.HandleFunc("GET /api/promosi", promoHandler.List)

	// Menu API
	mux.HandleFunc("GET /api/menu", menuHandler.List)
	mux.HandleFunc("POST /api/menu", menuHandler.Create)
	mux.HandleFunc("GET /api/menu/{id}", menuHandler.GetByID)
	mux.HandleFunc("PUT /api/menu/{id}", menuHandler.Update)
	mux.HandleFunc("PATCH /api/menu/{id}", menuHandler.Update)
	mux.HandleFunc("DELETE /api/menu/{id}", menuHandler.Delete)

	// Apply middleware in order: Recovery -> Logging -> CORS -> APIKeyAuth -> MethodOverride
	var handler http.Handler = mux
	handler = middleware.MethodOverride(maxUploadBytes, logger)(handler)
	handler = middleware.APIKeyAuth(apiKey, logger)(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}

// noDirectoryListing answers directory requests with 404 instead of an index.
func noDirectoryListing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
