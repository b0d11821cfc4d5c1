package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// APIKeyCookie is the cookie browsers use to carry the API key on admin pages.
const APIKeyCookie = "api_key"

// CORS adds CORS headers to /api responses.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isPublic reports whether a request may skip authentication.
func isPublic(r *http.Request) bool {
	path := r.URL.Path
	switch {
	case path == "/health":
		return true
	case strings.HasPrefix(path, "/image/"):
		return true
	case path == "/api/promosi" && (r.Method == http.MethodGet || r.Method == http.MethodHead):
		return true
	}
	return false
}

// APIKeyAuth validates the API key from the X-API-Key header or the api_key
// cookie on every route that is not public.
func APIKeyAuth(apiKey string, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublic(r) {
				next.ServeHTTP(w, r)
				return
			}

			providedKey := r.Header.Get("X-API-Key")
			if providedKey == "" {
				if cookie, err := r.Cookie(APIKeyCookie); err == nil {
					providedKey = cookie.Value
				}
			}

			if providedKey == "" {
				logger.Warn().Str("path", r.URL.Path).Msg("missing API key")
				http.Error(w, "unauthorised: missing API key", http.StatusUnauthorized)
				return
			}

			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				logger.Warn().
					Str("path", r.URL.Path).
					Str("provided_key", providedKey[:min(8, len(providedKey))]).
					Msg("invalid API key")
				http.Error(w, "unauthorised: invalid API key", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// MethodOverride lets HTML forms, which can only POST, reach PUT, PATCH and
// DELETE routes through the `_method` field or the X-HTTP-Method-Override
// header. Form bodies are parsed here with maxBytes as the size limit, and a
// body over the limit is answered with 413.
func MethodOverride(maxBytes int64, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				next.ServeHTTP(w, r)
				return
			}

			method := r.Header.Get("X-HTTP-Method-Override")
			if method == "" && isFormBody(r) {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
				err := r.ParseMultipartForm(multipartMemory)
				var tooLarge *http.MaxBytesError
				switch {
				case err == nil, errors.Is(err, http.ErrNotMultipart):
					method = r.PostFormValue("_method")
				case errors.As(err, &tooLarge):
					// The override field is unreadable, so no route would match the intended method.
					logger.Warn().Int64("limit", tooLarge.Limit).Str("path", r.URL.Path).Msg("upload too large")
					http.Error(w, fmt.Sprintf("Ukuran unggahan melebihi batas %d byte", tooLarge.Limit),
						http.StatusRequestEntityTooLarge)
					return
				default:
					// Left to the handler, which reports the parse failure.
					logger.Debug().Err(err).Str("path", r.URL.Path).Msg("form parse failed during method override")
				}
			}

			switch m := strings.ToUpper(strings.TrimSpace(method)); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				logger.Debug().Str("path", r.URL.Path).Str("method", m).Msg("method overridden")
				r.Method = m
			}

			next.ServeHTTP(w, r)
		})
	}
}

// multipartMemory is the part of a multipart body kept in memory.
const multipartMemory = 8 << 20

func isFormBody(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "multipart/form-data") ||
		strings.HasPrefix(ct, "application/x-www-form-urlencoded")
}

// Logging logs HTTP requests with timing information.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Create a response writer wrapper to capture status code
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(rw, r)

			duration := time.Since(start)
			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rw.statusCode).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("http request")
		})
	}
}

// Recovery recovers from panics and returns a 500 error.
func Recovery(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error().
						Interface("panic", err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Msg("panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"error": "INTERNAL_ERROR", "message": "internal server error"}`))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
