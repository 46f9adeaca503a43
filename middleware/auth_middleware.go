package middleware

import (
	"crypto/subtle"
	"net/http"
	"os"
	"strings"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// APIKeyAuthMiddleware guards directory reloads and rover commands. The key
// is read from API_KEY and accepted as "Authorization: Bearer <key>", a bare
// Authorization value, or X-API-Key.
func APIKeyAuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv("API_KEY")
		if apiKey == "" {
			logger.Error("API_KEY environment variable is not set")
			writeError(w, http.StatusInternalServerError, "Server configuration error")
			return
		}

		providedKey := providedAPIKey(r)
		if providedKey == "" {
			logger.Error("API key missing from request", zap.String("path", r.URL.Path))
			writeError(w, http.StatusUnauthorized, "API key required. Provide it in Authorization header (Bearer <key>) or X-API-Key header")
			return
		}

		if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
			logger.Error("Invalid API key provided", zap.String("path", r.URL.Path))
			writeError(w, http.StatusUnauthorized, "Invalid API key")
			return
		}

		next(w, r)
	}
}

func providedAPIKey(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Fields(authHeader)
		switch {
		case len(parts) == 2 && strings.EqualFold(parts[0], "bearer"):
			return parts[1]
		case len(parts) == 1:
			return parts[0]
		}
		return ""
	}
	return r.Header.Get("X-API-Key")
}
