package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"
)

// Recovery turns a handler panic into a JSON 500.
func Recovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("Panic recovered",
					zap.String("path", r.URL.Path),
					zap.String("panic", fmt.Sprint(rec)),
					zap.ByteString("stack", debug.Stack()))
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next(w, r)
	}
}

// Chain wraps h so that the first middleware is outermost.
func Chain(h http.HandlerFunc, mws ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Standard is the chain every route gets: logging, then recovery.
func Standard(h http.HandlerFunc) http.HandlerFunc {
	return Chain(h, Logging, Recovery)
}

// Protected is Standard plus the API key check.
func Protected(h http.HandlerFunc) http.HandlerFunc {
	return Chain(h, Logging, Recovery, APIKeyAuthMiddleware)
}

// Handler applies Standard to an http.Handler, for mounts outside the REST
// route table such as the MCP endpoint.
func Handler(next http.Handler) http.Handler {
	return Standard(next.ServeHTTP)
}
