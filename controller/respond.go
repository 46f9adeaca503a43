package controller

import (
	"encoding/json"
	"net/http"

	"github.com/SaiNageswarS/go-api-boot/logger"
	"github.com/SaiNageswarS/uzhavar-connect/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}

// writeError maps a status-coded error onto an HTTP status. Internal failures
// are logged and answered with a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	st, _ := status.FromError(err)
	code := httpStatus(st.Code())
	msg := st.Message()
	if code == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get(middleware.RequestIDHeader)),
			zap.Error(err))
		msg = "Internal server error"
	}
	writeJSON(w, code, middleware.ErrorBody{Error: msg, Code: code})
}

func httpStatus(c codes.Code) int {
	switch c {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
