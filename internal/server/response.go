package server

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/shelfview/pkg/errors"
	"github.com/matzehuels/shelfview/pkg/observability"
)

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps error codes onto HTTP statuses.
func statusFor(code errors.Code) int {
	switch code.Kind() {
	case errors.KindInvalid:
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindConflict:
		return http.StatusConflict
	case errors.KindUnsupported:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusFor(code)
	observability.HTTP().OnError(r.Context(), r.Method, routeOf(r), err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeJSON(w, status, errorResponse{Error: "internal error", Code: errors.ErrCodeInternal})
		return
	}
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: code})
}
