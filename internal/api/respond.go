package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hireloop/hireloop/internal/assessment"
)

// The SPA consumes bodies wrapped in a {"data": ...} envelope; errors carry a
// {"message": ...} body so the client can surface them in a banner.

func writeData(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{"data": v}); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"message": msg})
}

func writeError(w http.ResponseWriter, err error) {
	if se, ok := assessment.AsServiceError(err); ok {
		writeMessage(w, statusFor(se.Code), se.Message)
		return
	}
	log.Printf("api: internal error: %v", err)
	writeMessage(w, http.StatusInternalServerError, "internal error")
}

func statusFor(code assessment.ErrorCode) int {
	switch code {
	case assessment.ErrorInvalid:
		return http.StatusBadRequest
	case assessment.ErrorNotFound:
		return http.StatusNotFound
	case assessment.ErrorConflict:
		return http.StatusConflict
	case assessment.ErrorUnauthorized:
		return http.StatusUnauthorized
	case assessment.ErrorUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}
