package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"roombook/internal/store"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"message": message})
}

// writeStoreError maps storage failures to 500 and everything else to a
// generic internal error. Nothing here is retried.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrUnavailable) {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("storage failure")
		writeMessage(w, http.StatusInternalServerError, "Storage unavailable")
		return
	}
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("internal error")
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
