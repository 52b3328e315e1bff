package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
)

const maxBody = 4 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func statusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized, apperr.KindAuthentication:
		return http.StatusUnauthorized
	case apperr.KindTransport, apperr.KindMalformed, apperr.KindRemote:
		return http.StatusBadGateway
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := apperr.Message(err)
	if status == http.StatusInternalServerError {
		h.Log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{"error": msg, "kind": apperr.KindOf(err).String()})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(v); err != nil {
		return apperr.Wrap(apperr.KindValidation, err, "invalid JSON body")
	}
	return nil
}

func indexParam(r *http.Request) (int, error) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return 0, apperr.Validation("line index must be a number")
	}
	return i, nil
}
