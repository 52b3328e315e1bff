package handlers

import (
	"net/http"

	"orcafacil/go_backend/internal/app/http/middleware"
	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/provider"
)

type ProviderResponse struct {
	provider.Info
	Offline bool `json:"offline,omitempty"`
}

func (h *Handlers) GetProvider(w http.ResponseWriter, r *http.Request) {
	p, err := middleware.Workspace(r.Context()).Provider(r.Context())
	if err != nil && !apperr.Is(err, apperr.KindTransport) {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProviderResponse{Info: p, Offline: err != nil})
}

func (h *Handlers) SaveProvider(w http.ResponseWriter, r *http.Request) {
	var req provider.Info
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	saved, err := middleware.Workspace(r.Context()).SaveProvider(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProviderResponse{Info: saved})
}
