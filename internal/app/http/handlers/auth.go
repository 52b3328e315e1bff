package handlers

import (
	"net/http"

	"orcafacil/go_backend/internal/app/http/middleware"
	"orcafacil/go_backend/internal/domain/session"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	WorkspaceID string       `json:"workspace_id"`
	User        session.User `json:"user"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	ws, err := h.Workspaces.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{WorkspaceID: ws.ID(), User: ws.User()})
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	ws := middleware.Workspace(r.Context())
	if err := h.Workspaces.Logout(r.Context(), ws.ID()); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Session(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.Workspace(r.Context()).Status())
}
