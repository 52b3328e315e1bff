package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"orcafacil/go_backend/internal/app/http/middleware"
	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/quote"
)

type QuotesResponse struct {
	Quotes  []quote.Quote `json:"quotes"`
	Offline bool          `json:"offline,omitempty"`
}

func (h *Handlers) ListQuotes(w http.ResponseWriter, r *http.Request) {
	list, err := middleware.Workspace(r.Context()).Quotes(r.Context(), r.URL.Query().Get("q"))
	if err != nil && !apperr.Is(err, apperr.KindTransport) {
		h.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []quote.Quote{}
	}
	writeJSON(w, http.StatusOK, QuotesResponse{Quotes: list, Offline: err != nil})
}

func (h *Handlers) NewQuote(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).NewQuote(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (h *Handlers) OpenQuote(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Open(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) EditQuote(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Edit(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) RequestDelete(w http.ResponseWriter, r *http.Request) {
	ws := middleware.Workspace(r.Context())
	if err := ws.RequestDelete(chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, ws.Status())
}

func (h *Handlers) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	if err := middleware.Workspace(r.Context()).ConfirmDelete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) CancelDelete(w http.ResponseWriter, r *http.Request) {
	middleware.Workspace(r.Context()).CancelDelete()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) Back(w http.ResponseWriter, r *http.Request) {
	ws := middleware.Workspace(r.Context())
	if err := ws.Back(); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ws.Status())
}

func (h *Handlers) ShareText(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Quote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(quote.ShareText(q)))
}

func (h *Handlers) WhatsApp(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Quote(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": quote.WhatsAppURL(q)})
}
