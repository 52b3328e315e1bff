package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/app/http/middleware"
	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/quote"
)

type NotesRequest struct {
	Notes string `json:"notes"`
}

type AddItemRequest struct {
	CatalogID string `json:"catalog_id"`
}

// QuantityRequest takes a JSON number or the text typed in the field ("2,5").
type QuantityRequest struct {
	Quantity json.RawMessage `json:"quantity"`
}

func (h *Handlers) respondDraft(w http.ResponseWriter, r *http.Request, q quote.Quote, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handlers) Draft(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Draft()
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var req quote.Customer
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := middleware.Workspace(r.Context()).UpdateCustomer(req)
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) SetNotes(w http.ResponseWriter, r *http.Request) {
	var req NotesRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := middleware.Workspace(r.Context()).SetNotes(req.Notes)
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) SuggestNotes(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).SuggestNotes(r.Context())
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.CatalogID == "" {
		h.writeError(w, r, apperr.Validation("catalog_id is required"))
		return
	}
	q, err := middleware.Workspace(r.Context()).AddItem(req.CatalogID)
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) UpdateItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req QuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	ws := middleware.Workspace(r.Context())
	var raw string
	if json.Unmarshal(req.Quantity, &raw) == nil {
		q, err := ws.UpdateQuantity(index, raw)
		h.respondDraft(w, r, q, err)
		return
	}
	qty, err := decimal.NewFromString(string(req.Quantity))
	if err != nil {
		// Unreadable input counts as zero, like a garbled text field.
		qty = decimal.Zero
	}
	q, err := ws.SetQuantity(index, qty)
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) RemoveItem(w http.ResponseWriter, r *http.Request) {
	index, err := indexParam(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	q, err := middleware.Workspace(r.Context()).RemoveItem(index)
	h.respondDraft(w, r, q, err)
}

func (h *Handlers) Save(w http.ResponseWriter, r *http.Request) {
	q, err := middleware.Workspace(r.Context()).Save(r.Context())
	h.respondDraft(w, r, q, err)
}
