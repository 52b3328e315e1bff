package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/app/http/middleware"
	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/format"
)

type CatalogResponse struct {
	Items   []catalog.Item `json:"items"`
	Offline bool           `json:"offline,omitempty"`
}

// CatalogItemRequest takes the price either as a number/decimal string in
// "price" or as the masked field text in "price_input" ("1.500,00").
type CatalogItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	PriceInput  string          `json:"price_input"`
	Unit        string          `json:"unit"`
	Type        string          `json:"type"`
}

func (req CatalogItemRequest) item(id string) (catalog.Item, error) {
	price, err := req.price()
	if err != nil {
		return catalog.Item{}, err
	}
	return catalog.Item{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		Unit:        req.Unit,
		Type:        catalog.ParseType(req.Type),
	}, nil
}

func (req CatalogItemRequest) price() (decimal.Decimal, error) {
	if strings.TrimSpace(req.PriceInput) != "" {
		d, ok := format.ParseCurrencyInput(req.PriceInput)
		if !ok {
			return decimal.Zero, apperr.Validation("price_input has no digits")
		}
		return d, nil
	}
	if len(req.Price) == 0 || string(req.Price) == "null" {
		return decimal.Zero, nil
	}
	var s string
	if json.Unmarshal(req.Price, &s) == nil {
		d, err := format.ParseDecimal(s)
		if err != nil {
			return decimal.Zero, apperr.Validation("price %q is not a number", s)
		}
		return d, nil
	}
	d, err := decimal.NewFromString(string(req.Price))
	if err != nil {
		return decimal.Zero, apperr.Validation("price is not a number")
	}
	return d, nil
}

func (h *Handlers) writeCatalog(w http.ResponseWriter, r *http.Request, items []catalog.Item, err error) {
	if err != nil && !apperr.Is(err, apperr.KindTransport) {
		h.writeError(w, r, err)
		return
	}
	if items == nil {
		items = []catalog.Item{}
	}
	writeJSON(w, http.StatusOK, CatalogResponse{Items: items, Offline: err != nil})
}

func (h *Handlers) ListCatalog(w http.ResponseWriter, r *http.Request) {
	items, err := middleware.Workspace(r.Context()).Catalog(r.Context())
	h.writeCatalog(w, r, items, err)
}

func (h *Handlers) CreateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var req CatalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	it, err := req.item("")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := middleware.Workspace(r.Context()).CreateCatalogItem(r.Context(), it)
	h.writeCatalog(w, r, items, err)
}

func (h *Handlers) UpdateCatalogItem(w http.ResponseWriter, r *http.Request) {
	var req CatalogItemRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	it, err := req.item(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	items, err := middleware.Workspace(r.Context()).UpdateCatalogItem(r.Context(), it)
	h.writeCatalog(w, r, items, err)
}

func (h *Handlers) DeleteCatalogItem(w http.ResponseWriter, r *http.Request) {
	items, err := middleware.Workspace(r.Context()).DeleteCatalogItem(r.Context(), chi.URLParam(r, "id"))
	h.writeCatalog(w, r, items, err)
}
