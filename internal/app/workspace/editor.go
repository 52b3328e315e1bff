package workspace

import (
	"context"

	"github.com/shopspring/decimal"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/quote"
)

func (w *Workspace) Draft() (quote.Quote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Editing || w.draft == nil {
		return quote.Quote{}, apperr.Conflict("no quote is being edited")
	}
	return w.draft.Clone(), nil
}

// edit applies fn to the draft under the lock.
func (w *Workspace) edit(fn func(d *quote.Quote) error) (quote.Quote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Editing || w.draft == nil {
		return quote.Quote{}, apperr.Conflict("no quote is being edited")
	}
	if w.saving {
		return quote.Quote{}, apperr.Conflict("a save is in progress")
	}
	if err := fn(w.draft); err != nil {
		return quote.Quote{}, err
	}
	return w.draft.Clone(), nil
}

// AddItem adds a catalog item to the draft, or bumps its quantity by one.
func (w *Workspace) AddItem(catalogID string) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		it, ok := catalog.Find(w.catalog, catalogID)
		if !ok {
			return apperr.NotFound("catalog item %s not found", catalogID)
		}
		d.AddFromCatalog(it)
		return nil
	})
}

func (w *Workspace) UpdateQuantity(index int, raw string) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		return d.UpdateQuantity(index, raw)
	})
}

func (w *Workspace) SetQuantity(index int, qty decimal.Decimal) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		return d.SetQuantity(index, qty)
	})
}

func (w *Workspace) RemoveItem(index int) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		return d.RemoveItem(index)
	})
}

func (w *Workspace) UpdateCustomer(c quote.Customer) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		d.Customer = c.Normalize()
		return nil
	})
}

func (w *Workspace) SetNotes(text string) (quote.Quote, error) {
	return w.edit(func(d *quote.Quote) error {
		d.Notes = text
		return nil
	})
}

// SuggestNotes asks the notes suggester for a text and puts it in the draft.
func (w *Workspace) SuggestNotes(ctx context.Context) (quote.Quote, error) {
	draft, err := w.Draft()
	if err != nil {
		return quote.Quote{}, err
	}
	if w.notes == nil {
		return quote.Quote{}, apperr.New(apperr.KindInternal, "notes suggestion is not configured")
	}
	done := w.track()
	text := w.notes.Suggest(ctx, draft)
	done()
	return w.SetNotes(text)
}
