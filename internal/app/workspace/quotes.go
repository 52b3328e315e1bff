package workspace

import (
	"context"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/quote"
)

// Quotes refreshes the listing and returns the quotes matching term.
// Fallbacks follow Catalog, using the last listing held in memory.
func (w *Workspace) Quotes(ctx context.Context, term string) ([]quote.Quote, error) {
	sess, err := w.credentials()
	if err != nil {
		return nil, err
	}
	done := w.track()
	list, err := w.remote.Budgets(ctx, sess)
	done()

	switch {
	case err == nil:
		w.mu.Lock()
		w.quotes = list
		w.mu.Unlock()
		return quote.Filter(list, term), nil
	case apperr.Is(err, apperr.KindMalformed):
		w.log.Warn("workspace: quote list malformed, keeping last listing", zap.String("workspace", w.id), zap.Error(err))
		return w.listed(term), nil
	case apperr.Is(err, apperr.KindTransport):
		return w.listed(term), err
	default:
		return nil, w.checkAuth(ctx, err)
	}
}

func (w *Workspace) listed(term string) []quote.Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	return quote.Filter(w.quotes, term)
}

// Quote returns a quote of the current listing.
func (w *Workspace) Quote(id string) (quote.Quote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	q, ok := w.findLocked(id)
	if !ok {
		return quote.Quote{}, apperr.NotFound("quote %s not found", id)
	}
	return q.Clone(), nil
}

func (w *Workspace) findLocked(id string) (quote.Quote, bool) {
	for _, q := range w.quotes {
		if q.ID == id {
			return q, true
		}
	}
	return quote.Quote{}, false
}

// NewQuote starts an empty draft carrying a snapshot of the provider profile.
func (w *Workspace) NewQuote(ctx context.Context) (quote.Quote, error) {
	if err := w.expectState(Listing); err != nil {
		return quote.Quote{}, err
	}
	sess, err := w.credentials()
	if err != nil {
		return quote.Quote{}, err
	}

	// The draft can be built from cached data; only a rejected session stops it.
	p, err := w.Provider(ctx)
	if apperr.Is(err, apperr.KindUnauthorized) {
		return quote.Quote{}, err
	}
	if p.Name == "" {
		p = provider.Default()
	}
	if _, err := w.Catalog(ctx); apperr.Is(err, apperr.KindUnauthorized) {
		return quote.Quote{}, err
	}
	w.mu.Lock()
	listed := w.quotes != nil
	w.mu.Unlock()
	if !listed {
		if _, err := w.Quotes(ctx, ""); apperr.Is(err, apperr.KindUnauthorized) {
			return quote.Quote{}, err
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Listing {
		return quote.Quote{}, apperr.Conflict("cannot start a quote while %s", w.state)
	}
	q := quote.New(w.newID(), quote.NextNumber(w.quotes), w.now(), p, sess.User.Tenant())
	w.draft = &q
	w.draftIsNew = true
	w.state = Editing
	w.pendingDelete = ""
	return q.Clone(), nil
}

func (w *Workspace) Open(id string) (quote.Quote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Editing {
		return quote.Quote{}, apperr.Conflict("close the editor before opening a quote")
	}
	q, ok := w.findLocked(id)
	if !ok {
		return quote.Quote{}, apperr.NotFound("quote %s not found", id)
	}
	w.state = Viewing
	w.viewingID = id
	return q.Clone(), nil
}

// Edit moves the viewed quote into the editor. Edits apply to a copy until saved.
func (w *Workspace) Edit(id string) (quote.Quote, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Viewing || w.viewingID != id {
		return quote.Quote{}, apperr.Conflict("quote %s is not being viewed", id)
	}
	q, ok := w.findLocked(id)
	if !ok {
		return quote.Quote{}, apperr.NotFound("quote %s not found", id)
	}
	draft := q.Clone()
	w.draft = &draft
	w.draftIsNew = false
	w.state = Editing
	w.pendingDelete = ""
	return draft.Clone(), nil
}

// Back returns to the listing. Leaving the editor discards the draft.
func (w *Workspace) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.saving {
		return apperr.Conflict("a save is in progress")
	}
	w.state = Listing
	w.viewingID = ""
	w.draft = nil
	w.draftIsNew = false
	return nil
}

// Save writes the draft and returns to the listing. Only one save may be in
// flight; the editor is read-only meanwhile.
func (w *Workspace) Save(ctx context.Context) (quote.Quote, error) {
	sess, err := w.credentials()
	if err != nil {
		return quote.Quote{}, err
	}

	w.mu.Lock()
	if w.state != Editing || w.draft == nil {
		w.mu.Unlock()
		return quote.Quote{}, apperr.Conflict("no quote is being edited")
	}
	if w.saving {
		w.mu.Unlock()
		return quote.Quote{}, apperr.Conflict("a save is already in progress")
	}
	w.saving = true
	draft := w.draft.Clone()
	isNew := w.draftIsNew
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.saving = false
		w.mu.Unlock()
	}()

	draft.Recalculate()
	done := w.track()
	var saved *quote.Quote
	if isNew {
		saved, err = w.remote.CreateBudget(ctx, sess, draft)
	} else {
		saved, err = w.remote.UpdateBudget(ctx, sess, draft)
	}
	done()
	if err != nil {
		w.log.Warn("workspace: save failed", zap.String("workspace", w.id), zap.String("quote", draft.Number), zap.Error(err))
		return quote.Quote{}, w.checkAuth(ctx, err)
	}

	var result quote.Quote
	if saved == nil {
		result = w.refetchSaved(ctx, draft, isNew)
	} else {
		result = merge(*saved, draft)
		w.mu.Lock()
		w.quotes = upsert(w.quotes, result)
		w.mu.Unlock()
	}

	w.mu.Lock()
	w.draft = nil
	w.draftIsNew = false
	w.state = Listing
	w.viewingID = ""
	w.mu.Unlock()

	w.log.Info("workspace: quote saved", zap.String("workspace", w.id), zap.String("quote", result.Number), zap.Bool("created", isNew))
	return result, nil
}

// refetchSaved reloads the listing after a write that returned no body.
func (w *Workspace) refetchSaved(ctx context.Context, draft quote.Quote, isNew bool) quote.Quote {
	list, err := w.Quotes(ctx, "")
	if err != nil {
		w.log.Warn("workspace: reload after save failed", zap.String("workspace", w.id), zap.Error(err))
	} else {
		for _, q := range list {
			if (!isNew && q.ID == draft.ID) || (isNew && q.Number == draft.Number) {
				return q
			}
		}
	}
	// Keep the written quote listed so its number is not handed out again.
	w.mu.Lock()
	w.quotes = upsert(w.quotes, draft)
	w.mu.Unlock()
	return draft
}

// merge fills what the backend left out of a written quote with the draft's
// values. A number assigned by the backend wins.
func merge(saved, draft quote.Quote) quote.Quote {
	if saved.ID == "" {
		saved.ID = draft.ID
	}
	if saved.Number == "" {
		saved.Number = draft.Number
	}
	if saved.CreatedAt.IsZero() {
		saved.CreatedAt = draft.CreatedAt
	}
	if saved.CompanyID == "" {
		saved.CompanyID = draft.CompanyID
	}
	if saved.Provider == provider.Default() {
		saved.Provider = draft.Provider
	}
	if len(saved.Items) == 0 && len(draft.Items) > 0 {
		saved.Items = draft.Items
	}
	saved.Recalculate()
	return saved
}

// upsert replaces q in list or puts it first.
func upsert(list []quote.Quote, q quote.Quote) []quote.Quote {
	for i := range list {
		if list[i].ID == q.ID {
			out := append([]quote.Quote(nil), list...)
			out[i] = q
			return out
		}
	}
	return append([]quote.Quote{q}, list...)
}

// RequestDelete records a deletion that still needs ConfirmDelete.
func (w *Workspace) RequestDelete(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == Editing {
		return apperr.Conflict("close the editor before deleting a quote")
	}
	if _, ok := w.findLocked(id); !ok {
		return apperr.NotFound("quote %s not found", id)
	}
	w.pendingDelete = id
	return nil
}

func (w *Workspace) CancelDelete() {
	w.mu.Lock()
	w.pendingDelete = ""
	w.mu.Unlock()
}

// ConfirmDelete deletes the quote whose deletion was requested and drops it
// from the listing without a reload.
func (w *Workspace) ConfirmDelete(ctx context.Context, id string) error {
	sess, err := w.credentials()
	if err != nil {
		return err
	}
	w.mu.Lock()
	pending, state := w.pendingDelete, w.state
	w.mu.Unlock()
	if state == Editing {
		return apperr.Conflict("close the editor before deleting a quote")
	}
	if pending == "" || pending != id {
		return apperr.Conflict("deletion of quote %s was not requested", id)
	}

	done := w.track()
	err = w.remote.DeleteBudget(ctx, sess, id)
	done()
	if err != nil {
		return w.checkAuth(ctx, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	kept := make([]quote.Quote, 0, len(w.quotes))
	for _, q := range w.quotes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	w.quotes = kept
	if w.pendingDelete == id {
		w.pendingDelete = ""
	}
	if w.viewingID == id {
		w.viewingID = ""
		w.state = Listing
	}
	return nil
}

func (w *Workspace) expectState(s State) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != s {
		return apperr.Conflict("workspace is %s, not %s", w.state, s)
	}
	return nil
}
