package workspace

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/infra/state"
)

// Catalog fetches the company catalog. A malformed answer falls back to the
// cache without an error. When the backend is unreachable the cached list is
// returned together with the transport error.
func (w *Workspace) Catalog(ctx context.Context) ([]catalog.Item, error) {
	sess, err := w.credentials()
	if err != nil {
		return nil, err
	}
	done := w.track()
	items, err := w.remote.Products(ctx, sess)
	done()

	switch {
	case err == nil:
		w.mu.Lock()
		w.catalog = items
		w.mu.Unlock()
		w.saveCache(ctx, state.KindCatalog, items)
		return cloneItems(items), nil
	case apperr.Is(err, apperr.KindMalformed):
		w.log.Warn("workspace: catalog payload malformed, using cache", zap.String("workspace", w.id), zap.Error(err))
		return w.cachedCatalog(ctx), nil
	case apperr.Is(err, apperr.KindTransport):
		return w.cachedCatalog(ctx), err
	default:
		return nil, w.checkAuth(ctx, err)
	}
}

func (w *Workspace) cachedCatalog(ctx context.Context) []catalog.Item {
	w.mu.Lock()
	items := w.catalog
	w.mu.Unlock()
	if items != nil {
		return cloneItems(items)
	}
	var cached []catalog.Item
	if w.loadCache(ctx, state.KindCatalog, &cached) {
		w.mu.Lock()
		if w.catalog == nil {
			w.catalog = cached
		}
		w.mu.Unlock()
		return cloneItems(cached)
	}
	return []catalog.Item{}
}

func (w *Workspace) CreateCatalogItem(ctx context.Context, it catalog.Item) ([]catalog.Item, error) {
	it = it.Normalize()
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return w.mutateCatalog(ctx, func(ctx context.Context) error {
		sess, err := w.credentials()
		if err != nil {
			return err
		}
		it.CompanyID = sess.User.Tenant()
		return w.remote.CreateProduct(ctx, sess, it)
	})
}

func (w *Workspace) UpdateCatalogItem(ctx context.Context, it catalog.Item) ([]catalog.Item, error) {
	it = it.Normalize()
	if strings.TrimSpace(it.ID) == "" {
		return nil, apperr.Validation("item id is required")
	}
	if err := it.Validate(); err != nil {
		return nil, err
	}
	return w.mutateCatalog(ctx, func(ctx context.Context) error {
		sess, err := w.credentials()
		if err != nil {
			return err
		}
		it.CompanyID = sess.User.Tenant()
		return w.remote.UpdateProduct(ctx, sess, it)
	})
}

func (w *Workspace) DeleteCatalogItem(ctx context.Context, id string) ([]catalog.Item, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperr.Validation("item id is required")
	}
	return w.mutateCatalog(ctx, func(ctx context.Context) error {
		sess, err := w.credentials()
		if err != nil {
			return err
		}
		return w.remote.DeleteProduct(ctx, sess, id)
	})
}

// mutateCatalog runs a remote write and then re-reads the whole catalog.
func (w *Workspace) mutateCatalog(ctx context.Context, write func(context.Context) error) ([]catalog.Item, error) {
	done := w.track()
	err := write(ctx)
	done()
	if err != nil {
		return nil, w.checkAuth(ctx, err)
	}
	return w.Catalog(ctx)
}

func cloneItems(items []catalog.Item) []catalog.Item {
	out := make([]catalog.Item, len(items))
	copy(out, items)
	return out
}
