package workspace

import (
	"context"

	"go.uber.org/zap"

	"orcafacil/go_backend/internal/domain/apperr"
	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/infra/state"
)

// Provider returns the company profile, or the default profile when none was
// saved yet. Read failures fall back like Catalog does.
func (w *Workspace) Provider(ctx context.Context) (provider.Info, error) {
	sess, err := w.credentials()
	if err != nil {
		return provider.Info{}, err
	}
	done := w.track()
	info, err := w.remote.Company(ctx, sess)
	done()

	switch {
	case err == nil:
		p := provider.Default()
		if info != nil {
			p = *info
		}
		if p.Name == "" {
			p.Name = provider.DefaultName
		}
		if p.CompanyID == "" {
			p.CompanyID = sess.User.Tenant()
		}
		w.mu.Lock()
		w.provider = &p
		w.mu.Unlock()
		w.saveCache(ctx, state.KindProvider, p)
		return p, nil
	case apperr.Is(err, apperr.KindMalformed):
		w.log.Warn("workspace: provider payload malformed, using cache", zap.String("workspace", w.id), zap.Error(err))
		return w.cachedProvider(ctx), nil
	case apperr.Is(err, apperr.KindTransport):
		return w.cachedProvider(ctx), err
	default:
		return provider.Info{}, w.checkAuth(ctx, err)
	}
}

func (w *Workspace) cachedProvider(ctx context.Context) provider.Info {
	w.mu.Lock()
	p := w.provider
	w.mu.Unlock()
	if p != nil {
		return *p
	}
	var cached provider.Info
	if w.loadCache(ctx, state.KindProvider, &cached) && cached.Name != "" {
		return cached
	}
	return provider.Default()
}

// SaveProvider validates and stores the profile. The logo is re-encoded as a
// bounded PNG before it leaves the server.
func (w *Workspace) SaveProvider(ctx context.Context, p provider.Info) (provider.Info, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return provider.Info{}, err
	}
	logo, err := provider.NormalizeLogo(p.Logo)
	if err != nil {
		return provider.Info{}, err
	}
	p.Logo = logo

	sess, err := w.credentials()
	if err != nil {
		return provider.Info{}, err
	}
	p.CompanyID = sess.User.Tenant()

	done := w.track()
	saved, err := w.remote.SaveCompany(ctx, sess, p)
	done()
	if err != nil {
		return provider.Info{}, w.checkAuth(ctx, err)
	}

	w.mu.Lock()
	w.provider = &saved
	w.mu.Unlock()
	w.saveCache(ctx, state.KindProvider, saved)
	return saved, nil
}
