package api

import (
	"context"
	"net/http"

	"orcafacil/go_backend/internal/domain/provider"
	"orcafacil/go_backend/internal/domain/session"
)

// Company returns the provider profile, or nil when the company has none yet.
func (c *Client) Company(ctx context.Context, sess session.Session) (*provider.Info, error) {
	path, err := tenantPath("/companies", sess)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, &sess, http.MethodGet, path, nil)
	if err != nil {
		if StatusCode(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	d, err := decodeOne[companyDTO](raw, "company")
	if err != nil || d == nil {
		return nil, err
	}
	info := d.toDomain()
	return &info, nil
}

// SaveCompany writes the provider profile and returns what the backend stored,
// or p itself when it answered without a body.
func (c *Client) SaveCompany(ctx context.Context, sess session.Session, p provider.Info) (provider.Info, error) {
	path, err := tenantPath("/companies", sess)
	if err != nil {
		return provider.Info{}, err
	}
	raw, err := c.do(ctx, &sess, http.MethodPut, path, companyPayload(p))
	if err != nil {
		return provider.Info{}, err
	}
	d, err := decodeOne[companyDTO](raw, "company")
	if err != nil {
		return provider.Info{}, err
	}
	if d == nil {
		return p, nil
	}
	saved := d.toDomain()
	if saved.Name == "" {
		return p, nil
	}
	return saved, nil
}
