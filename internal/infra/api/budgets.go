package api

import (
	"context"
	"net/http"

	"orcafacil/go_backend/internal/domain/quote"
	"orcafacil/go_backend/internal/domain/session"
)

func (c *Client) Budgets(ctx context.Context, sess session.Session) ([]quote.Quote, error) {
	path, err := tenantPath("/budgets", sess)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, &sess, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[budgetDTO](raw, "budget")
	if err != nil {
		return nil, err
	}
	out := make([]quote.Quote, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// CreateBudget returns the stored quote, or nil when the backend answered
// without a body.
func (c *Client) CreateBudget(ctx context.Context, sess session.Session, q quote.Quote) (*quote.Quote, error) {
	raw, err := c.do(ctx, &sess, http.MethodPost, "/budgets", budgetPayload(q, sess.User.Tenant()))
	if err != nil {
		return nil, err
	}
	return decodeBudget(raw)
}

func (c *Client) UpdateBudget(ctx context.Context, sess session.Session, q quote.Quote) (*quote.Quote, error) {
	path, err := idPath("/budgets", q.ID)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, &sess, http.MethodPut, path, budgetPayload(q, sess.User.Tenant()))
	if err != nil {
		return nil, err
	}
	return decodeBudget(raw)
}

func (c *Client) DeleteBudget(ctx context.Context, sess session.Session, id string) error {
	path, err := idPath("/budgets", id)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, &sess, http.MethodDelete, path, nil)
	return err
}

func decodeBudget(raw []byte) (*quote.Quote, error) {
	d, err := decodeOne[budgetDTO](raw, "budget")
	if err != nil || d == nil {
		return nil, err
	}
	q := d.toDomain()
	return &q, nil
}
