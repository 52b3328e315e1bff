package api

import (
	"context"
	"net/http"

	"orcafacil/go_backend/internal/domain/catalog"
	"orcafacil/go_backend/internal/domain/session"
)

func (c *Client) Products(ctx context.Context, sess session.Session) ([]catalog.Item, error) {
	path, err := tenantPath("/products", sess)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, &sess, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	dtos, err := decodeList[productDTO](raw, "product")
	if err != nil {
		return nil, err
	}
	items := make([]catalog.Item, 0, len(dtos))
	for _, d := range dtos {
		items = append(items, d.toDomain())
	}
	return items, nil
}

func (c *Client) CreateProduct(ctx context.Context, sess session.Session, it catalog.Item) error {
	_, err := c.do(ctx, &sess, http.MethodPost, "/products", productPayload(it, sess.User.Tenant()))
	return err
}

func (c *Client) UpdateProduct(ctx context.Context, sess session.Session, it catalog.Item) error {
	path, err := idPath("/products", it.ID)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, &sess, http.MethodPut, path, productPayload(it, sess.User.Tenant()))
	return err
}

func (c *Client) DeleteProduct(ctx context.Context, sess session.Session, id string) error {
	path, err := idPath("/products", id)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, &sess, http.MethodDelete, path, nil)
	return err
}
