package api

import (
	"context"
	"fmt"
	"net/http"
)

// ListStores returns all stores owned by the authenticated user.
func (c *Client) ListStores(ctx context.Context) ([]Store, error) {
	var stores []Store
	if err := c.doJSON(ctx, http.MethodGet, "/stores/", nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// CreateStore creates a new store (brand profile).
func (c *Client) CreateStore(ctx context.Context, req StoreRequest) (*Store, error) {
	var store Store
	if err := c.doJSON(ctx, http.MethodPost, "/stores/", req, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// UpdateStore replaces the store's editable fields.
func (c *Client) UpdateStore(ctx context.Context, id int64, req StoreRequest) (*Store, error) {
	var store Store
	if err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/stores/%d", id), req, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// DeleteStore removes a store and, on the backend, its projects.
func (c *Client) DeleteStore(ctx context.Context, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/stores/%d", id), nil, nil)
}
