package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	console "github.com/goliatone/go-admin-console/components/console"
)

// Resource is the typed surface for one REST collection. It satisfies both
// console.CRUDClient and console.BulkClient for its entity type.
type Resource[E any] struct {
	client   *Client
	listPath string
	itemPath func(id int) string
	extra    url.Values
}

var (
	_ console.CRUDClient[console.API] = Resource[console.API]{}
	_ console.BulkClient              = Resource[console.API]{}
)

// List fetches one page.
func (r Resource[E]) List(ctx context.Context, limit, offset int) (console.Page[E], error) {
	return list[E](ctx, r.client, r.listPath, limit, offset, r.extra)
}

// Fetcher adapts List to the console's fetcher contract.
func (r Resource[E]) Fetcher() console.ListFetcher[E] {
	return r.List
}

// Create POSTs a draft and returns the server-confirmed row.
func (r Resource[E]) Create(ctx context.Context, draft E) (E, error) {
	var created E
	if err := r.client.do(ctx, http.MethodPost, r.listPath, nil, draft, &created); err != nil {
		return created, err
	}
	return created, nil
}

// Update PUTs the full draft and returns the server-confirmed row.
func (r Resource[E]) Update(ctx context.Context, id int, draft E) (E, error) {
	var updated E
	if err := r.client.do(ctx, http.MethodPut, r.itemPath(id), nil, draft, &updated); err != nil {
		return updated, err
	}
	return updated, nil
}

// Delete removes one row.
func (r Resource[E]) Delete(ctx context.Context, id int) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

// SetActive patches the activation flag, the per-id call behind bulk
// activate/deactivate.
func (r Resource[E]) SetActive(ctx context.Context, id int, active bool) error {
	payload := map[string]bool{"is_active": active}
	return r.client.do(ctx, http.MethodPatch, r.itemPath(id), nil, payload, nil)
}

// APIs is the /apis/ collection.
func (c *Client) APIs() Resource[console.API] {
	return Resource[console.API]{
		client:   c,
		listPath: "/apis/",
		itemPath: func(id int) string { return fmt.Sprintf("/apis/%d/", id) },
	}
}

// Exchanges is the /exchanges/ collection.
func (c *Client) Exchanges() Resource[console.Exchange] {
	return Resource[console.Exchange]{
		client:   c,
		listPath: "/exchanges/",
		itemPath: func(id int) string { return fmt.Sprintf("/exchanges/%d/", id) },
	}
}

// Categories is the /categories/ collection.
func (c *Client) Categories() Resource[console.Category] {
	return Resource[console.Category]{
		client:   c,
		listPath: "/categories/",
		itemPath: func(id int) string { return fmt.Sprintf("/categories/%d/", id) },
	}
}

// Services is the /services/ collection. The upstream routes item mutations
// through the singular /service/{id}/ path.
func (c *Client) Services() Resource[console.Service] {
	return Resource[console.Service]{
		client:   c,
		listPath: "/services/",
		itemPath: func(id int) string { return fmt.Sprintf("/service/%d/", id) },
	}
}

// Orders is the read-only /orders/ collection.
func (c *Client) Orders() Resource[console.Order] {
	return Resource[console.Order]{
		client:   c,
		listPath: "/orders/",
		itemPath: func(id int) string { return fmt.Sprintf("/orders/%d/", id) },
	}
}

// Payments is the read-only /payments/ collection, optionally filtered to a
// payment type server side.
func (c *Client) Payments(paymentType string) Resource[console.Payment] {
	extra := url.Values{}
	if paymentType != "" {
		extra.Set("type", paymentType)
	}
	return Resource[console.Payment]{
		client:   c,
		listPath: "/payments/",
		itemPath: func(id int) string { return fmt.Sprintf("/payments/%d/", id) },
		extra:    extra,
	}
}

// Users is the read-only /users/ collection.
func (c *Client) Users() Resource[console.User] {
	return Resource[console.User]{
		client:   c,
		listPath: "/users/",
		itemPath: func(id int) string { return fmt.Sprintf("/users/%d/", id) },
	}
}
