package tebex

import (
	"context"
	"net/http"
)

// GetWebstore возвращает метаданные вебстора.
func (c *Client) GetWebstore(ctx context.Context) (*Webstore, error) {
	return getData[*Webstore](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, "", nil, nil)
}

// GetPages возвращает CMS-страницы вебстора.
func (c *Client) GetPages(ctx context.Context) ([]Page, error) {
	return getData[[]Page](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, "/pages", nil, nil)
}
