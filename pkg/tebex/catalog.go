package tebex

import (
	"context"
	"fmt"
	"net/http"
)

// CategoryOptions — опциональные query параметры запросов категорий.
type CategoryOptions struct {
	IncludePackages *bool  // nil — параметр не передается
	BasketIdent     string // цены и доступность в контексте корзины
	IPAddress       string // гео-цены по IP покупателя
}

func (o CategoryOptions) params() Params {
	return Params{
		"includePackages": o.IncludePackages,
		"basketIdent":     o.BasketIdent,
		"ipAddress":       o.IPAddress,
	}
}

// PackageOptions — опциональные query параметры запросов пакетов.
type PackageOptions struct {
	BasketIdent string
	IPAddress   string
}

func (o PackageOptions) params() Params {
	return Params{
		"basketIdent": o.BasketIdent,
		"ipAddress":   o.IPAddress,
	}
}

// GetCategories возвращает все категории вебстора.
func (c *Client) GetCategories(ctx context.Context, opts CategoryOptions) ([]Category, error) {
	return getData[[]Category](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, "/categories", opts.params(), nil)
}

// GetCategory возвращает категорию по ID.
func (c *Client) GetCategory(ctx context.Context, id int, opts CategoryOptions) (*Category, error) {
	return getData[*Category](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, fmt.Sprintf("/categories/%d", id), opts.params(), nil)
}

// GetPackages возвращает все пакеты вебстора.
func (c *Client) GetPackages(ctx context.Context, opts PackageOptions) ([]Package, error) {
	return getData[[]Package](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, "/packages", opts.params(), nil)
}

// GetPackage возвращает пакет по ID.
func (c *Client) GetPackage(ctx context.Context, id int, opts PackageOptions) (*Package, error) {
	return getData[*Package](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, fmt.Sprintf("/packages/%d", id), opts.params(), nil)
}
