package tebex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CreateBasketRequest — параметры создания корзины.
type CreateBasketRequest struct {
	CompleteURL          string
	CancelURL            string
	Custom               map[string]any // произвольные данные, возвращаются в Basket.Custom
	CompleteAutoRedirect *bool
	IPAddress            string // передается в query как ip_address
}

type createBasketBody struct {
	Username             string         `json:"username,omitempty"`
	CompleteURL          string         `json:"complete_url"`
	CancelURL            string         `json:"cancel_url"`
	Custom               map[string]any `json:"custom,omitempty"`
	CompleteAutoRedirect *bool          `json:"complete_auto_redirect,omitempty"`
}

// AddPackageRequest — добавление пакета в корзину.
type AddPackageRequest struct {
	PackageID    int            `json:"package_id"`
	Quantity     int            `json:"quantity"`
	Type         PackageType    `json:"type"`
	VariableData map[string]any `json:"variable_data,omitempty"`
}

type giftPackageBody struct {
	PackageID        int    `json:"package_id"`
	TargetUsernameID string `json:"target_username_id"`
}

type removePackageBody struct {
	PackageID int `json:"package_id"`
}

type updateQuantityBody struct {
	Quantity int `json:"quantity"`
}

// GetBasket возвращает текущее состояние корзины.
func (c *Client) GetBasket(ctx context.Context, basketIdent string) (*Basket, error) {
	if basketIdent == "" {
		return nil, fmt.Errorf("%w (basket)", ErrMissingIdentifier)
	}
	return getData[*Basket](ctx, c, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, "/baskets/"+url.PathEscape(basketIdent), nil, nil)
}

// CreateBasket создает новую корзину.
//
// Параметры:
//   - ctx: контекст для отмены
//   - req: URL возврата, custom данные, авторедирект и IP покупателя
//
// Ident возвращенной корзины используется во всех последующих вызовах.
func (c *Client) CreateBasket(ctx context.Context, req CreateBasketRequest) (*Basket, error) {
	return c.createBasket(ctx, "", req)
}

// CreateMinecraftBasket создает корзину для Minecraft игрока.
//
// Сервер сам резолвит username (и, например, приводит регистр) —
// возвращенное значение Basket.Username является авторитетным.
func (c *Client) CreateMinecraftBasket(ctx context.Context, username string, req CreateBasketRequest) (*Basket, error) {
	if username == "" {
		return nil, fmt.Errorf("tebex: minecraft basket requires a username")
	}
	return c.createBasket(ctx, username, req)
}

func (c *Client) createBasket(ctx context.Context, username string, req CreateBasketRequest) (*Basket, error) {
	body := createBasketBody{
		Username:             username,
		CompleteURL:          req.CompleteURL,
		CancelURL:            req.CancelURL,
		Custom:               req.Custom,
		CompleteAutoRedirect: req.CompleteAutoRedirect,
	}
	params := Params{"ip_address": req.IPAddress}

	return getData[*Basket](ctx, c, http.MethodPost, c.WebstoreIdentifier(), RouteAccounts, "/baskets", params, body)
}

// GetBasketAuthURLs возвращает ссылки авторизации покупателя для корзины.
//
// Эндпоинт отвечает массивом без конверта data.
func (c *Client) GetBasketAuthURLs(ctx context.Context, basketIdent, returnURL string) ([]AuthURL, error) {
	if basketIdent == "" {
		return nil, fmt.Errorf("%w (basket)", ErrMissingIdentifier)
	}

	var urls []AuthURL
	path := "/baskets/" + url.PathEscape(basketIdent) + "/auth"
	if err := c.Request(ctx, http.MethodGet, c.WebstoreIdentifier(), RouteAccounts, path, Params{"returnUrl": returnURL}, nil, &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// AddPackageToBasket добавляет пакет в корзину и возвращает ее новое состояние.
func (c *Client) AddPackageToBasket(ctx context.Context, basketIdent string, req AddPackageRequest) (*Basket, error) {
	return getData[*Basket](ctx, c, http.MethodPost, basketIdent, RouteBaskets, "/packages", nil, req)
}

// GiftPackage добавляет пакет в корзину как подарок пользователю targetUsernameID.
func (c *Client) GiftPackage(ctx context.Context, basketIdent string, packageID int, targetUsernameID string) (*Basket, error) {
	body := giftPackageBody{PackageID: packageID, TargetUsernameID: targetUsernameID}
	return getData[*Basket](ctx, c, http.MethodPost, basketIdent, RouteBaskets, "/packages", nil, body)
}

// RemovePackage удаляет пакет из корзины.
func (c *Client) RemovePackage(ctx context.Context, basketIdent string, packageID int) (*Basket, error) {
	return getData[*Basket](ctx, c, http.MethodPost, basketIdent, RouteBaskets, "/packages/remove", nil, removePackageBody{PackageID: packageID})
}

// UpdateQuantity меняет количество пакета в корзине.
func (c *Client) UpdateQuantity(ctx context.Context, basketIdent string, packageID int, quantity int) (*Basket, error) {
	path := fmt.Sprintf("/packages/%d", packageID)
	return getData[*Basket](ctx, c, http.MethodPut, basketIdent, RouteBaskets, path, nil, updateQuantityBody{Quantity: quantity})
}
