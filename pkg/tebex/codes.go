package tebex

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// CodeKind — вид кода скидки, он же сегмент пути apply/remove.
type CodeKind string

const (
	KindCoupon      CodeKind = "coupons"
	KindGiftCard    CodeKind = "giftcards"
	KindCreatorCode CodeKind = "creator-codes"
)

// CodeBody — тело запроса apply/remove.
//
// Интерфейс закрыт: реализуют его только CouponCode, GiftCardCode и CreatorCode.
// Вид кода выводится из типа тела, поэтому купон нельзя отправить на путь giftcards.
type CodeBody interface {
	Kind() CodeKind
	codeBody()
}

// CouponCode — купон.
type CouponCode struct {
	CouponCode string `json:"coupon_code"`
}

// GiftCardCode — подарочная карта. Тот же объект приходит в Basket.GiftCards.
type GiftCardCode struct {
	CardNumber string `json:"card_number"`
}

// CreatorCode — код автора (creator code).
type CreatorCode struct {
	CreatorCode string `json:"creator_code"`
}

func (CouponCode) Kind() CodeKind   { return KindCoupon }
func (GiftCardCode) Kind() CodeKind { return KindGiftCard }
func (CreatorCode) Kind() CodeKind  { return KindCreatorCode }

func (CouponCode) codeBody()   {}
func (GiftCardCode) codeBody() {}
func (CreatorCode) codeBody()  {}

// ParseCodeBody строит тело нужного вида из строки (например, из аргументов CLI).
func ParseCodeBody(kind, code string) (CodeBody, error) {
	switch CodeKind(kind) {
	case KindCoupon:
		return CouponCode{CouponCode: code}, nil
	case KindGiftCard:
		return GiftCardCode{CardNumber: code}, nil
	case KindCreatorCode:
		return CreatorCode{CreatorCode: code}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodeKind, kind)
	}
}

// Apply применяет купон, подарочную карту или creator code к корзине.
//
// Параметры:
//   - ctx: контекст для отмены
//   - basketIdent: идентификатор корзины
//   - code: CouponCode, GiftCardCode или CreatorCode
//
// Возвращает подтверждение API как есть, без конверта data.
func (c *Client) Apply(ctx context.Context, basketIdent string, code CodeBody) (*Message, error) {
	return c.codeAction(ctx, basketIdent, code, "")
}

// Remove снимает купон, подарочную карту или creator code с корзины.
func (c *Client) Remove(ctx context.Context, basketIdent string, code CodeBody) (*Message, error) {
	return c.codeAction(ctx, basketIdent, code, "/remove")
}

func (c *Client) codeAction(ctx context.Context, basketIdent string, code CodeBody, suffix string) (*Message, error) {
	if code == nil {
		return nil, fmt.Errorf("%w: nil code body", ErrUnknownCodeKind)
	}
	if basketIdent == "" {
		return nil, fmt.Errorf("%w (basket)", ErrMissingIdentifier)
	}

	path := fmt.Sprintf("/baskets/%s/%s%s", url.PathEscape(basketIdent), code.Kind(), suffix)

	var msg Message
	if err := c.Request(ctx, http.MethodPost, c.WebstoreIdentifier(), RouteAccounts, path, nil, code, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
