// Модели данных

package tebex

import "github.com/shopspring/decimal"

// Data — обертка ответа для ресурсных эндпоинтов: {"data": T}.
type Data[T any] struct {
	Data T `json:"data"`
}

// Message — ответ action-эндпоинтов (apply/remove кодов).
type Message struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Route — первый сегмент пути после /api/.
type Route string

const (
	RouteAccounts Route = "accounts"
	RouteBaskets  Route = "baskets"
)

// PackageType — тип покупки пакета.
type PackageType string

const (
	PackageSubscription PackageType = "subscription"
	PackageSingle       PackageType = "single"
	PackageBoth         PackageType = "both"
)

// DisplayType — режим отображения категории.
type DisplayType string

const (
	DisplayGrid DisplayType = "grid"
	DisplayList DisplayType = "list"
)

// BaseItem — общие поля пакета и категории.
type BaseItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category — категория пакетов, может быть вложенной.
//
// Packages заполняется только при CategoryOptions.IncludePackages.
type Category struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parent      *Category   `json:"parent"`
	Order       int         `json:"order"`
	Packages    []Package   `json:"packages"`
	DisplayType DisplayType `json:"display_type"`
	Slug        *string     `json:"slug"`
}

// Package — покупаемый пакет (товар) вебстора.
type Package struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Type            PackageType     `json:"type"`
	DisableGifting  bool            `json:"disable_gifting"`
	DisableQuantity bool            `json:"disable_quantity"`
	ExpirationDate  *string         `json:"expiration_date"`
	Currency        string          `json:"currency"`
	Category        BaseItem        `json:"category"`
	BasePrice       decimal.Decimal `json:"base_price"`
	SalesTax        decimal.Decimal `json:"sales_tax"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	Discount        decimal.Decimal `json:"discount"`
	Image           *string         `json:"image"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
}

// InBasket — состояние пакета внутри корзины.
type InBasket struct {
	Quantity       int             `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	GiftUsernameID *string         `json:"gift_username_id"`
	GiftUsername   *string         `json:"gift_username"`
}

// BasketPackage — строка корзины.
type BasketPackage struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	InBasket    InBasket `json:"in_basket"`
}

// Code — примененный купон.
type Code struct {
	Code string `json:"code"`
}

// Links — именованные ссылки корзины. Ключ "checkout" присутствует всегда.
type Links map[string]string

// Checkout возвращает ссылку на оплату.
func (l Links) Checkout() string {
	return l["checkout"]
}

// Basket — серверная корзина.
//
// Клиент ничего не кеширует: актуальное состояние — это значение,
// возвращенное последним вызовом (или повторный GetBasket).
type Basket struct {
	Ident                string          `json:"ident"`
	Complete             bool            `json:"complete"`
	ID                   int             `json:"id"`
	Country              string          `json:"country"`
	IP                   string          `json:"ip"`
	UsernameID           *string         `json:"username_id"`
	Username             *string         `json:"username"`
	CancelURL            string          `json:"cancel_url"`
	CompleteURL          string          `json:"complete_url"`
	CompleteAutoRedirect bool            `json:"complete_auto_redirect"`
	BasePrice            decimal.Decimal `json:"base_price"`
	SalesTax             decimal.Decimal `json:"sales_tax"`
	TotalPrice           decimal.Decimal `json:"total_price"`
	Currency             string          `json:"currency"`
	Packages             []BasketPackage `json:"packages"`
	Coupons              []Code          `json:"coupons"`
	GiftCards            []GiftCardCode  `json:"giftcards"`
	CreatorCode          string          `json:"creator_code"`
	Links                Links           `json:"links"`
	Custom               map[string]any  `json:"custom"`
}

// FindPackage ищет строку корзины по ID пакета.
func (b *Basket) FindPackage(packageID int) (*BasketPackage, bool) {
	for i := range b.Packages {
		if b.Packages[i].ID == packageID {
			return &b.Packages[i], true
		}
	}
	return nil, false
}

// CheckoutURL — ссылка, на которую нужно отправить покупателя для оплаты.
func (b *Basket) CheckoutURL() string {
	return b.Links.Checkout()
}

// AuthURL — ссылка авторизации покупателя для корзины.
type AuthURL struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Webstore — метаданные вебстора (только чтение).
type Webstore struct {
	ID             int    `json:"id"`
	Description    string `json:"description"`
	Name           string `json:"name"`
	WebstoreURL    string `json:"webstore_url"`
	Currency       string `json:"currency"`
	Lang           string `json:"lang"`
	Logo           string `json:"logo"`
	PlatformType   string `json:"platform_type"`
	PlatformTypeID int    `json:"platform_type_id"`
	CreatedAt      string `json:"created_at"`
}

// Page — CMS-страница вебстора.
type Page struct {
	ID        int    `json:"id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	AccountID int    `json:"account_id"`
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Private   bool   `json:"private"`
	Hidden    bool   `json:"hidden"`
	Disabled  bool   `json:"disabled"`
	Sequence  int    `json:"sequence"`
	Content   string `json:"content"`
}
