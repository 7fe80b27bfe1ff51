// Package tebex provides a typed SDK for the Tebex Headless storefront API.
//
// Architecture:
//
// Every exported operation maps one-to-one onto a single HTTP endpoint. The only
// shared logic lives in (*Client).Request:
//   - URL composition: <base>/api/<route>/<identifier><path>
//   - query normalisation (bool → 1/0, nil and empty values dropped)
//   - JSON request body
//   - HTTP basic auth when both webstore identifier and private key are set
//   - JSON decoding of the raw response into the caller's type
//
// Resource endpoints wrap their payload in {"data": T} (see Data), action
// endpoints (apply/remove codes) answer with Message directly.
//
// The client keeps no cache, performs no retries and imposes no rate limiting.
// Timeouts belong to the underlying transport (WithTimeout / WithHTTPClient)
// and to the context passed to each call.
package tebex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ilkoid/tebex-headless/pkg/config"
)

// HTTPClient интерфейс для выполнения HTTP запросов.
//
// Позволяет подменить транспорт в тестах.
// Стандартный *http.Client реализует этот интерфейс.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client — клиент Headless API одного вебстора.
//
// Credentials читаются в момент сборки каждого запроса: изменение через
// SetWebstoreIdentifier/SetPrivateKey действует начиная со следующего вызова.
// Клиент безопасен для конкурентного использования.
type Client struct {
	baseURL    string
	httpClient HTTPClient

	mu                 sync.RWMutex
	webstoreIdentifier string
	privateKey         string
}

// Option настраивает Client при создании.
type Option func(*clientOptions)

type clientOptions struct {
	baseURL    string
	httpClient HTTPClient
	timeout    time.Duration
}

// WithBaseURL переопределяет базовый URL API (например, для httptest сервера).
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) { o.baseURL = baseURL }
}

// WithHTTPClient задает транспорт. WithTimeout при этом игнорируется.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(o *clientOptions) { o.httpClient = httpClient }
}

// WithTimeout задает timeout стандартного *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) { o.timeout = timeout }
}

// New создает клиент для вебстора.
//
// Параметры:
//   - webstoreIdentifier: публичный идентификатор вебстора (может быть пустым)
//   - privateKey: приватный ключ вебстора (может быть пустым)
//   - opts: дополнительные настройки
//
// Basic auth включается только если заданы оба значения.
func New(webstoreIdentifier, privateKey string, opts ...Option) *Client {
	o := clientOptions{
		baseURL: config.DefaultBaseURL,
		timeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: o.timeout}
	}

	return &Client{
		baseURL:            strings.TrimRight(o.baseURL, "/"),
		httpClient:         httpClient,
		webstoreIdentifier: webstoreIdentifier,
		privateKey:         privateKey,
	}
}

// NewFromConfig создает клиент из конфигурации.
//
// Поля с нулевыми значениями используют дефолтные значения через GetDefaults().
func NewFromConfig(cfg config.TebexConfig, opts ...Option) (*Client, error) {
	cfg = cfg.GetDefaults()

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}

	base := []Option{WithBaseURL(cfg.BaseURL), WithTimeout(timeout)}
	return New(cfg.WebstoreIdentifier, cfg.PrivateKey, append(base, opts...)...), nil
}

// SetWebstoreIdentifier меняет идентификатор вебстора для последующих запросов.
func (c *Client) SetWebstoreIdentifier(identifier string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.webstoreIdentifier = identifier
}

// SetPrivateKey меняет приватный ключ для последующих запросов.
func (c *Client) SetPrivateKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.privateKey = key
}

// WebstoreIdentifier возвращает текущий идентификатор вебстора.
func (c *Client) WebstoreIdentifier() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.webstoreIdentifier
}

// BaseURL возвращает базовый URL без завершающего слеша.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) credentials() (string, string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.webstoreIdentifier, c.privateKey
}

// Params — плоские query параметры запроса.
//
// Значения: string, bool, целые и дробные числа, указатели на них или nil.
// bool передается как 1/0. nil, nil-указатели и пустые строки не попадают в query.
type Params map[string]any

// encodeParams нормализует Params в url.Values.
func encodeParams(params Params) url.Values {
	values := url.Values{}
	for key, raw := range params {
		value, ok := paramValue(raw)
		if !ok {
			continue
		}
		values.Set(key, value)
	}
	return values
}

func paramValue(raw any) (string, bool) {
	if raw == nil {
		return "", false
	}

	rv := reflect.ValueOf(raw)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}
		raw = rv.Elem().Interface()
	}

	switch v := raw.(type) {
	case bool:
		if v {
			return "1", true
		}
		return "0", true
	case string:
		return v, v != ""
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	default:
		return fmt.Sprint(v), true
	}
}

// Request выполняет запрос к Headless API.
//
// Параметры:
//   - ctx: контекст для отмены
//   - method: HTTP метод (http.MethodGet, http.MethodPost, ...)
//   - identifier: сегмент пути после маршрута (идентификатор вебстора или корзины)
//   - route: RouteAccounts или RouteBaskets
//   - path: под-путь, начинается с "/" (может быть пустым)
//   - params: query параметры (может быть nil)
//   - body: тело запроса, сериализуется в JSON (может быть nil)
//   - dest: указатель для unmarshal ответа (может быть nil)
//
// Ошибка транспорта возвращается без изменений, ответ не 2xx — как *APIError.
// Ответ декодируется в dest как есть, конверт {"data": T} разворачивает вызывающий.
func (c *Client) Request(ctx context.Context, method, identifier string, route Route, path string, params Params, body any, dest any) error {
	if identifier == "" {
		return fmt.Errorf("%w (route %s)", ErrMissingIdentifier, route)
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		return fmt.Errorf("tebex: path %q must start with /", path)
	}

	u, err := url.Parse(c.baseURL + "/api/" + string(route) + "/" + url.PathEscape(identifier) + path)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if query := encodeParams(params); len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		bodyJSON, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(bodyJSON)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if username, password := c.credentials(); username != "" && password != "" {
		httpReq.SetBasicAuth(username, password)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(method, u.String(), resp.StatusCode, respBody)
	}

	if dest == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, dest); err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

// getData выполняет запрос и разворачивает конверт {"data": T}.
func getData[T any](ctx context.Context, c *Client, method, identifier string, route Route, path string, params Params, body any) (T, error) {
	var resp Data[T]
	if err := c.Request(ctx, method, identifier, route, path, params, body, &resp); err != nil {
		var zero T
		return zero, err
	}
	return resp.Data, nil
}

// Bool возвращает указатель на v — для опциональных флагов запросов.
func Bool(v bool) *bool {
	return &v
}
