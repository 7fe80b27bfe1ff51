package tebex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

var (
	// ErrMissingIdentifier — пустой идентификатор вебстора или корзины.
	ErrMissingIdentifier = errors.New("tebex: identifier is not set")

	// ErrUnknownCodeKind — строка не соответствует ни одному CodeKind.
	ErrUnknownCodeKind = errors.New("tebex: unknown code kind")
)

// ErrorPayload — JSON тело ошибки, которое присылает API.
type ErrorPayload struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// Text возвращает наиболее информативное поле payload.
func (p *ErrorPayload) Text() string {
	switch {
	case p.Detail != "":
		return p.Detail
	case p.Message != "":
		return p.Message
	default:
		return p.Title
	}
}

// APIError — ответ с HTTP статусом вне диапазона 2xx.
//
// Клиент не интерпретирует конкретные коды: решение за вызывающим.
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Payload    *ErrorPayload // nil если тело не JSON
}

func newAPIError(method, url string, status int, body []byte) *APIError {
	apiErr := &APIError{
		Method:     method,
		URL:        url,
		StatusCode: status,
		Body:       body,
	}

	var payload ErrorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload != (ErrorPayload{}) {
		apiErr.Payload = &payload
	}

	return apiErr
}

func (e *APIError) Error() string {
	if e.Payload != nil && e.Payload.Text() != "" {
		return fmt.Sprintf("tebex api error: %s %s: status %d: %s", e.Method, e.URL, e.StatusCode, e.Payload.Text())
	}
	return fmt.Sprintf("tebex api error: %s %s: status %d, body: %s", e.Method, e.URL, e.StatusCode, string(e.Body))
}

// ErrorType представляет тип ошибки при работе с API.
type ErrorType int

const (
	ErrUnknown ErrorType = iota
	ErrAuthFailed
	ErrNotFound
	ErrValidation
	ErrRateLimit
	ErrTimeout
	ErrNetwork
	ErrMisconfigured
)

// String возвращает строковое представление типа ошибки.
func (e ErrorType) String() string {
	switch e {
	case ErrAuthFailed:
		return "authentication_failed"
	case ErrNotFound:
		return "not_found"
	case ErrValidation:
		return "validation_failed"
	case ErrRateLimit:
		return "rate_limit"
	case ErrTimeout:
		return "timeout"
	case ErrNetwork:
		return "network_error"
	case ErrMisconfigured:
		return "misconfigured"
	default:
		return "unknown"
	}
}

// HumanMessage возвращает человекочитаемое сообщение для типа ошибки.
func (e ErrorType) HumanMessage() string {
	switch e {
	case ErrAuthFailed:
		return "Приватный ключ или идентификатор вебстора недействителен. Проверьте tebex.private_key в конфигурации."
	case ErrNotFound:
		return "Ресурс не найден: проверьте идентификатор корзины, пакета или категории."
	case ErrValidation:
		return "API отклонил запрос. Подробности в теле ошибки."
	case ErrRateLimit:
		return "Превышен лимит запросов. Подождите перед следующей попыткой."
	case ErrTimeout:
		return "Превышено время ожидания. Сервер не отвечает или проблемы с сетью."
	case ErrNetwork:
		return "Сервер недоступен. Проверьте подключение к интернету."
	case ErrMisconfigured:
		return "Не задан идентификатор вебстора. Проверьте tebex.webstore_identifier в конфигурации."
	default:
		return "Неизвестная ошибка при обращении к Headless API."
	}
}

// ClassifyError классифицирует ошибку для диагностики в утилитах.
//
// Request сам коды не интерпретирует, это помощник для вызывающего кода:
//   - ErrAuthFailed: 401, 403
//   - ErrNotFound: 404
//   - ErrValidation: 400, 422
//   - ErrRateLimit: 429
//   - ErrTimeout: deadline exceeded, net timeout
//   - ErrNetwork: connection refused, no such host
//   - ErrMisconfigured: ErrMissingIdentifier
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ErrUnknown
	}

	if errors.Is(err, ErrMissingIdentifier) {
		return ErrMisconfigured
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrAuthFailed
		case http.StatusNotFound:
			return ErrNotFound
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return ErrValidation
		case http.StatusTooManyRequests:
			return ErrRateLimit
		default:
			return ErrUnknown
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout
	}

	errMsg := err.Error()
	if strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no such host") {
		return ErrNetwork
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrNetwork
	}

	return ErrUnknown
}
