package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilkoid/tebex-headless/pkg/tebex"
	"github.com/ilkoid/tebex-headless/pkg/utils"
)

const testBasket = `{"data":{"ident":"abc123","total_price":21,"currency":"EUR",
	"packages":[{"id":42,"name":"VIP","in_basket":{"quantity":3,"price":7}}],
	"coupons":[{"code":"SUMMER"}],"links":{"checkout":"https://pay.example.com/abc123"},"custom":{}}}`

type seenRequest struct {
	method string
	path   string
	query  string
	body   string
}

func newTestClient(t *testing.T, status int, response string) (*tebex.Client, *seenRequest) {
	t.Helper()
	seen := &seenRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*seen = seenRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(body)}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return tebex.New("acc1", "", tebex.WithBaseURL(srv.URL)), seen
}

func TestRunCommand_Categories(t *testing.T) {
	client, seen := newTestClient(t, http.StatusOK, `{"data":[{"id":1,"name":"Ranks","packages":[{"id":5,"name":"VIP"}]}]}`)

	var out bytes.Buffer
	err := runCommand(context.Background(), client, []string{"categories"}, options{IncludePackages: true, IPAddress: "1.2.3.4"}, &out)
	require.NoError(t, err)

	assert.Equal(t, "/api/accounts/acc1/categories", seen.path)
	assert.Equal(t, "includePackages=1&ipAddress=1.2.3.4", seen.query)
	assert.Contains(t, out.String(), "#1 Ranks")
	assert.Contains(t, out.String(), "[1 packages]")
}

func TestRunCommand_BasketAdd(t *testing.T) {
	client, seen := newTestClient(t, http.StatusOK, testBasket)

	var out bytes.Buffer
	err := runCommand(context.Background(), client, []string{"basket-add", "abc123", "42", "3"}, options{}, &out)
	require.NoError(t, err)

	assert.Equal(t, "/api/baskets/abc123/packages", seen.path)
	assert.JSONEq(t, `{"package_id":42,"quantity":3,"type":"single"}`, seen.body)
	assert.Contains(t, out.String(), "#42 VIP x3")
	assert.Contains(t, out.String(), "21.00 EUR")
	assert.Contains(t, out.String(), "Coupon:   SUMMER")
	assert.Contains(t, out.String(), "https://pay.example.com/abc123")
}

func TestRunCommand_BasketCreateWithCustom(t *testing.T) {
	client, seen := newTestClient(t, http.StatusOK, testBasket)

	var out bytes.Buffer
	err := runCommand(context.Background(), client,
		[]string{"basket-create", "https://a", "https://b"},
		options{Custom: `{"check":true}`, Username: "notch", Raw: true}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, seen.method)
	assert.JSONEq(t, `{"username":"notch","complete_url":"https://a","cancel_url":"https://b","custom":{"check":true}}`, seen.body)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &raw))
	assert.Equal(t, "abc123", raw["ident"])
}

func TestRunCommand_ApplyCode(t *testing.T) {
	client, seen := newTestClient(t, http.StatusOK, `{"success":true,"message":"Gift card applied successfully"}`)

	var out bytes.Buffer
	err := runCommand(context.Background(), client, []string{"apply", "abc123", "giftcards", "GC-1"}, options{}, &out)
	require.NoError(t, err)

	assert.Equal(t, "/api/accounts/acc1/baskets/abc123/giftcards", seen.path)
	assert.JSONEq(t, `{"card_number":"GC-1"}`, seen.body)
	assert.Contains(t, out.String(), "Gift card applied successfully")
}

func TestRunCommand_Errors(t *testing.T) {
	client, _ := newTestClient(t, http.StatusNotFound, `{"detail":"Basket not found"}`)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown command", args: []string{"checkout"}},
		{name: "missing args", args: []string{"basket-add", "abc123"}},
		{name: "bad id", args: []string{"package", "vip"}},
		{name: "bad code kind", args: []string{"apply", "abc123", "vouchers", "x"}},
		{name: "remote 404", args: []string{"basket", "missing"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runCommand(context.Background(), client, tt.args, options{}, &out)
			assert.Error(t, err)
			assert.Empty(t, out.String())
		})
	}
}

func TestRunCommand_EmptyData(t *testing.T) {
	commands := [][]string{
		{"webstore"},
		{"category", "1"},
		{"package", "5"},
		{"basket", "abc123"},
		{"basket-create", "https://a", "https://b"},
		{"basket-add", "abc123", "42", "1"},
		{"basket-qty", "abc123", "42", "2"},
	}

	for _, response := range []string{`{"data":null}`, ``} {
		client, _ := newTestClient(t, http.StatusOK, response)

		for _, args := range commands {
			for _, raw := range []bool{false, true} {
				t.Run(args[0], func(t *testing.T) {
					var out bytes.Buffer
					var err error
					assert.NotPanics(t, func() {
						err = runCommand(context.Background(), client, args, options{Raw: raw}, &out)
					})
					assert.ErrorIs(t, err, errEmptyResponse)
					assert.Empty(t, out.String())
				})
			}
		}
	}
}

func TestRunCommand_NullListIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{"data":null}`)

	var out bytes.Buffer
	err := runCommand(context.Background(), client, []string{"packages"}, options{}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Packages (0)")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadDotEnv(filepath.Join(dir, "missing.env")))

	broken := filepath.Join(dir, "broken.env")
	require.NoError(t, os.WriteFile(broken, []byte("BAD-KEY=1\n"), 0644))
	err := loadDotEnv(broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), broken)
}

func TestDebugHTTPClient_LogsRequests(t *testing.T) {
	require.NoError(t, utils.InitLogger(t.TempDir()))
	path := utils.LogPath()
	t.Cleanup(utils.Close)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"data":{"id":1,"name":"Store","currency":"EUR"}}`)
	}))
	t.Cleanup(srv.Close)

	client := tebex.New("acc1", "secret",
		tebex.WithBaseURL(srv.URL),
		tebex.WithHTTPClient(newDebugHTTPClient(srv.Client())))

	_, err := client.GetWebstore(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "DEBUG: HTTP request method=GET url="+srv.URL+"/api/accounts/acc1 auth=true status=200")
	assert.NotContains(t, content, "secret")
}

func TestRenderError(t *testing.T) {
	text := renderError(&tebex.APIError{Method: "GET", URL: "https://x", StatusCode: 401, Body: []byte("nope")})
	assert.Contains(t, text, "authentication_failed")
	assert.Contains(t, text, "status 401")
}

func TestRenderPackage_WrapsDescription(t *testing.T) {
	text := renderPackage(&tebex.Package{
		ID:          1,
		Name:        "VIP",
		Description: "A very long description that keeps going well past the wrapping width so that it must be broken into several lines",
		Currency:    "EUR",
	})
	assert.Contains(t, text, "VIP")
	assert.GreaterOrEqual(t, bytes.Count([]byte(text), []byte("\n")), 4)
}
