package main

import (
	"net/http"
	"time"

	"github.com/ilkoid/tebex-headless/pkg/tebex"
	"github.com/ilkoid/tebex-headless/pkg/utils"
)

// debugHTTPClient пишет в лог каждый запрос к API (app.debug: true).
//
// Заголовок Authorization не логируется.
type debugHTTPClient struct {
	next tebex.HTTPClient
}

func newDebugHTTPClient(next tebex.HTTPClient) *debugHTTPClient {
	return &debugHTTPClient{next: next}
}

// Do реализует tebex.HTTPClient.
func (d *debugHTTPClient) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	_, _, basicAuth := req.BasicAuth()

	resp, err := d.next.Do(req)
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		utils.Debug("HTTP request failed",
			"method", req.Method, "url", req.URL.String(), "auth", basicAuth,
			"elapsed", elapsed, "error", err)
		return nil, err
	}

	utils.Debug("HTTP request",
		"method", req.Method, "url", req.URL.String(), "auth", basicAuth,
		"status", resp.StatusCode, "elapsed", elapsed)
	return resp, nil
}
