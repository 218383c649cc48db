package adapter

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pii-radar/piiradar/internal/detector"
	"github.com/pii-radar/piiradar/internal/engine"
	"github.com/pii-radar/piiradar/internal/models"
)

// Endpoint is one HTTP request the HTTP adapter issues and scans the
// decoded response body of.
type Endpoint struct {
	URL     string
	Method  string // default GET
	Headers map[string]string
	Body    string // request body, optional
}

// HTTPConfig configures the HTTP adapter.
type HTTPConfig struct {
	Endpoints       []Endpoint
	Timeout         time.Duration // per-request, default 30s
	MaxRedirects    int           // 0 = http.Client default (10)
	FollowRedirects bool
}

// HTTPAdapter issues one request per configured endpoint and yields
// the decoded body once per endpoint (spec §4.12: an HTTP adapter
// yields once per endpoint with the decoded body).
type HTTPAdapter struct {
	cfg    HTTPConfig
	client *http.Client
}

// NewHTTPAdapter returns an HTTPAdapter over cfg.
func NewHTTPAdapter(cfg HTTPConfig) *HTTPAdapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &http.Client{Timeout: timeout}
	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if cfg.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", cfg.MaxRedirects)
			}
			return nil
		}
	}
	return &HTTPAdapter{cfg: cfg, client: client}
}

func (a *HTTPAdapter) Iter(yield func(sourceID string, text engine.TextProvider, locate detector.LocationFactory) error) error {
	for _, ep := range a.cfg.Endpoints {
		ep := ep
		method := ep.Method
		if method == "" {
			method = http.MethodGet
		}

		var cached string
		var cacheErr error
		var read bool
		provider := func() (string, error) {
			if read {
				return cached, cacheErr
			}
			read = true
			cached, cacheErr = a.fetch(method, ep)
			return cached, cacheErr
		}

		locate := func(offset int) models.Location {
			return models.Location{Kind: models.LocationAPI, URL: ep.URL, Method: method, ResponseOffset: offset}
		}

		if err := yield(ep.URL, provider, locate); err != nil {
			return err
		}
	}
	return nil
}

func (a *HTTPAdapter) fetch(method string, ep Endpoint) (string, error) {
	var body io.Reader
	if ep.Body != "" {
		body = strings.NewReader(ep.Body)
	}

	req, err := http.NewRequest(method, ep.URL, body)
	if err != nil {
		return "", &models.AdapterTransientError{SourceID: ep.URL, Err: err}
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", &models.AdapterTransientError{SourceID: ep.URL, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &models.AdapterTransientError{SourceID: ep.URL, Err: err}
	}
	if resp.StatusCode >= 400 {
		return "", &models.AdapterTransientError{SourceID: ep.URL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	return string(data), nil
}
