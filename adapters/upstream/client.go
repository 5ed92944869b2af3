// Package upstream is the HTTP client for the external data service that
// serves patient, prescription, event, and AI-generated collections. All
// non-2xx responses surface as fetch failures; nothing is retried silently or
// cached as if it had succeeded.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"switchscope/internal"
	"switchscope/internal/config"
	"switchscope/internal/errors"
)

// Client talks to the external data service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *internal.Logger
}

// NewClient creates a client from upstream configuration.
func NewClient(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        internal.DefaultLogger.With("upstream"),
	}
}

// get performs a GET and returns the raw body, converting transport errors
// and non-2xx statuses into FetchFailure.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// post performs a POST with a JSON body (nil for empty).
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "encode request for %s", path)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.FetchFailure(path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.FetchFailure(path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.FetchFailure(path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("%s %s returned %d", method, path, resp.StatusCode)
		return nil, errors.FetchFailure(path, fmt.Errorf("status %d: %s", resp.StatusCode, truncate(data, 200)))
	}
	return data, nil
}

// decodeList unmarshals a JSON array that may arrive bare or wrapped under a
// named field. Absent optional arrays decode to an empty list - deliberate
// "no evidence yet" semantics, not an error.
func decodeList[T any](body []byte, field string, out *[]T) error {
	raw := body
	if field != "" {
		if wrapped := gjson.GetBytes(body, field); wrapped.Exists() {
			raw = []byte(wrapped.Raw)
		} else if !gjson.ParseBytes(body).IsArray() {
			*out = []T{}
			return nil
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return err
	}
	if *out == nil {
		*out = []T{}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
