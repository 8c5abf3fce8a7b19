package httpledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gitseal/gitseal/registry"
)

// Client implements registry.Ledger over the ledger service's HTTP API.
type Client struct {
	endpoint   string // base URL, no trailing slash
	credential string // optional bearer token
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

var _ registry.Ledger = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithCredential sets the bearer token sent with every request.
func WithCredential(token string) Option {
	return func(c *Client) {
		c.credential = token
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. for proxy or TLS
// configuration. Timeouts are owned by the caller's context, not here.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithUserAgent sets the User-Agent header for ledger requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithLogger sets a logger for the client.
// If nil, a discard logger is used (default behavior).
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client for the ledger service at endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// newRequest builds a request against the ledger with auth and headers set.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.credential != "" {
		req.Header.Set("Authorization", "Bearer "+c.credential)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// do executes req, mapping transport failures to ErrUnavailable.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.log().Debug("ledger request", "method", req.Method, "url", req.URL.String())
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", registry.ErrUnavailable, req.Method, req.URL.Path, err)
	}
	return resp, nil
}

// Put stores rec under key.
func (c *Client) Put(ctx context.Context, key string, rec *registry.Record) (registry.Receipt, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return registry.Receipt{}, fmt.Errorf("encode record: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, recordPath(key), bytes.NewReader(body))
	if err != nil {
		return registry.Receipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return registry.Receipt{}, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusOK:
		var ack putResponse
		if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil {
			return registry.Receipt{}, fmt.Errorf("decode put response: %w", err)
		}
		return registry.Receipt{ID: ack.ReceiptID}, nil

	case resp.StatusCode == http.StatusConflict:
		// Only the structured duplicate status counts as a duplicate. A
		// conflict without it is a rejection: guessing here could hide a
		// real failure behind a harmless-looking "already recorded".
		var ack putResponse
		if err := json.NewDecoder(resp.Body).Decode(&ack); err == nil && ack.Status == statusAlreadyRecorded {
			return registry.Receipt{}, fmt.Errorf("%w: %s", registry.ErrAlreadyExists, key)
		}
		return registry.Receipt{}, fmt.Errorf("%w: conflict without duplicate status for %s", registry.ErrSubmissionRejected, key)

	case resp.StatusCode >= 500:
		return registry.Receipt{}, fmt.Errorf("%w: put %s: %s", registry.ErrUnavailable, key, resp.Status)

	default:
		return registry.Receipt{}, fmt.Errorf("%w: %s: %s", registry.ErrSubmissionRejected, resp.Status, decodeErrorDetail(resp.Body))
	}
}

// Get returns the record stored under key.
func (c *Client) Get(ctx context.Context, key string) (*registry.Record, error) {
	req, err := c.newRequest(ctx, http.MethodGet, recordPath(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var rec registry.Record
		if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}
		return &rec, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", registry.ErrNotFound, key)
	default:
		return nil, fmt.Errorf("%w: get %s: %s", registry.ErrUnavailable, key, resp.Status)
	}
}

// Exists reports whether a record is stored under key.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	req, err := c.newRequest(ctx, http.MethodHead, recordPath(key), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true, nil
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: head %s: %s", registry.ErrUnavailable, key, resp.Status)
	}
}

// Count returns the number of stored records.
func (c *Client) Count(ctx context.Context) (int, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/stats", nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: stats: %s", registry.ErrUnavailable, resp.Status)
	}
	var stats statsResponse
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return 0, fmt.Errorf("decode stats: %w", err)
	}
	return stats.Count, nil
}

// Keys returns all recorded revision ids in insertion order.
func (c *Client) Keys(ctx context.Context) ([]string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/records", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: list records: %s", registry.ErrUnavailable, resp.Status)
	}
	var list listResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode record list: %w", err)
	}
	return list.RevisionIDs, nil
}

func recordPath(key string) string {
	return "/v1/records/" + url.PathEscape(key)
}
