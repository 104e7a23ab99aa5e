package names

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Collection defines the operations the rest of namelist needs from the
// names API. It is implemented by *Client and can be faked in tests.
type Collection interface {
	List(ctx context.Context) ([]Record, error)
	Add(ctx context.Context, name string) (Record, error)
	Delete(ctx context.Context, id ID) error
}

// Ensure Client implements Collection at compile time.
var _ Collection = (*Client)(nil)

// Client talks to the names HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	log       zerolog.Logger
}

const (
	defaultBaseURL   = "http://127.0.0.1:5000"
	defaultUserAgent = "namelist/0.1"
	requestTimeout   = 5 * time.Second
	maxErrorBody     = 64 * 1024

	collectionPath = "/api/names"
	healthPath     = "/api/health"
)

// Option customises a Client.
type Option func(*Client)

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for the API rooted at baseURL (host:port or a
// full URL).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		userAgent: defaultUserAgent,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// UserAgent returns the User-Agent header sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// List fetches every record in the collection.
func (c *Client) List(ctx context.Context) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	resp, err := c.send(ctx, http.MethodGet, collectionPath, nil)
	if err != nil {
		return nil, &Error{Op: OpList, Message: msgListFailed, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return nil, &Error{
			Op:      OpList,
			Status:  resp.StatusCode,
			Message: msgListFailed,
			Err:     statusError{path: collectionPath, status: resp.StatusCode},
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Op: OpList, Status: resp.StatusCode, Message: msgListFailed, Err: fmt.Errorf("read response: %w", err)}
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &Error{
			Op:      OpList,
			Status:  resp.StatusCode,
			Message: msgListFailed,
			Err:     errors.New("invalid response format: expected array"),
		}
	}
	records := []Record{}
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &Error{Op: OpList, Status: resp.StatusCode, Message: msgListFailed, Err: fmt.Errorf("decode response: %w", err)}
	}
	return records, nil
}

// Add validates name and creates it. The returned record is zero apart from
// Name when the API does not echo the created entry.
func (c *Client) Add(ctx context.Context, name string) (Record, error) {
	if c == nil {
		return Record{}, fmt.Errorf("client is nil")
	}
	cleaned, err := ValidateName(name)
	if err != nil {
		return Record{}, err
	}
	body, err := json.Marshal(addRequest{Name: cleaned})
	if err != nil {
		return Record{}, fmt.Errorf("encode request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, collectionPath, body)
	if err != nil {
		return Record{}, &Error{Op: OpAdd, Message: msgAddOffline, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if !success(resp.StatusCode) {
		return Record{}, &Error{
			Op:      OpAdd,
			Status:  resp.StatusCode,
			Message: apiMessage(resp.Body, msgAddFailed),
			Err:     statusError{path: collectionPath, status: resp.StatusCode},
		}
	}

	created := Record{Name: cleaned}
	var echoed Record
	if err := json.NewDecoder(resp.Body).Decode(&echoed); err == nil && !echoed.ID.Empty() {
		created = echoed
	}
	return created, nil
}

// Delete removes the record with the given id.
func (c *Client) Delete(ctx context.Context, id ID) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id.Empty() {
		return ErrMissingID
	}
	path := collectionPath + "/" + url.PathEscape(strings.TrimSpace(id.String()))

	resp, err := c.send(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return &Error{Op: OpDelete, Message: msgDeleteOffline, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if success(resp.StatusCode) {
		return nil
	}
	cause := statusError{path: path, status: resp.StatusCode}
	if resp.StatusCode == http.StatusNotFound {
		return &Error{Op: OpDelete, Status: resp.StatusCode, Message: msgDeleteNotFound, Err: cause}
	}
	return &Error{
		Op:      OpDelete,
		Status:  resp.StatusCode,
		Message: apiMessage(resp.Body, msgDeleteFailed),
		Err:     cause,
	}
}

// Health checks that the API is reachable. It prefers /api/health and falls
// back to HEAD /api/names for servers without a health route.
func (c *Client) Health(ctx context.Context) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	resp, err := c.send(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return &Error{Op: OpHealth, Message: msgHealthFailed, Err: err}
	}
	status := resp.StatusCode
	var payload healthResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&payload)
	_ = resp.Body.Close()

	if status == http.StatusNotFound {
		return c.headCollection(ctx)
	}
	if !success(status) {
		return &Error{Op: OpHealth, Status: status, Message: msgHealthFailed, Err: statusError{path: healthPath, status: status}}
	}
	if decodeErr == nil && payload.Status != "" && payload.Status != "ok" {
		return &Error{Op: OpHealth, Status: status, Message: msgHealthFailed, Err: fmt.Errorf("health status %q", payload.Status)}
	}
	return nil
}

func (c *Client) headCollection(ctx context.Context) error {
	resp, err := c.send(ctx, http.MethodHead, collectionPath, nil)
	if err != nil {
		return &Error{Op: OpHealth, Message: msgHealthFailed, Err: err}
	}
	_ = resp.Body.Close()
	if !success(resp.StatusCode) {
		return &Error{
			Op:      OpHealth,
			Status:  resp.StatusCode,
			Message: msgHealthFailed,
			Err:     statusError{path: collectionPath, status: resp.StatusCode},
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return nil, fmt.Errorf("execute request: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request complete")
	return resp, nil
}

// apiMessage pulls {"error": "..."} out of a failure body, or returns fallback.
func apiMessage(body io.Reader, fallback string) string {
	var payload errorResponse
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&payload); err != nil {
		return fallback
	}
	if msg := strings.TrimSpace(payload.Error); msg != "" {
		return msg
	}
	return fallback
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
