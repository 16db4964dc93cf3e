// Package api provides strongly-typed access to the TokenMart resource
// API. It mirrors the server's endpoint structure with one service per
// entity, handles JSON serialization, bearer authentication and error
// decoding, and is safe for concurrent use.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client is the shared HTTP layer every entity service is built on.
type Client struct {
	baseURL    string
	httpClient *http.Client
	authToken  string
	log        zerolog.Logger
	onNotFound func(method, path string, err *Error)
}

// Option configures a [Client].
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the client's logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithNotFoundHandler registers the application-wide 404 hook. Not-found
// responses are a cross-cutting concern handled once for the whole client,
// typically by a global banner; the request still receives the error.
func WithNotFoundHandler(fn func(method, path string, err *Error)) Option {
	return func(c *Client) { c.onNotFound = fn }
}

// NewClient creates a client for the API at baseURL, which should include
// the protocol and host without a trailing slash.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetAuthToken sets the bearer token attached to subsequent requests.
func (c *Client) SetAuthToken(token string) {
	c.authToken = token
}

// do performs an HTTP request and returns the raw response body. Error
// statuses are turned into *Error with the server's message extracted.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := newError(resp.StatusCode, data)
		c.log.Warn().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("request failed")
		if resp.StatusCode == http.StatusNotFound && c.onNotFound != nil {
			c.onNotFound(method, path, apiErr)
		}
		return nil, apiErr
	}

	return data, nil
}

// decode unmarshals data into T. Empty and explicit-null bodies yield nil:
// several mutating endpoints acknowledge with no content, and callers fall
// back to a re-fetch in that case.
func decode[T any](data []byte) (*T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// decodeRequired is decode for endpoints whose success responses always
// carry a body, such as logins. An empty or null body is an error, never
// a nil result.
func decodeRequired[T any](data []byte) (*T, error) {
	out, err := decode[T](data)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("empty response where a record was expected")
	}
	return out, nil
}

// decodeList unmarshals a JSON array, treating an empty body as an empty
// list.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	var out []T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}

// listQuery builds the common skip/take/search query string.
func listQuery(skip, take int, search string) url.Values {
	q := url.Values{}
	q.Set("skip", fmt.Sprint(skip))
	q.Set("take", fmt.Sprint(take))
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	return q
}
