// Package hostclient implements the thin wrapper around THE HOST's
// localhost HTTP control plane (spec.md §6). It is deliberately the
// least hard part of this module — a request shaper, not a reactive
// subsystem — but its token-resolution and response-shaping contract is
// still part of what spec.md ships, so it gets a concrete implementation.
package hostclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
)

// DefaultBaseURL is the host's localhost control-plane base URL.
const DefaultBaseURL = "http://localhost:41595"

const appInfoPath = "/api/application/info"

// TokenProvider resolves an API token on demand, e.g. by prompting a user
// or reading a plugin-local secret store. It is consulted only when no
// explicit token was configured.
type TokenProvider func(ctx context.Context) (string, error)

// StatusError is returned when the host responds with a non-2xx status.
// Per spec.md §6, a non-2xx response "surfaces a single error with
// status line and body".
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Body)
}

// Client is the host HTTP API client. The zero value is not usable;
// construct with New.
type Client struct {
	BaseURL       string
	HTTPClient    *http.Client
	Token         string        // explicit token, highest priority
	TokenProvider TokenProvider // consulted if Token is empty
	Debug         bool

	tokenMu     sync.Mutex
	cachedToken string
	haveCached  bool
	inflight    chan tokenResult
}

type tokenResult struct {
	token string
	err   error
}

// New constructs a Client against baseURL (DefaultBaseURL if empty).
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
	}
}

func (c *Client) logDebug(format string, args ...interface{}) {
	if c.Debug {
		fmt.Fprintf(os.Stderr, "[hostclient] "+format+"\n", args...)
	}
}

// ClearTokenCache forces the next request to refetch the token from
// /api/application/info rather than reusing the cached value.
func (c *Client) ClearTokenCache() {
	c.tokenMu.Lock()
	c.haveCached = false
	c.cachedToken = ""
	c.tokenMu.Unlock()
}

// resolveToken returns the token to append to a request. Concurrent
// resolvers share a single in-flight /api/application/info request per
// spec.md §6.
func (c *Client) resolveToken(ctx context.Context) (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}
	if c.TokenProvider != nil {
		return c.TokenProvider(ctx)
	}

	c.tokenMu.Lock()
	if c.haveCached {
		token := c.cachedToken
		c.tokenMu.Unlock()
		return token, nil
	}
	if c.inflight != nil {
		ch := c.inflight
		c.tokenMu.Unlock()
		res := <-ch
		// Hand the result on to the next waiter; the buffer holds at most
		// one value, so this never blocks.
		ch <- res
		return res.token, res.err
	}

	ch := make(chan tokenResult, 1)
	c.inflight = ch
	c.tokenMu.Unlock()

	token, err := c.fetchTokenFromInfo(ctx)

	c.tokenMu.Lock()
	if err == nil {
		c.cachedToken = token
		c.haveCached = true
	}
	c.inflight = nil
	c.tokenMu.Unlock()

	ch <- tokenResult{token: token, err: err}
	return token, err
}

type appInfoResponse struct {
	Preferences struct {
		Developer struct {
			APIToken string `json:"apiToken"`
		} `json:"developer"`
	} `json:"preferences"`
}

// fetchTokenFromInfo calls /api/application/info without a token query
// parameter and reads data.preferences.developer.apiToken.
func (c *Client) fetchTokenFromInfo(ctx context.Context) (string, error) {
	var info appInfoResponse
	if err := c.doRequest(ctx, http.MethodGet, appInfoPath, nil, nil, &info, true); err != nil {
		return "", fmt.Errorf("no API token found: %w", err)
	}
	if info.Preferences.Developer.APIToken == "" {
		return "", fmt.Errorf("no API token found")
	}
	return info.Preferences.Developer.APIToken, nil
}

// envelope is the host's uniform response shape: {"data": T}.
type envelope struct {
	Data json.RawMessage `json:"data"`
}

// Get issues a GET request against path with query, appending the
// resolved token, and decodes the unwrapped "data" field into out.
// Array-valued query entries repeat the key, per spec.md §6.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.doRequest(ctx, http.MethodGet, path, query, nil, out, false)
}

// Post issues a POST request with a JSON body, stripping null/undefined
// fields before marshaling, and decodes the unwrapped "data" field into
// out.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}) error {
	return c.doRequest(ctx, http.MethodPost, path, nil, body, out, false)
}

func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}, skipToken bool) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("parse host URL: %w", err)
	}

	q := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	if !skipToken {
		token, err := c.resolveToken(ctx)
		if err != nil {
			return err
		}
		q.Set("token", token)
	}
	u.RawQuery = q.Encode()

	var reqBody io.Reader
	if body != nil {
		stripped, err := stripNulls(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(stripped)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	c.logDebug("%s %s", method, u.Path)
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("host request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read host response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logDebug("%s %s -> %s", method, u.Path, resp.Status)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(respBody)}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("parse host response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("parse host response data: %w", err)
	}
	return nil
}

// stripNulls marshals body to JSON and removes any top-level
// null/undefined-valued fields, per spec.md §6 ("POST bodies are JSON
// with null/undefined fields stripped").
func stripNulls(body interface{}) ([]byte, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		// Not a JSON object (array, scalar) — nothing to strip.
		return raw, nil
	}

	for k, v := range m {
		if string(v) == "null" {
			delete(m, k)
		}
	}
	return json.Marshal(m)
}
