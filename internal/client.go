package internal

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/rm-hull/quran-reader-client/internal/models"
	"golang.org/x/sync/singleflight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultBaseUrl = "http://localhost:3000"
	DefaultTimeout = 30 * time.Second

	refreshPath = "/auth/refresh"
	refreshKey  = "refresh"
)

// Request describes one call to the API. The same Request is resubmitted
// after a token refresh, so the body is held as bytes rather than a reader.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Header      http.Header
	Body        []byte
	ContentType string

	// Anonymous requests never carry credentials and never trigger a refresh.
	Anonymous bool

	retried bool
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method: method,
		Path:   path,
	}
}

func NewJSONRequest(method, path string, payload any) (*Request, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	return &Request{
		Method:      method,
		Path:        path,
		Body:        body,
		ContentType: "application/json",
	}, nil
}

// Retried reports whether the request has already been resubmitted after a
// refresh. Once set it stays set.
func (r *Request) Retried() bool {
	return r.retried
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

type ApiClient interface {
	Send(ctx context.Context, req *Request) (*Response, error)
	RefreshSession(ctx context.Context) (models.TokenPair, error)
	Store() TokenStore
	BaseUrl() string
	LastRefreshed() *time.Time
}

type apiClient struct {
	baseUrl string
	store   TokenStore
	client  *http.Client

	refreshGroup singleflight.Group

	mu          sync.RWMutex
	lastRefresh time.Time
}

// userAgentRoundTripper sets the User-Agent header on every outgoing request.
type userAgentRoundTripper struct {
	wrapped   http.RoundTripper
	userAgent string
}

func (rt *userAgentRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", rt.userAgent)
	return rt.wrapped.RoundTrip(clone)
}

// NewApiClient returns a client for the API rooted at baseUrl. A nil base
// client gets a fresh *http.Client; a zero timeout becomes DefaultTimeout.
func NewApiClient(baseUrl string, store TokenStore, base *http.Client, userAgent string) ApiClient {
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	if base == nil {
		base = &http.Client{}
	}
	if base.Timeout == 0 {
		base.Timeout = DefaultTimeout
	}
	if userAgent != "" {
		transport := base.Transport
		if transport == nil {
			transport = http.DefaultTransport
		}
		base.Transport = &userAgentRoundTripper{
			wrapped:   transport,
			userAgent: userAgent,
		}
	}

	return &apiClient{
		baseUrl: strings.TrimRight(baseUrl, "/"),
		store:   store,
		client:  base,
	}
}

func (c *apiClient) Store() TokenStore {
	return c.store
}

func (c *apiClient) BaseUrl() string {
	return c.baseUrl
}

func (c *apiClient) LastRefreshed() *time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.lastRefresh.IsZero() {
		return nil
	}
	t := c.lastRefresh
	return &t
}

// Send issues req with the stored access token attached. A 401 on a
// non-anonymous request triggers one refresh followed by exactly one
// resubmission; whatever the resubmission returns is handed back as-is.
func (c *apiClient) Send(ctx context.Context, req *Request) (*Response, error) {
	token := ""
	if !req.Anonymous {
		var err error
		if token, err = AccessToken(c.store); err != nil {
			return nil, err
		}
	}

	resp, err := c.do(ctx, req, token)
	if err == nil || !c.shouldRefresh(req, token, err) {
		return resp, err
	}

	pair, err := c.refresh(ctx, token)
	if err != nil {
		return nil, err
	}

	req.retried = true
	requestRetriesTotal.Inc()
	return c.do(ctx, req, pair.AccessToken)
}

func (c *apiClient) shouldRefresh(req *Request, token string, err error) bool {
	if req.Anonymous || req.retried {
		return false
	}
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

// RefreshSession exchanges the stored refresh token for a new pair, sharing
// any refresh already in flight.
func (c *apiClient) RefreshSession(ctx context.Context) (models.TokenPair, error) {
	return c.refresh(ctx, "")
}

// refresh coalesces concurrent callers onto a single refresh call. The call
// is detached from the first caller's cancellation so that caller giving up
// does not fail the others; the client timeout still bounds it.
func (c *apiClient) refresh(ctx context.Context, staleAccessToken string) (models.TokenPair, error) {
	result, err, shared := c.refreshGroup.Do(refreshKey, func() (any, error) {
		return c.refreshTokens(context.WithoutCancel(ctx), staleAccessToken)
	})
	if shared {
		tokenRefreshesTotal.WithLabelValues("shared").Inc()
	}
	if err != nil {
		return models.TokenPair{}, err
	}
	return result.(models.TokenPair), nil
}

func (c *apiClient) refreshTokens(ctx context.Context, staleAccessToken string) (models.TokenPair, error) {
	if staleAccessToken != "" {
		// A refresh that finished after the failing request was sent has
		// already replaced the token: retry with that one instead.
		current, found, err := LoadTokens(c.store)
		if err != nil {
			return models.TokenPair{}, err
		}
		if found && current.AccessToken != staleAccessToken {
			tokenRefreshesTotal.WithLabelValues("superseded").Inc()
			return current, nil
		}
	}

	refreshToken, err := RefreshToken(c.store)
	if err != nil {
		return models.TokenPair{}, err
	}
	if refreshToken == "" {
		tokenRefreshesTotal.WithLabelValues("missing").Inc()
		return models.TokenPair{}, &AuthExpiredError{Cause: errors.New("no refresh token stored")}
	}

	pair, err := c.exchange(ctx, refreshToken)
	if err != nil {
		tokenRefreshesTotal.WithLabelValues("failed").Inc()
		log.Printf("Token refresh failed, clearing stored tokens: %v", err)
		if clearErr := ClearTokens(c.store); clearErr != nil {
			log.Printf("failed to clear tokens: %v", clearErr)
		}
		return models.TokenPair{}, &AuthExpiredError{Cause: err}
	}

	if err := SaveTokens(c.store, pair); err != nil {
		// The server has rotated the refresh token, so the stored one is dead.
		tokenRefreshesTotal.WithLabelValues("failed").Inc()
		log.Printf("Failed to persist refreshed tokens, clearing stored tokens: %v", err)
		if clearErr := ClearTokens(c.store); clearErr != nil {
			log.Printf("failed to clear tokens: %v", clearErr)
		}
		return models.TokenPair{}, &AuthExpiredError{Cause: err}
	}

	c.mu.Lock()
	c.lastRefresh = time.Now()
	c.mu.Unlock()

	tokenRefreshesTotal.WithLabelValues("success").Inc()
	log.Printf("Token refresh completed successfully")
	return pair, nil
}

// exchange calls the refresh endpoint directly, outside the 401 handling in
// Send, so a rejected refresh can never recurse.
func (c *apiClient) exchange(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	req, err := NewJSONRequest(http.MethodPost, refreshPath, models.TokenRefreshRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return models.TokenPair{}, err
	}
	req.Anonymous = true

	resp, err := c.do(ctx, req, "")
	if err != nil {
		return models.TokenPair{}, err
	}

	var pair models.TokenPair
	if err := resp.Decode(&pair); err != nil {
		return models.TokenPair{}, err
	}
	if !pair.Valid() {
		return models.TokenPair{}, errors.New("refresh response did not contain a token pair")
	}
	return pair, nil
}

func (c *apiClient) buildUrl(req *Request) string {
	target := c.baseUrl + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	return target
}

func (c *apiClient) do(ctx context.Context, req *Request, token string) (*Response, error) {
	target := c.buildUrl(req)
	log.Printf("%s %s", req.Method, target)

	var body io.Reader
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for name, values := range req.Header {
		for _, value := range values {
			httpReq.Header.Add(name, value)
		}
	}
	httpReq.Header.Del("Authorization")
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	httpReq.Header.Set("Accept", "application/json")
	if len(req.Body) > 0 {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		httpReq.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		observeRequest(req.Method, 0)
		return nil, &TransportError{Method: req.Method, URL: target, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("failed to close body: %v", err)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(req.Method, 0)
		return nil, &TransportError{Method: req.Method, URL: target, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	observeRequest(req.Method, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{Method: req.Method, URL: target, StatusCode: resp.StatusCode, Body: data}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
