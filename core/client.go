// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"codeberg.org/vkapi/vkapi/config"
	"codeberg.org/vkapi/vkapi/core/audit"
	"codeberg.org/vkapi/vkapi/core/methods"
	"codeberg.org/vkapi/vkapi/core/requests"
)

// Endpoint and protocol defaults. All of them can be overridden with
// options; tests point them at local servers.
const (
	DefaultBaseURL  = "https://api.vk.com/method/"
	DefaultOAuthURL = "https://oauth.vk.com/token"
	DefaultVersion  = "5.131"

	// Credentials of the official Android client, which is allowed to use
	// the password grant.
	defaultClientID     = "2274003"
	defaultClientSecret = "hi6KyCsyKqB3HcVab9"
)

// Params maps request parameter names to string values for a single call.
type Params map[string]string

// API is the call surface shared by the blocking and non-blocking clients.
type API interface {
	// Call invokes a remote method and returns its `response` payload.
	Call(ctx context.Context, method string, params Params) (gjson.Result, error)

	// Login performs the password grant and stores the returned access
	// token as the session token.
	Login(ctx context.Context, creds Credentials) error
}

// Client is the blocking API client. It holds the session token in memory;
// a Client is meant to serve one logical session and makes no guarantees
// about concurrent token mutation beyond last-writer-wins.
type Client struct {
	baseURL      string
	oauthURL     string
	version      string
	userAgent    string
	clientID     string
	clientSecret string

	registry   *methods.Registry
	httpClient *http.Client

	token string
}

var _ API = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithToken sets the initial session token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRegistry replaces the default method registry.
func WithRegistry(reg *methods.Registry) Option {
	return func(c *Client) { c.registry = reg }
}

// WithHTTPClient replaces the shared HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL overrides the method endpoint base. The value must end in /.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithOAuthURL overrides the token endpoint.
func WithOAuthURL(u string) Option {
	return func(c *Client) { c.oauthURL = u }
}

// WithVersion overrides the API version sent with every request.
func WithVersion(v string) Option {
	return func(c *Client) { c.version = v }
}

// WithUserAgent sets the User-Agent header for every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// WithConfig applies the client-facing fields of a loaded configuration:
// endpoints, API version, user agent, and request timeout. Later options
// still override individual fields.
func WithConfig(cfg *config.Config) Option {
	return func(c *Client) {
		c.baseURL = cfg.API.BaseURL
		c.oauthURL = cfg.API.OAuthURL
		c.version = cfg.API.Version
		c.userAgent = cfg.Request.UserAgent
		c.httpClient = requests.NewHTTPClient(cfg.Request.Timeout)
	}
}

// WithOAuthApp overrides the fixed client_id/client_secret pair used by the
// password grant.
func WithOAuthApp(id, secret string) Option {
	return func(c *Client) {
		c.clientID = id
		c.clientSecret = secret
	}
}

// New constructs a Client with the default endpoints, API version, and the
// embedded method registry.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:      DefaultBaseURL,
		oauthURL:     DefaultOAuthURL,
		version:      DefaultVersion,
		clientID:     defaultClientID,
		clientSecret: defaultClientSecret,
		registry:     methods.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the current session token.
func (c *Client) Token() string {
	return c.token
}

// SetToken replaces the session token, overwriting any prior value.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Call invokes method with params and returns the `response` payload.
//
// The method name is checked against the registry first; an unknown name is
// rejected with an *UnknownMethodError before any network I/O. Responses
// carrying an `error` object become an *APIError. A response with neither an
// `error` nor a `response` field is returned whole.
func (c *Client) Call(ctx context.Context, method string, params Params) (gjson.Result, error) {
	if !c.registry.Contains(method) {
		return gjson.Result{}, &UnknownMethodError{
			Method:     method,
			Suggestion: methods.Suggest(method, c.registry),
		}
	}

	form := url.Values{}
	for name, value := range params {
		form.Set(name, value)
	}

	form.Set("v", c.version)

	if c.token != "" {
		form.Set("access_token", c.token)
	}

	body, err := requests.PostForm(ctx, requests.Options{
		Destination: audit.ToAPI,
		URL:         c.baseURL + method,
		Form:        form,
		UserAgent:   c.userAgent,
		Client:      c.httpClient,
	})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("method %s failed: %w", method, err)
	}

	return parseResponse(body)
}

// parseResponse interprets a raw method response body.
func parseResponse(body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s", ErrInvalidJSON, body)
	}

	doc := gjson.ParseBytes(body)

	if errObj := doc.Get("error"); errObj.Exists() {
		return gjson.Result{}, &APIError{
			Code:    int(errObj.Get("error_code").Int()),
			Message: errObj.Get("error_msg").String(),
		}
	}

	if resp := doc.Get("response"); resp.Exists() {
		return resp, nil
	}

	// Neither an error nor a response envelope: hand the whole document
	// back as-is.
	return doc, nil
}
