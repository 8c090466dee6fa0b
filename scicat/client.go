// Copyright (C) The SciCat Project Authors. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package scicat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/scicatproject/scicat-go/ctxlog"
)

// apiVersionPath is the fixed path segment between the configured
// base URL and every resource path.
const apiVersionPath = "api/v3"

// loginPath is the one resource that may be requested without a
// session token.
const loginPath = "Users/login"

// DefaultTimeout bounds each request when ClientConfig.Timeout is not
// set.
const DefaultTimeout = 30 * time.Second

// ClientConfig is the constructor surface of a Client. It can be
// loaded from a YAML/JSON file with the config package.
type ClientConfig struct {
	// Catalog base URL, e.g. "https://scicat.example.org". The
	// fixed "api/v3" segment is appended by the client.
	BaseURL string `json:"baseURL"`

	// Login credentials. Not needed when Token is set.
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`

	// Session token. When set, no login exchange is performed at
	// construction.
	Token string `json:"token,omitempty"`

	// When true, NewClient does not log in. The caller must call
	// Login before any other operation.
	DeferLogin bool `json:"deferLogin,omitempty"`

	// Per-request timeout. Zero means DefaultTimeout.
	Timeout Duration `json:"timeout,omitempty"`

	// Accept unverified TLS certificates. This works only if
	// Client is nil: otherwise, it has no effect.
	Insecure bool `json:"insecure,omitempty"`

	// HTTP headers to add/override in outgoing requests, e.g. for
	// routing through a host proxy.
	SendHeader http.Header `json:"sendHeader,omitempty"`

	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client `json:"-"`
}

// A Client is an HTTP client with a catalog endpoint and a session
// token. It offers one method per entity action; every method blocks
// until the response arrives, fails, or times out, and no failed
// request is retried.
//
// The token is written by Login and read by every other call. The
// Client does no internal locking: callers using it from multiple
// goroutines must serialize access or use one Client per goroutine.
type Client struct {
	// HTTP client used to make requests. If nil,
	// DefaultSecureClient or InsecureHTTPClient will be used.
	Client *http.Client `json:"-"`

	// Catalog base URL without the api version segment.
	BaseURL string

	// Login credentials used by Login.
	Username string
	Password string

	// Session token sent as a bearer credential on every request.
	AuthToken string

	// Id of the account the token belongs to, learned from the
	// login exchange. Empty on clients with a preset token.
	UserID string

	// Accept unverified certificates. This works only if the
	// Client field is nil: otherwise, it has no effect.
	Insecure bool

	// HTTP headers to add/override in outgoing requests.
	SendHeader http.Header

	// Timeout for requests. Zero disables the client-level
	// deadline; each http.Request's context still applies.
	Timeout time.Duration
}

// InsecureHTTPClient is the default http.Client used by a Client with
// Insecure==true and Client==nil.
var InsecureHTTPClient = &http.Client{
	Transport: &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: true}}}

// DefaultSecureClient is the default http.Client used by a Client otherwise.
var DefaultSecureClient = &http.Client{}

// NewClient returns a Client for the catalog at cfg.BaseURL. Unless
// cfg.Token is preset or cfg.DeferLogin is true, it performs the
// login exchange before returning, and construction fails if the
// login fails.
func NewClient(ctx context.Context, cfg ClientConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("scicat.NewClient: BaseURL must be set")
	}
	timeout := cfg.Timeout.Duration()
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		Client:     cfg.Client,
		BaseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		Username:   cfg.Username,
		Password:   cfg.Password,
		AuthToken:  cfg.Token,
		Insecure:   cfg.Insecure,
		SendHeader: cfg.SendHeader,
		Timeout:    timeout,
	}
	if c.AuthToken == "" && !cfg.DeferLogin {
		if err := c.Login(ctx); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Login exchanges the configured username and password for a session
// token and stores it on the client. The token is not refreshed
// afterwards: when the catalog rejects it on a later call, that call
// fails with AuthenticationError and the caller decides whether to
// log in again.
func (c *Client) Login(ctx context.Context) error {
	if c.Username == "" || c.Password == "" {
		return &AuthenticationError{Op: "login", Message: "username and password are not configured"}
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		ID          string `json:"id"`
		UserID      string `json:"userId"`
	}
	err := c.RequestAndDecode(ctx, &resp, http.MethodPost, loginPath, nil, map[string]string{
		"username": c.Username,
		"password": c.Password,
	})
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		// Older backends answer a bad login with something
		// other than 401.
		return &AuthenticationError{Op: "login", StatusCode: apiErr.StatusCode, Message: apiErr.Message}
	}
	if err != nil {
		return err
	}
	// Current backends return access_token; the legacy loopback
	// API returned the token in id.
	token := resp.AccessToken
	if token == "" {
		token = resp.ID
	}
	if token == "" {
		return &AuthenticationError{Op: "login", Message: "login response contained no token"}
	}
	c.AuthToken = token
	c.UserID = resp.UserID
	ctxlog.FromContext(ctx).WithField("user", c.Username).Debug("logged in to catalog")
	return nil
}

// Do adds the Authorization header and the client-level deadline,
// then calls (*http.Client)Do().
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("Authorization") == "" && c.AuthToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.AuthToken)
	}
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx := req.Context()
		ctx, cancel = context.WithDeadline(ctx, time.Now().Add(c.Timeout))
		req = req.WithContext(ctx)
	}
	resp, err := c.httpClient().Do(req)
	if err == nil && cancel != nil {
		// We need to call cancel() eventually, but we can't
		// use "defer cancel()" because the context has to
		// stay alive until the caller has finished reading
		// the response body.
		resp.Body = cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	} else if cancel != nil {
		cancel()
	}
	return resp, err
}

// cancelOnClose calls a provided CancelFunc when its wrapped
// ReadCloser's Close() method is called.
type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (coc cancelOnClose) Close() error {
	err := coc.ReadCloser.Close()
	coc.cancel()
	return err
}

// DoAndDecode performs req and unmarshals the response (which must be
// JSON) into dst. Use this instead of RequestAndDecode if you need
// more control of the http.Request object.
func (c *Client) DoAndDecode(dst interface{}, req *http.Request) error {
	resp, err := c.Do(req)
	if err != nil {
		return &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	defer resp.Body.Close()
	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: req.Method, URL: req.URL.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(req, resp, buf)
	}
	if dst == nil {
		return nil
	}
	if err := json.Unmarshal(buf, dst); err != nil {
		return &TransportError{Op: req.Method, URL: req.URL.String(), Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// RequestAndDecode marshals params to a JSON request body (when
// non-nil), issues the request against the catalog API, and decodes
// the response into dst. Every operation except the login exchange
// requires a session token; without one, RequestAndDecode fails with
// AuthenticationError before any request is sent.
//
// path is relative to the api version segment and must not contain a
// query string; pass query separately.
func (c *Client) RequestAndDecode(ctx context.Context, dst interface{}, method, path string, query url.Values, params interface{}) error {
	if path != loginPath && c.AuthToken == "" {
		return &AuthenticationError{Op: method + " " + path, Message: "no session token: log in first"}
	}
	urlString := c.apiURL(path)
	if len(query) > 0 {
		urlString += "?" + query.Encode()
	}
	var body io.Reader
	if params != nil {
		j, err := json.Marshal(params)
		if err != nil {
			return err
		}
		body = bytes.NewReader(j)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlString, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, v := range c.SendHeader {
		req.Header[k] = v
	}
	return c.DoAndDecode(dst, req)
}

func (c *Client) apiURL(path string) string {
	return c.BaseURL + "/" + apiVersionPath + "/" + path
}

func (c *Client) httpClient() *http.Client {
	switch {
	case c.Client != nil:
		return c.Client
	case c.Insecure:
		return InsecureHTTPClient
	default:
		return DefaultSecureClient
	}
}
