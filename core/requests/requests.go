// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package requests is the HTTP transport layer: it issues outbound requests,
decodes compressed response bodies, and instruments every exchange through
core/audit.

It knows nothing about the VK API response envelope; callers interpret the
returned bytes.
*/
package requests

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"codeberg.org/vkapi/vkapi/core/audit"
	"codeberg.org/vkapi/vkapi/core/idgen"
)

// errStatusNotOK wraps non-2xx transport responses.
var errStatusNotOK = errors.New("unexpected HTTP status")

// Options describe a single outbound request.
type Options struct {
	// Destination tags the request in audit logs.
	Destination audit.TrafficDestination

	// URL is the absolute request URL.
	URL string

	// Form, when non-nil, is sent as an URL-encoded POST body. Nil means GET.
	Form url.Values

	// UserAgent overrides the User-Agent header when non-empty.
	UserAgent string

	// Client overrides the shared HTTP client when non-nil.
	Client *http.Client
}

// PostForm issues a POST with an URL-encoded form body and returns the
// decoded response body.
//
// Responses with a non-2xx status are rejected; the VK API reports
// application-level errors inside 200 responses, so a bad status here always
// means a transport or endpoint problem.
func PostForm(ctx context.Context, opts Options) ([]byte, error) {
	if opts.Form == nil {
		opts.Form = url.Values{}
	}

	return perform(ctx, opts)
}

// Get issues a GET request and returns the decoded response body. Used by
// the offline method-listing fetcher, not by API calls.
func Get(ctx context.Context, opts Options) ([]byte, error) {
	opts.Form = nil

	return perform(ctx, opts)
}

func perform(ctx context.Context, opts Options) ([]byte, error) {
	req, err := newRequest(ctx, opts)
	if err != nil {
		return nil, err
	}

	resp, body, err := sendRequest(ctx, pickClient(opts), opts.Destination, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w %d (%s) from %s",
			errStatusNotOK, resp.StatusCode, http.StatusText(resp.StatusCode), opts.URL)
	}

	return body, nil
}

// newRequest constructs an *http.Request from Options.
func newRequest(ctx context.Context, opts Options) (*http.Request, error) {
	var (
		method  = http.MethodGet
		reqBody io.Reader
	)

	if opts.Form != nil {
		method = http.MethodPost
		reqBody = strings.NewReader(opts.Form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, opts.URL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if opts.Form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	// We decode these ourselves in decodeBody; setting the header manually
	// disables the transport's automatic gzip handling.
	req.Header.Set("Accept-Encoding", "gzip, zstd")

	return req, nil
}

// sendRequest executes the HTTP request inside an audit span and returns the
// response together with its fully read, decoded body.
func sendRequest(
	ctx context.Context,
	client *http.Client,
	dest audit.TrafficDestination,
	req *http.Request,
) (_ *http.Response, _ []byte, err error) {
	span := audit.Span{
		Destination: dest,
		RequestID:   idgen.Make(),
		Method:      req.Method,
		URL:         req.URL.String(),
	}

	defer func() { span.Error = err }()

	ctx = span.Begin(ctx)
	defer span.End() // in case of error

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	span.StatusCode = resp.StatusCode

	body, err := decodeBody(resp)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.BodySize = len(body)

	span.End()
	span.Log(ctx)

	return resp, body, nil
}

// decodeBody reads the response body, reversing any Content-Encoding the
// server applied.
func decodeBody(resp *http.Response) ([]byte, error) {
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip reader: %w", err)
		}
		defer gz.Close()

		return io.ReadAll(gz)
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd reader: %w", err)
		}
		defer zr.Close()

		return io.ReadAll(zr.IOReadCloser())
	default:
		return io.ReadAll(resp.Body)
	}
}

func pickClient(opts Options) *http.Client {
	if opts.Client != nil {
		return opts.Client
	}

	return HTTPClient
}
