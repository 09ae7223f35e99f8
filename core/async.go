// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"

	"github.com/tidwall/gjson"
)

// CallResult carries the outcome of a non-blocking call.
type CallResult struct {
	Response gjson.Result
	Err      error
}

// AsyncClient is the non-blocking variant. It runs each call on its own
// goroutine over any API implementation; the request/response cycles are
// independent and share no state beyond the wrapped client's session token.
type AsyncClient struct {
	api API
}

// NewAsync wraps api with the non-blocking call surface.
func NewAsync(api API) *AsyncClient {
	return &AsyncClient{api: api}
}

// Call starts the method call and returns a channel that receives the
// single result. The channel is buffered; the result is never dropped even
// if nobody is receiving yet.
func (a *AsyncClient) Call(ctx context.Context, method string, params Params) <-chan CallResult {
	ch := make(chan CallResult, 1)

	go func() {
		resp, err := a.api.Call(ctx, method, params)
		ch <- CallResult{Response: resp, Err: err}
		close(ch)
	}()

	return ch
}

// Login starts the password grant and returns a channel that receives its
// single error value (nil on success).
func (a *AsyncClient) Login(ctx context.Context, creds Credentials) <-chan error {
	ch := make(chan error, 1)

	go func() {
		ch <- a.api.Login(ctx, creds)
		close(ch)
	}()

	return ch
}
