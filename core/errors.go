// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidJSON wraps responses whose body is not valid JSON.
	ErrInvalidJSON = errors.New("response contained invalid JSON")

	// ErrNoToken is returned when the token endpoint reports neither a
	// token nor an error.
	ErrNoToken = errors.New("token endpoint returned neither a token nor an error")
)

// Error codes the VK API is known to report.
const (
	ErrCodeUnknownMethod      = 3
	ErrCodeAuthFailed         = 5
	ErrCodeTooManyRequests    = 6
	ErrCodeFloodControl       = 9
	ErrCodeCaptchaNeeded      = 14
	ErrCodeValidationRequired = 17
)

// apiErrorMessages maps known error codes to human-readable messages.
// Codes outside this table fall back to a generic format embedding the raw
// code and server message.
var apiErrorMessages = map[int]string{
	ErrCodeUnknownMethod:      "Unknown method passed",
	ErrCodeAuthFailed:         "Authorization failed: invalid access token",
	ErrCodeTooManyRequests:    "Too many requests per second",
	ErrCodeFloodControl:       "Flood control: too many identical actions",
	ErrCodeCaptchaNeeded:      "Captcha needed",
	ErrCodeValidationRequired: "Validation required: confirm the action in a browser",
}

// APIError is an application-level error reported inside a method response.
type APIError struct {
	// Code is the VK error_code value.
	Code int

	// Message is the raw error_msg from the server.
	Message string
}

func (e *APIError) Error() string {
	if msg, ok := apiErrorMessages[e.Code]; ok {
		return msg
	}

	return fmt.Sprintf("API error %d: %s", e.Code, e.Message)
}

// AuthError is an error reported by the OAuth token endpoint during login.
type AuthError struct {
	// Description is the provider's own error description.
	Description string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Description
}

// UnknownMethodError is returned when a method name fails registry
// validation. No network request is issued for the call that produced it.
type UnknownMethodError struct {
	// Method is the rejected identifier.
	Method string

	// Suggestion is the closest known identifier, or "" when nothing in the
	// registry resembles Method.
	Suggestion string
}

func (e *UnknownMethodError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("unknown method %q", e.Method)
	}

	return fmt.Sprintf("unknown method %q; did you mean %q?", e.Method, e.Suggestion)
}
