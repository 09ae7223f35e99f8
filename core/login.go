// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"

	"codeberg.org/vkapi/vkapi/core/audit"
	"codeberg.org/vkapi/vkapi/core/requests"
)

// Credentials are the inputs to the password grant.
type Credentials struct {
	Login    string
	Password string

	// TwoFactorCode is the optional second-factor code.
	TwoFactorCode string

	// Scope is the comma-separated permission scope, e.g. "wall,messages".
	Scope string
}

// Login exchanges creds for an access token at the OAuth endpoint and stores
// it as the session token, overwriting any prior value.
//
// A provider-reported failure surfaces as an *AuthError; whether to retry is
// the caller's decision.
func (c *Client) Login(ctx context.Context, creds Credentials) error {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("username", creds.Login)
	form.Set("password", creds.Password)
	form.Set("v", c.version)

	if creds.Scope != "" {
		form.Set("scope", creds.Scope)
	}

	if creds.TwoFactorCode != "" {
		form.Set("code", creds.TwoFactorCode)
	}

	body, err := requests.PostForm(ctx, requests.Options{
		Destination: audit.ToOAuth,
		URL:         c.oauthURL,
		Form:        form,
		UserAgent:   c.userAgent,
		Client:      c.httpClient,
	})
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}

	if !gjson.ValidBytes(body) {
		return fmt.Errorf("%w: %s", ErrInvalidJSON, body)
	}

	doc := gjson.ParseBytes(body)

	if errVal := doc.Get("error"); errVal.Exists() {
		description := doc.Get("error_description").String()
		if description == "" {
			description = errVal.String()
		}

		return &AuthError{Description: description}
	}

	token := doc.Get("access_token").String()
	if token == "" {
		return ErrNoToken
	}

	c.token = token

	log.Ctx(ctx).Debug().
		Str("login", creds.Login).
		Msg("Obtained access token")

	return nil
}
