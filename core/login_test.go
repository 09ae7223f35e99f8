// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package core_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/vkapi/vkapi/core"
)

func newLoginClient(t *testing.T, handler http.HandlerFunc) *core.Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return core.New(core.WithOAuthURL(srv.URL + "/token"))
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "password", r.PostForm.Get("grant_type"))
		assert.Equal(t, "durov", r.PostForm.Get("username"))
		assert.Equal(t, "hunter2", r.PostForm.Get("password"))
		assert.Equal(t, "wall,messages", r.PostForm.Get("scope"))
		assert.NotEmpty(t, r.PostForm.Get("client_id"))
		assert.NotEmpty(t, r.PostForm.Get("client_secret"))
		assert.False(t, r.PostForm.Has("code"))

		_, _ = w.Write([]byte(`{"access_token":"fresh-token","expires_in":0,"user_id":1}`))
	})

	client.SetToken("stale-token")

	err := client.Login(t.Context(), core.Credentials{
		Login:    "durov",
		Password: "hunter2",
		Scope:    "wall,messages",
	})
	require.NoError(t, err)

	// A successful login overwrites the previous session token.
	assert.Equal(t, "fresh-token", client.Token())
}

func TestClient_Login_TwoFactorCode(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "123456", r.PostForm.Get("code"))

		_, _ = w.Write([]byte(`{"access_token":"t"}`))
	})

	err := client.Login(t.Context(), core.Credentials{
		Login:         "durov",
		Password:      "hunter2",
		TwoFactorCode: "123456",
	})
	require.NoError(t, err)
}

func TestClient_Login_ProviderError(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"need_validation","error_description":"please open redirect_uri"}`))
	})

	err := client.Login(t.Context(), core.Credentials{Login: "durov", Password: "wrong"})

	var authErr *core.AuthError
	require.ErrorAs(t, err, &authErr)

	assert.Equal(t, "please open redirect_uri", authErr.Description)
	assert.Empty(t, client.Token(), "a failed login must not set a token")
}

func TestClient_Login_ErrorWithoutDescription(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error":"invalid_client"}`))
	})

	err := client.Login(t.Context(), core.Credentials{Login: "durov", Password: "wrong"})

	var authErr *core.AuthError
	require.ErrorAs(t, err, &authErr)

	assert.Equal(t, "invalid_client", authErr.Description)
}

func TestClient_Login_NoTokenNoError(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"user_id":1}`))
	})

	err := client.Login(t.Context(), core.Credentials{Login: "durov", Password: "hunter2"})
	assert.ErrorIs(t, err, core.ErrNoToken)
}

func TestClient_Login_InvalidJSON(t *testing.T) {
	t.Parallel()

	client := newLoginClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>busy</html>`))
	})

	err := client.Login(t.Context(), core.Credentials{Login: "durov", Password: "hunter2"})
	assert.ErrorIs(t, err, core.ErrInvalidJSON)
}
