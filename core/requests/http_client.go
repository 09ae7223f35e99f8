// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package requests

import (
	"crypto/tls"
	"net/http"
	"time"
)

const (
	// clientSessionCacheSize defines the size of the TLS session cache.
	clientSessionCacheSize = 20

	// maxIdleConnsPerHost defines maximum idle connections to keep per host.
	maxIdleConnsPerHost = 10

	// defaultTimeout bounds a full request/response cycle when the caller's
	// context carries no deadline of its own.
	defaultTimeout = 30 * time.Second
)

// HTTPClient is a pre-configured http.Client shared by all requests that do
// not supply their own.
var HTTPClient = NewHTTPClient(defaultTimeout)

// NewHTTPClient builds an http.Client with the standard transport settings
// and the given overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				ClientSessionCache: tls.NewLRUClientSessionCache(clientSessionCacheSize),
				MinVersion:         tls.VersionTLS12,
			},
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: maxIdleConnsPerHost,
		},
	}
}
