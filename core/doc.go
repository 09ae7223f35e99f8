// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package core makes requests to the VK API and parses responses into
structured data.

A minimal session looks like:

	package main

	import (
		"context"
		"fmt"

		"codeberg.org/vkapi/vkapi/core"
	)

	func main() {
		ctx := context.Background()

		client := core.New(core.WithToken("YOUR_TOKEN_HERE"))

		resp, err := client.Call(ctx, "users.get", core.Params{"user_ids": "1"})
		if err != nil {
			panic(err)
		}

		fmt.Println(resp.Get("0.first_name").String())
	}

Method names are validated against the registry in core/methods before any
network I/O happens; a name the registry does not know is rejected with a
closest-match suggestion.
*/
package core
