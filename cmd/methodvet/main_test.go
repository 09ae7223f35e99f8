// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralString(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		src      string
		expected string
		ok       bool
	}{
		{"DoubleQuoted", `"users.get"`, "users.get", true},
		{"RawString", "`wall.post`", "wall.post", true},
		{"Empty", `""`, "", false},
		{"Blank", `"  "`, "", false},
		{"NotALiteral", `someVar`, "", false},
		{"IntLiteral", `42`, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			expr, err := parser.ParseExpr(tc.src)
			require.NoError(t, err)

			value, ok := literalString(expr)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, value)
		})
	}
}

func TestFinding_String(t *testing.T) {
	t.Parallel()

	pos := token.Position{Filename: "bot.go", Line: 12, Column: 30}

	withHint := finding{pos: pos, method: "wall.gett", suggestion: "wall.get"}
	assert.Equal(t, `bot.go:12:30: unknown method "wall.gett"; did you mean "wall.get"?`, withHint.String())

	withoutHint := finding{pos: pos, method: "zz"}
	assert.Equal(t, `bot.go:12:30: unknown method "zz"`, withoutHint.String())
}
