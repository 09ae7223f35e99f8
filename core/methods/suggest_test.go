// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package methods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, data string) *Registry {
	t.Helper()

	reg, err := Parse(data)
	require.NoError(t, err)

	return reg
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		candidate string
		registry  string
		expected  string
	}{
		{"SingleTypo", "wall.gett", "wall.get,wall.post", "wall.get"},
		{"Transposition", "users.gte", "users.get,users.search", "users.get"},
		{"WrongNamespace", "user.get", "users.get,wall.get", "users.get"},
		{"CaseMismatchCostsEdits", "Wall.get", "wall.get,wall.post", "wall.get"},
		{"NothingClose", "ab", "messages.getLongPollHistory", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg := mustParse(t, tc.registry)
			assert.Equal(t, tc.expected, Suggest(tc.candidate, reg))
		})
	}
}

func TestSuggest_TieKeepsFirstEntry(t *testing.T) {
	t.Parallel()

	// Both entries are one edit away; the scan must keep the first one.
	reg := mustParse(t, "wall.getx,wall.gety")
	assert.Equal(t, "wall.getx", Suggest("wall.get", reg))

	// Same entries in the opposite resource order flip the result.
	reg = mustParse(t, "wall.gety,wall.getx")
	assert.Equal(t, "wall.gety", Suggest("wall.get", reg))
}

func TestSuggest_EmptyCases(t *testing.T) {
	t.Parallel()

	reg := mustParse(t, "users.get")

	// An empty candidate can never beat its own zero-length threshold.
	assert.Equal(t, "", Suggest("", reg))
}

func TestSuggest_ReturnsMinimalEntry(t *testing.T) {
	t.Parallel()

	reg := mustParse(t, "friends.get,friends.getOnline,friends.getRequests")

	got := Suggest("friends.getOnlin", reg)
	require.Equal(t, "friends.getOnline", got)

	// No other entry may be strictly closer than the returned one.
	bestDist := levenshtein("friends.getOnlin", got)
	for _, name := range reg.All() {
		assert.GreaterOrEqual(t, levenshtein("friends.getOnlin", name), bestDist)
	}
}

func TestLevenshtein(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		a, b     string
		expected int
	}{
		{"BothEmpty", "", "", 0},
		{"LeftEmpty", "", "wall.get", 8},
		{"RightEmpty", "wall.get", "", 8},
		{"Identical", "wall.get", "wall.get", 0},
		{"Substitution", "wall.get", "wall.gat", 1},
		{"Insertion", "wall.get", "wall.gett", 1},
		{"Deletion", "wall.get", "wall.gt", 1},
		{"CaseSensitive", "users.get", "Users.get", 1},
		{"Disjoint", "abc", "xyz", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, levenshtein(tc.a, tc.b))
			// The metric is symmetric.
			assert.Equal(t, tc.expected, levenshtein(tc.b, tc.a))
		})
	}
}
