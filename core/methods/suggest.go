// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

package methods

// Suggest returns the registry entry closest to candidate by Levenshtein
// distance, or "" if no entry is strictly closer than len(candidate).
// Ties keep the first entry in resource order.
//
// The result is a hint for error messages; callers must not auto-substitute
// it. Behavior for a candidate already in the registry is unspecified.
func Suggest(candidate string, reg *Registry) string {
	best := ""
	bestDist := len(candidate)

	for _, name := range reg.names {
		if d := levenshtein(candidate, name); d < bestDist {
			bestDist = d
			best = name
		}
	}

	return best
}

// levenshtein computes the unweighted edit distance between two strings
// using a single-row dynamic programming approach. Comparison is
// case-sensitive and byte-level; method names are ASCII.
func levenshtein(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	// Keep the row sized by the shorter string.
	if len(a) > len(b) {
		a, b = b, a
	}

	row := make([]int, len(a)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(b); j++ {
		prev := row[0]
		row[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			diag := prev
			prev = row[i]
			row[i] = min(row[i]+1, row[i-1]+1, diag+cost)
		}
	}

	return row[len(a)]
}
