// Copyright 2024 - 2026, the vkapi contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Package methods holds the registry of remote method names supported by the
VK API, together with a closest-match suggester for names that miss it.

The backing resource is a flat comma-separated list of fully qualified
`namespace.method` identifiers, regenerated offline by cmd/genmethods.
*/
package methods

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

//go:embed data/methods.txt
var embeddedList string

var (
	errEmptyResource   = errors.New("method list resource is empty")
	errEmptyEntry      = errors.New("method list contains an empty entry")
	errWhitespaceEntry = errors.New("method list entry contains whitespace")
	errDuplicateEntry  = errors.New("method list contains a duplicate entry")
)

// Registry is an immutable set of known remote method identifiers.
//
// Iteration order is the order of the backing resource, which matters only
// for deterministic tie-breaking in Suggest.
type Registry struct {
	names []string
	index map[string]struct{}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded method list.
//
// The embedded resource is validated on first use; a malformed resource is a
// build defect, so Default panics rather than limping along without a
// registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		reg, err := Parse(embeddedList)
		if err != nil {
			panic(fmt.Sprintf("methods: embedded method list is malformed: %v", err))
		}

		defaultRegistry = reg
	})

	return defaultRegistry
}

// Load reads a comma-separated method list from r and builds a Registry.
func Load(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read method list: %w", err)
	}

	return Parse(string(data))
}

// Parse builds a Registry from a flat comma-separated list of identifiers.
//
// A trailing newline is tolerated. Empty entries, entries with embedded
// whitespace, and duplicates are all rejected: the resource is generated
// mechanically, so any of these means the resource is broken.
func Parse(data string) (*Registry, error) {
	data = strings.TrimRight(data, "\n")
	if data == "" {
		return nil, errEmptyResource
	}

	entries := strings.Split(data, ",")

	reg := &Registry{
		names: make([]string, 0, len(entries)),
		index: make(map[string]struct{}, len(entries)),
	}

	for _, entry := range entries {
		if entry == "" {
			return nil, errEmptyEntry
		}

		if strings.ContainsAny(entry, " \t\r\n") {
			return nil, fmt.Errorf("%w: %q", errWhitespaceEntry, entry)
		}

		if _, dup := reg.index[entry]; dup {
			return nil, fmt.Errorf("%w: %q", errDuplicateEntry, entry)
		}

		reg.names = append(reg.names, entry)
		reg.index[entry] = struct{}{}
	}

	return reg, nil
}

// Contains reports whether name is a known method. The check is exact and
// case-sensitive.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]

	return ok
}

// All returns a copy of every known method name in resource order.
func (r *Registry) All() []string {
	names := make([]string, len(r.names))
	copy(names, r.names)

	return names
}

// Len returns the number of known methods.
func (r *Registry) Len() int {
	return len(r.names)
}
