// Package registry maps human-readable class and gameplay-role names to
// guild role ids and display icons.
package registry

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// MaxKeyLength bounds a key in bytes. A role button id carries a session
// uuid and two keys and must stay within Discord's 100 byte custom id limit.
const MaxKeyLength = 24

// Entry is a single registered class or gameplay role
type Entry struct {
	DisplayName string
	RoleID      string
	Icon        string
}

// Key returns the identifier used in component custom ids
func (e Entry) Key() string {
	return strings.ToLower(e.DisplayName)
}

// Registry is an ordered, immutable set of entries keyed by lowercased
// display name.
type Registry struct {
	kind    string
	entries []Entry
	byKey   map[string]int
}

// New builds a registry. Display names must be unique under Unicode case
// folding since button identifiers are derived from them.
func New(kind string, entries []Entry) (*Registry, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%s registry: at least one entry is required", kind)
	}

	folder := cases.Fold()
	seen := make(map[string]string, len(entries))
	r := &Registry{
		kind:    kind,
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		e.DisplayName = strings.TrimSpace(e.DisplayName)
		if e.DisplayName == "" {
			return nil, fmt.Errorf("%s registry: entry with empty name", kind)
		}
		if e.RoleID == "" {
			return nil, fmt.Errorf("%s registry: %s has no role id", kind, e.DisplayName)
		}
		if len(e.Key()) > MaxKeyLength {
			return nil, fmt.Errorf("%s registry: %q is longer than %d bytes", kind, e.DisplayName, MaxKeyLength)
		}
		if strings.Contains(e.Key(), ":") {
			return nil, fmt.Errorf("%s registry: %q must not contain ':'", kind, e.DisplayName)
		}

		folded := folder.String(e.DisplayName)
		if prev, ok := seen[folded]; ok {
			return nil, fmt.Errorf("%s registry: %q collides with %q", kind, e.DisplayName, prev)
		}
		seen[folded] = e.DisplayName

		r.byKey[e.Key()] = len(r.entries)
		r.entries = append(r.entries, e)
	}

	return r, nil
}

// MustNew is like New but panics on error
func MustNew(kind string, entries []Entry) *Registry {
	r, err := New(kind, entries)
	if err != nil {
		panic(err)
	}
	return r
}

// Kind returns the registry name, e.g. "class"
func (r *Registry) Kind() string {
	return r.kind
}

// Entries returns the entries in configuration order
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries
func (r *Registry) Len() int {
	return len(r.entries)
}

// Lookup finds an entry by key or display name, ignoring case
func (r *Registry) Lookup(key string) (Entry, bool) {
	idx, ok := r.byKey[strings.ToLower(key)]
	if !ok {
		return Entry{}, false
	}
	return r.entries[idx], true
}

// RoleIDs returns the role ids of every entry
func (r *Registry) RoleIDs() []string {
	ids := make([]string, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.RoleID
	}
	return ids
}
