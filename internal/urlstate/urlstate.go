// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package urlstate binds the directory FilterState to a query-parameter
// store such as a page URL. State is seeded from the store on start and
// written back when mode, specialty, or sort change. Search term changes are
// never written.
package urlstate

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// Query parameter keys.
const (
	KeySearch    = "search"
	KeyMode      = "mode"
	KeySpecialty = "specialty"
	KeySort      = "sort"
)

// Store is a persisted key-value store of query parameters.
type Store interface {
	// Get returns the first value for key, or "".
	Get(key string) string
	// GetAll returns every value for a repeated key.
	GetAll(key string) []string
	// Replace swaps the full parameter set for values.
	Replace(values url.Values)
}

// Query is an in-memory Store backed by url.Values.
type Query struct {
	values url.Values
}

var _ Store = (*Query)(nil)

// NewQuery returns a Query holding a copy of values.
func NewQuery(values url.Values) *Query {
	return &Query{values: cloneValues(values)}
}

// ParseQuery builds a Query from a raw query string ("a=b&c=d", with or
// without a leading "?") or from a full URL.
func ParseQuery(raw string) (*Query, error) {
	raw = strings.TrimSpace(raw)
	if i := strings.Index(raw, "?"); i >= 0 {
		raw = raw[i+1:]
	} else if strings.Contains(raw, "://") {
		raw = ""
	}
	if i := strings.Index(raw, "#"); i >= 0 {
		raw = raw[:i]
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing query %q: %w", raw, err)
	}
	return &Query{values: values}, nil
}

// Get returns the first value for key.
func (q *Query) Get(key string) string { return q.values.Get(key) }

// GetAll returns all values for key.
func (q *Query) GetAll(key string) []string { return slices.Clone(q.values[key]) }

// Replace swaps the parameter set.
func (q *Query) Replace(values url.Values) { q.values = cloneValues(values) }

// Values returns a copy of the current parameters.
func (q *Query) Values() url.Values { return cloneValues(q.values) }

// String encodes the parameters as a query string without the leading "?".
// Keys are written in the canonical order search, mode, specialty, sort,
// followed by any other keys sorted by name.
func (q *Query) String() string {
	return Encode(q.values)
}

// Encode renders values with the directory keys first, in a fixed order.
func Encode(values url.Values) string {
	var b strings.Builder
	write := func(key string) {
		for _, v := range values[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	known := []string{KeySearch, KeyMode, KeySpecialty, KeySort}
	for _, k := range known {
		write(k)
	}
	var rest []string
	for k := range values {
		if !slices.Contains(known, k) {
			rest = append(rest, k)
		}
	}
	slices.Sort(rest)
	for _, k := range rest {
		write(k)
	}
	return b.String()
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = slices.Clone(vs)
	}
	return out
}

// Read seeds a FilterState from the store. Absent keys give "", an empty
// specialty set, and no sort. Repeated specialties are collapsed.
func Read(s Store) types.FilterState {
	var specialties []string
	for _, v := range s.GetAll(KeySpecialty) {
		if !slices.Contains(specialties, v) {
			specialties = append(specialties, v)
		}
	}
	return types.FilterState{
		SearchTerm:  s.Get(KeySearch),
		ConsultMode: s.Get(KeyMode),
		Specialties: specialties,
		SortOption:  types.SortOption(s.Get(KeySort)),
	}
}

// Dimension names a non-search filter dimension.
type Dimension string

const (
	DimMode      Dimension = KeyMode
	DimSpecialty Dimension = KeySpecialty
	DimSort      Dimension = KeySort
)

// Write rebuilds the full parameter set after dimension changed and replaces
// the store contents. state must already hold the new value.
//
// The search term is included when non-empty. Under
// types.URLPolicyChangedOnly only the changed dimension follows it, so
// values of the other two dimensions are dropped from the store. Under
// types.URLPolicyMerge all three dimensions are written. Empty values are
// omitted in both cases.
func Write(s Store, state types.FilterState, changed Dimension, policy types.URLPolicy) url.Values {
	values := url.Values{}
	if state.SearchTerm != "" {
		values.Set(KeySearch, state.SearchTerm)
	}

	include := func(d Dimension) bool {
		return policy == types.URLPolicyMerge || d == changed
	}
	if include(DimMode) && state.ConsultMode != "" {
		values.Set(KeyMode, state.ConsultMode)
	}
	if include(DimSpecialty) {
		for _, sp := range state.Specialties {
			values.Add(KeySpecialty, sp)
		}
	}
	if include(DimSort) && state.SortOption != types.SortNone {
		values.Set(KeySort, string(state.SortOption))
	}

	s.Replace(values)
	return values
}

// Values returns the parameters that fully describe state, as written by the
// merge policy. It does not touch any store.
func Values(state types.FilterState) url.Values {
	q := NewQuery(nil)
	return Write(q, state, "", types.URLPolicyMerge)
}

// ParsePolicy validates a configured policy name. An empty name selects
// types.URLPolicyChangedOnly.
func ParsePolicy(name string) (types.URLPolicy, error) {
	switch types.URLPolicy(name) {
	case "", types.URLPolicyChangedOnly:
		return types.URLPolicyChangedOnly, nil
	case types.URLPolicyMerge:
		return types.URLPolicyMerge, nil
	default:
		return "", fmt.Errorf("unknown url policy %q: use %s or %s", name, types.URLPolicyChangedOnly, types.URLPolicyMerge)
	}
}
