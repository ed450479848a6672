// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "slices"

// SortOption selects the ordering of the displayed list.
type SortOption string

const (
	// SortNone keeps source order.
	SortNone       SortOption = ""
	SortFees       SortOption = "fees"
	SortExperience SortOption = "experience"
)

// SortOptions lists the selectable sort options in control order.
var SortOptions = []SortOption{SortFees, SortExperience}

// Known reports whether o is one of the sort options the directory applies.
// Unknown values are kept in state but leave the list unsorted.
func (o SortOption) Known() bool {
	return o == SortFees || o == SortExperience
}

// FilterState is the user-controlled state of the directory view. It is
// mirrored to the query-parameter store.
type FilterState struct {
	// SearchTerm is matched case-insensitively against doctor names.
	SearchTerm string `json:"search" yaml:"search"`

	// ConsultMode restricts to one mode. Empty means no filter.
	ConsultMode string `json:"mode" yaml:"mode"`

	// Specialties restricts to doctors with any of the listed specialties.
	// It is kept as an ordered set; empty means no filter.
	Specialties []string `json:"specialties" yaml:"specialties"`

	// SortOption orders the filtered list.
	SortOption SortOption `json:"sort" yaml:"sort"`
}

// HasSpecialty reports whether name is selected.
func (f FilterState) HasSpecialty(name string) bool {
	return slices.Contains(f.Specialties, name)
}

// WithSpecialty returns the specialty selection with name checked or
// unchecked. Checking an already selected name leaves the order unchanged.
func (f FilterState) WithSpecialty(name string, checked bool) []string {
	out := make([]string, 0, len(f.Specialties)+1)
	for _, s := range f.Specialties {
		if s != name {
			out = append(out, s)
		}
	}
	if checked {
		if f.HasSpecialty(name) {
			return slices.Clone(f.Specialties)
		}
		out = append(out, name)
	}
	return out
}

// Clone returns a copy that shares no slices with f.
func (f FilterState) Clone() FilterState {
	f.Specialties = slices.Clone(f.Specialties)
	return f
}
