// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package directory derives what the doctor directory shows: the filtered
// and sorted doctor list, and the autocomplete suggestions for the search
// box. Both are pure functions of the full record list and the FilterState;
// Engine re-runs them on every state change.
package directory

import (
	"slices"
	"sort"
	"strings"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// SuggestionLimit caps the number of autocomplete suggestions.
const SuggestionLimit = 3

// Recompute filters records by state and sorts the result. Filters are
// AND-combined: name search, then consultation mode, then specialties (any
// of the selected). Sorting is stable and runs after filtering. The returned
// slice never aliases records.
func Recompute(records []types.Doctor, state types.FilterState) []types.Doctor {
	result := make([]types.Doctor, 0, len(records))

	search := strings.TrimSpace(state.SearchTerm) != ""
	term := strings.ToLower(state.SearchTerm)

	for _, d := range records {
		if search && !strings.Contains(strings.ToLower(d.Name), term) {
			continue
		}
		if state.ConsultMode != "" && d.Mode != state.ConsultMode {
			continue
		}
		if len(state.Specialties) > 0 && !hasAnySpecialty(d, state.Specialties) {
			continue
		}
		result = append(result, d)
	}

	sortDoctors(result, state.SortOption)
	return result
}

func hasAnySpecialty(d types.Doctor, wanted []string) bool {
	return slices.ContainsFunc(wanted, d.HasSpecialty)
}

// sortDoctors orders docs in place: fees ascending or experience descending.
// Other options leave the order unchanged.
func sortDoctors(docs []types.Doctor, option types.SortOption) {
	switch option {
	case types.SortFees:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Fees < docs[j].Fees
		})
	case types.SortExperience:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].Experience > docs[j].Experience
		})
	}
}

// Suggest returns up to SuggestionLimit records whose names contain raw,
// ignoring case, in source order. records is the full list; active filters
// play no part. A blank input yields no suggestions.
func Suggest(records []types.Doctor, raw string) []types.Doctor {
	if strings.TrimSpace(raw) == "" {
		return []types.Doctor{}
	}
	term := strings.ToLower(raw)
	out := make([]types.Doctor, 0, SuggestionLimit)
	for _, d := range records {
		if strings.Contains(strings.ToLower(d.Name), term) {
			out = append(out, d)
			if len(out) == SuggestionLimit {
				break
			}
		}
	}
	return out
}

// Names returns the names of docs in order.
func Names(docs []types.Doctor) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}
