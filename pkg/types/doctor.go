// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the doctor directory:
// the Doctor record, the FilterState that drives the directory view, the
// fixed specialty taxonomy, and configuration.
package types

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// Consultation modes offered by the directory controls. Records may carry
// other values; they simply never match these filters.
const (
	ModeVideoConsult = "Video Consult"
	ModeInClinic     = "In Clinic"
)

// Modes lists the consultation modes in control order.
var Modes = []string{ModeVideoConsult, ModeInClinic}

// Doctor is one directory entry as returned by the data source. Records are
// read-only once loaded.
type Doctor struct {
	// Name is the display name. Not unique.
	Name string `json:"name" yaml:"name"`

	// Specialties lists the doctor's specialties in source order.
	Specialties []string `json:"specialties" yaml:"specialties"`

	// Mode is the consultation mode (e.g. "Video Consult", "In Clinic").
	Mode string `json:"mode" yaml:"mode"`

	// Fees is the consultation fee.
	Fees float64 `json:"fees" yaml:"fees"`

	// Experience is the number of years of experience.
	Experience float64 `json:"experience" yaml:"experience"`
}

// HasSpecialty reports whether the doctor lists name (exact match).
func (d Doctor) HasSpecialty(name string) bool {
	for _, s := range d.Specialties {
		if s == name {
			return true
		}
	}
	return false
}

// UnmarshalJSON decodes a record permissively. The data source has no
// enforced schema: missing, null, or wrong-typed fields decode to their zero
// value instead of failing the whole payload. Numbers may also arrive as
// strings such as "500" or "13 Years"; the first decimal number is used.
// Specialties may be strings or objects with a "name" field.
func (d *Doctor) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*d = Doctor{}
		return nil
	}
	*d = Doctor{
		Name:        rawString(raw["name"]),
		Specialties: rawStrings(raw["specialties"]),
		Mode:        rawString(raw["mode"]),
		Fees:        rawNumber(raw["fees"]),
		Experience:  rawNumber(raw["experience"]),
	}
	return nil
}

func rawString(msg json.RawMessage) string {
	if len(msg) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(msg, &s); err != nil {
		return ""
	}
	return s
}

func rawStrings(msg json.RawMessage) []string {
	if len(msg) == 0 {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(msg, &items); err != nil {
		return nil
	}
	var out []string
	for _, item := range items {
		if s := rawString(item); s != "" {
			out = append(out, s)
			continue
		}
		var named struct {
			Name string `json:"name"`
		}
		if err := json.Unmarshal(item, &named); err == nil && named.Name != "" {
			out = append(out, named.Name)
		}
	}
	return out
}

var numberPattern = regexp.MustCompile(`[-+]?\d+(\.\d+)?`)

func rawNumber(msg json.RawMessage) float64 {
	if len(msg) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(msg, &f); err == nil {
		return f
	}
	s := rawString(msg)
	if s == "" {
		return 0
	}
	m := numberPattern.FindString(strings.ReplaceAll(s, ",", ""))
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}
