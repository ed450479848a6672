// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// FormatTable writes docs as a human-readable table to w.
func FormatTable(docs []types.Doctor, w io.Writer) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No doctors found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-14s  %-36s  %8s  %10s\n",
		"#", "Name", "Mode", "Specialties", "Fees", "Experience")
	fmt.Fprintln(w, strings.Repeat("-", 112))

	for i, d := range docs {
		fmt.Fprintf(w, "%-4d  %-30s  %-14s  %-36s  %8s  %10s\n",
			i+1,
			truncate(d.Name, 30),
			truncate(d.Mode, 14),
			truncate(strings.Join(d.Specialties, ", "), 36),
			formatNumber(d.Fees),
			formatNumber(d.Experience)+" yrs",
		)
	}

	fmt.Fprintf(w, "\n%d doctors\n", len(docs))
}

// FormatCards writes one card per doctor: name, specialties, experience,
// and fee.
func FormatCards(docs []types.Doctor, w io.Writer) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "No doctors found.")
		return
	}
	for i, d := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, d.Name)
		fmt.Fprintf(w, "  Specialties: %s\n", strings.Join(d.Specialties, ", "))
		fmt.Fprintf(w, "  Experience: %s years\n", formatNumber(d.Experience))
		fmt.Fprintf(w, "  Fees: ₹%s\n", formatNumber(d.Fees))
	}
}

// FormatSuggestions writes numbered suggestion names, one per line.
func FormatSuggestions(suggestions []types.Doctor, w io.Writer) {
	for i, d := range suggestions {
		fmt.Fprintf(w, "  %d) %s\n", i+1, d.Name)
	}
}

// FormatJSON writes v as indented JSON to w.
func FormatJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatYAML writes v as YAML to w.
func FormatYAML(v any, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// OutputFormat selects how a doctor list is printed.
type OutputFormat string

const (
	OutputTable OutputFormat = "table"
	OutputCards OutputFormat = "cards"
	OutputJSON  OutputFormat = "json"
	OutputYAML  OutputFormat = "yaml"
)

// Write prints the view's doctors in format. JSON and YAML print the
// whole view.
func Write(w io.Writer, format OutputFormat, v View) error {
	switch format {
	case OutputTable, "":
		FormatTable(v.Doctors, w)
	case OutputCards:
		FormatCards(v.Doctors, w)
	case OutputJSON:
		return FormatJSON(v, w)
	case OutputYAML:
		return FormatYAML(v, w)
	default:
		return fmt.Errorf("unsupported format %q: use table, cards, json, or yaml", format)
	}
	return nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
