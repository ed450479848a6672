// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"regexp"
	"strings"
)

// Specialties is the fixed specialty taxonomy offered as filter controls,
// in display order.
var Specialties = []string{
	"General Physician",
	"Dentist",
	"Dermatologist",
	"Paediatrician",
	"Gynaecologist",
	"ENT",
	"Diabetologist",
	"Cardiologist",
	"Physiotherapist",
	"Endocrinologist",
	"Orthopaedic",
	"Ophthalmologist",
	"Gastroenterologist",
	"Pulmonologist",
	"Psychiatrist",
	"Urologist",
	"Dietitian/Nutritionist",
	"Psychologist",
	"Sexologist",
	"Nephrologist",
	"Neurologist",
	"Oncologist",
	"Ayurveda",
	"Homeopath",
}

// Stable control identifiers used by automated UI tests.
const (
	ControlVideoConsult     = "filter-video-consult"
	ControlInClinic         = "filter-in-clinic"
	ControlSortFees         = "sort-fees"
	ControlSortExperience   = "sort-experience"
	ControlSearchInput      = "autocomplete-input"
	ControlSuggestionItem   = "suggestion-item"
	ControlDoctorCard       = "doctor-card"
	ControlDoctorName       = "doctor-name"
	ControlDoctorSpecialty  = "doctor-specialty"
	ControlDoctorExperience = "doctor-experience"
	ControlDoctorFee        = "doctor-fee"
)

var whitespace = regexp.MustCompile(`\s`)

// SpecialtyControlID returns the control identifier of a specialty checkbox.
// Slashes and whitespace become dashes: "Dietitian/Nutritionist" yields
// "filter-specialty-Dietitian-Nutritionist".
func SpecialtyControlID(name string) string {
	return "filter-specialty-" + whitespace.ReplaceAllString(strings.ReplaceAll(name, "/", "-"), "-")
}

// ControlKind groups controls by the filter dimension they drive.
type ControlKind string

const (
	KindMode      ControlKind = "mode"
	KindSpecialty ControlKind = "specialty"
	KindSort      ControlKind = "sort"
)

// Control is one selectable input with its state under a FilterState.
type Control struct {
	ID      string      `json:"id" yaml:"id"`
	Kind    ControlKind `json:"kind" yaml:"kind"`
	Label   string      `json:"label" yaml:"label"`
	Value   string      `json:"value" yaml:"value"`
	Checked bool        `json:"checked" yaml:"checked"`
}

// Controls lists the mode radios, specialty checkboxes, and sort radios in
// display order, marking the ones selected in f.
func Controls(f FilterState) []Control {
	controls := []Control{
		{ID: ControlVideoConsult, Kind: KindMode, Label: ModeVideoConsult, Value: ModeVideoConsult},
		{ID: ControlInClinic, Kind: KindMode, Label: ModeInClinic, Value: ModeInClinic},
	}
	for i := range controls {
		controls[i].Checked = f.ConsultMode == controls[i].Value
	}
	for _, s := range Specialties {
		controls = append(controls, Control{
			ID:      SpecialtyControlID(s),
			Kind:    KindSpecialty,
			Label:   s,
			Value:   s,
			Checked: f.HasSpecialty(s),
		})
	}
	controls = append(controls,
		Control{ID: ControlSortFees, Kind: KindSort, Label: "Fees (Low to High)", Value: string(SortFees), Checked: f.SortOption == SortFees},
		Control{ID: ControlSortExperience, Kind: KindSort, Label: "Experience (High to Low)", Value: string(SortExperience), Checked: f.SortOption == SortExperience},
	)
	return controls
}
