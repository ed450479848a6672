// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"fmt"

	"github.com/pdiddy/doctor-directory/pkg/types"
)

// EventType names a user interaction.
type EventType string

const (
	EventSearch     EventType = "search"
	EventSuggestion EventType = "suggestion"
	EventMode       EventType = "mode"
	EventSpecialty  EventType = "specialty"
	EventSort       EventType = "sort"
)

// Event is a serialized user interaction, as delivered by the interactive
// shell and the HTTP API.
type Event struct {
	Type    EventType `json:"type"`
	Value   string    `json:"value"`
	Checked bool      `json:"checked,omitempty"`
}

// Apply dispatches ev to the matching handler.
func (e *Engine) Apply(ev Event) error {
	switch ev.Type {
	case EventSearch:
		e.SetSearch(ev.Value)
	case EventSuggestion:
		e.SelectSuggestion(ev.Value)
	case EventMode:
		e.SetMode(ev.Value)
	case EventSpecialty:
		if ev.Value == "" {
			return fmt.Errorf("specialty event needs a value")
		}
		e.ToggleSpecialty(ev.Value, ev.Checked)
	case EventSort:
		opt := types.SortOption(ev.Value)
		if opt != types.SortNone && !opt.Known() {
			return fmt.Errorf("unknown sort option %q: use %s or %s", ev.Value, types.SortFees, types.SortExperience)
		}
		e.SetSort(opt)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}
