// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

// RecordSource supplies the full record list. *records.Store implements it.
type RecordSource interface {
	Records() []types.Doctor
}

// View is everything a renderer needs after an event.
type View struct {
	State       types.FilterState `json:"state" yaml:"state"`
	Doctors     []types.Doctor    `json:"doctors" yaml:"doctors"`
	Suggestions []types.Doctor    `json:"suggestions" yaml:"suggestions"`
	// Query is the encoded query-parameter store, without the leading "?".
	Query string `json:"query" yaml:"query"`
}

// Engine owns the FilterState of one directory session. Each handler updates
// the state, writes the query store where required, recomputes the view in
// full, and notifies subscribers before returning.
//
// Engine is not safe for concurrent use. Callers deliver events from a
// single goroutine.
type Engine struct {
	records RecordSource
	params  urlstate.Store
	policy  types.URLPolicy
	logger  *slog.Logger

	state       types.FilterState
	suggestions []types.Doctor
	displayed   []types.Doctor

	subs   map[int]func(View)
	nextID int
}

// Option configures an Engine.
type Option func(*Engine)

// WithPolicy sets the query write policy. The default is
// types.URLPolicyChangedOnly.
func WithPolicy(p types.URLPolicy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithLogger sets the logger used for event tracing.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over records, seeding its state from params.
func New(records RecordSource, params urlstate.Store, opts ...Option) *Engine {
	e := &Engine{
		records:     records,
		params:      params,
		policy:      types.URLPolicyChangedOnly,
		logger:      slog.Default(),
		suggestions: []types.Doctor{},
		subs:        make(map[int]func(View)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.state = urlstate.Read(params)
	e.recompute()
	return e
}

// State returns a copy of the current FilterState.
func (e *Engine) State() types.FilterState { return e.state.Clone() }

// View returns the current view.
func (e *Engine) View() View {
	return View{
		State:       e.state.Clone(),
		Doctors:     slices.Clone(e.displayed),
		Suggestions: slices.Clone(e.suggestions),
		Query:       e.query(),
	}
}

func (e *Engine) query() string {
	if s, ok := e.params.(fmt.Stringer); ok {
		return s.String()
	}
	return urlstate.Encode(urlstate.Values(urlstate.Read(e.params)))
}

// Subscribe registers fn to receive the view after every change. The
// returned func removes the subscription.
func (e *Engine) Subscribe(fn func(View)) func() {
	id := e.nextID
	e.nextID++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

// SetSearch updates the search term as the user types and regenerates the
// suggestions. The query store is not written.
func (e *Engine) SetSearch(raw string) {
	e.state.SearchTerm = raw
	e.suggestions = Suggest(e.records.Records(), raw)
	e.changed("search")
}

// SelectSuggestion takes a suggestion's exact name as the search term and
// clears the suggestion list.
func (e *Engine) SelectSuggestion(name string) {
	e.state.SearchTerm = name
	e.suggestions = []types.Doctor{}
	e.changed("suggestion")
}

// SetMode selects a consultation mode ("" clears the filter).
func (e *Engine) SetMode(mode string) {
	e.state.ConsultMode = mode
	urlstate.Write(e.params, e.state, urlstate.DimMode, e.policy)
	e.changed("mode")
}

// ToggleSpecialty checks or unchecks one specialty.
func (e *Engine) ToggleSpecialty(name string, checked bool) {
	e.state.Specialties = e.state.WithSpecialty(name, checked)
	urlstate.Write(e.params, e.state, urlstate.DimSpecialty, e.policy)
	e.changed("specialty")
}

// SetSort selects the sort option (types.SortNone clears it).
func (e *Engine) SetSort(option types.SortOption) {
	e.state.SortOption = option
	urlstate.Write(e.params, e.state, urlstate.DimSort, e.policy)
	e.changed("sort")
}

// Refresh recomputes the view after the record source changed.
func (e *Engine) Refresh() {
	e.changed("records")
}

func (e *Engine) changed(cause string) {
	e.recompute()
	e.logger.Debug("directory recomputed",
		"cause", cause,
		"displayed", len(e.displayed),
		"suggestions", len(e.suggestions),
	)
	if len(e.subs) == 0 {
		return
	}
	v := e.View()
	ids := make([]int, 0, len(e.subs))
	for id := range e.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := e.subs[id]; ok {
			fn(v)
		}
	}
}

func (e *Engine) recompute() {
	e.displayed = Recompute(e.records.Records(), e.state)
}
