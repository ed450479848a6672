// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package directory

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doctor-directory/internal/records"
	"github.com/pdiddy/doctor-directory/internal/urlstate"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

func newTestEngine(t *testing.T, raw string, opts ...Option) (*Engine, *urlstate.Query) {
	t.Helper()
	q, err := urlstate.ParseQuery(raw)
	require.NoError(t, err)
	return New(records.NewStaticStore(roster()), q, opts...), q
}

// mapStore is a urlstate.Store that is not a fmt.Stringer.
type mapStore struct{ values url.Values }

func (m *mapStore) Get(key string) string      { return m.values.Get(key) }
func (m *mapStore) GetAll(key string) []string { return m.values[key] }
func (m *mapStore) Replace(v url.Values)       { m.values = v }

func TestEngineSeedsFromQuery(t *testing.T) {
	e, _ := newTestEngine(t, "?mode=In+Clinic&specialty=Dentist&specialty=ENT&sort=fees")

	state := e.State()
	assert.Equal(t, types.ModeInClinic, state.ConsultMode)
	assert.Equal(t, []string{"Dentist", "ENT"}, state.Specialties)
	assert.Equal(t, types.SortFees, state.SortOption)

	assert.Equal(t, []string{"Dr. Vikram Shah"}, Names(e.View().Doctors))
}

func TestEngineSearchDoesNotWriteQuery(t *testing.T) {
	e, q := newTestEngine(t, "mode=Video+Consult")

	e.SetSearch("rao")

	assert.Equal(t, "mode=Video+Consult", q.String())
	v := e.View()
	assert.Equal(t, "rao", v.State.SearchTerm)
	assert.Equal(t, []string{"Dr. Asha Rao"}, Names(v.Doctors))
	// Suggestions ignore the active mode filter.
	assert.Equal(t, []string{"Dr. Asha Rao", "Dr. Kavya Rao"}, Names(v.Suggestions))
}

func TestEngineBlankSearchClearsSuggestions(t *testing.T) {
	e, _ := newTestEngine(t, "")
	e.SetSearch("dr")
	require.Len(t, e.View().Suggestions, SuggestionLimit)

	e.SetSearch("  ")
	assert.Empty(t, e.View().Suggestions)
	assert.Len(t, e.View().Doctors, len(roster()))
}

func TestEngineSelectSuggestion(t *testing.T) {
	e, q := newTestEngine(t, "")
	e.SetSearch("kav")
	require.Equal(t, []string{"Dr. Kavya Rao"}, Names(e.View().Suggestions))

	e.SelectSuggestion("Dr. Kavya Rao")

	v := e.View()
	assert.Equal(t, "Dr. Kavya Rao", v.State.SearchTerm)
	assert.Empty(t, v.Suggestions)
	assert.Equal(t, []string{"Dr. Kavya Rao"}, Names(v.Doctors))
	assert.Equal(t, "", q.String())
}

func TestEngineModeWritesSearchAndMode(t *testing.T) {
	e, q := newTestEngine(t, "sort=fees")
	e.SetSearch("dr")
	e.SetMode(types.ModeInClinic)

	assert.Equal(t, "search=dr&mode=In+Clinic", q.String())
	// Sort stays active in memory even though it left the query.
	assert.Equal(t, types.SortFees, e.State().SortOption)
	assert.Equal(t, []string{"Dr. Anil Kumar", "Dr. Vikram Shah", "Dr. Meera Iyer"}, Names(e.View().Doctors))
}

func TestEngineSpecialtyToggleDropsPriorMode(t *testing.T) {
	e, q := newTestEngine(t, "")
	e.SetMode(types.ModeInClinic)
	require.Equal(t, "mode=In+Clinic", q.String())

	e.ToggleSpecialty("Dentist", true)
	e.ToggleSpecialty("ENT", true)
	assert.Equal(t, "specialty=Dentist&specialty=ENT", q.String())

	e.ToggleSpecialty("Dentist", false)
	assert.Equal(t, "specialty=ENT", q.String())
	assert.Equal(t, []string{"ENT"}, e.State().Specialties)
}

func TestEngineMergePolicyKeepsDimensions(t *testing.T) {
	e, q := newTestEngine(t, "", WithPolicy(types.URLPolicyMerge))
	e.SetMode(types.ModeInClinic)
	e.ToggleSpecialty("Dentist", true)
	e.SetSort(types.SortExperience)

	assert.Equal(t, "mode=In+Clinic&specialty=Dentist&sort=experience", q.String())
}

func TestEngineSortClears(t *testing.T) {
	e, q := newTestEngine(t, "sort=fees")
	e.SetSort(types.SortNone)
	assert.Equal(t, "", q.String())
	assert.Equal(t, Names(roster()), Names(e.View().Doctors))
}

func TestEngineRefreshAfterLoad(t *testing.T) {
	store := records.NewStore(nil)
	q, err := urlstate.ParseQuery("mode=In+Clinic")
	require.NoError(t, err)
	e := New(store, q)
	assert.Empty(t, e.View().Doctors)

	store.OnLoad(e.Refresh)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	store.Load(ctx, staticSource(roster()))

	assert.Len(t, e.View().Doctors, 3)
}

func TestEngineSubscribe(t *testing.T) {
	e, _ := newTestEngine(t, "")

	var views []View
	unsubscribe := e.Subscribe(func(v View) { views = append(views, v) })

	e.SetSort(types.SortFees)
	e.SetSearch("zz")
	unsubscribe()
	e.SetSearch("")

	require.Len(t, views, 2)
	assert.Equal(t, "sort=fees", views[0].Query)
	assert.Empty(t, views[1].Doctors)
}

func TestEngineQueryWithoutStringer(t *testing.T) {
	store := &mapStore{values: url.Values{"mode": {types.ModeInClinic}}}
	e := New(records.NewStaticStore(roster()), store)
	assert.Equal(t, "mode=In+Clinic", e.View().Query)
}

func TestEngineViewIsCopy(t *testing.T) {
	e, _ := newTestEngine(t, "specialty=ENT")
	v := e.View()
	v.State.Specialties[0] = "changed"
	v.Doctors[0].Name = "changed"

	assert.Equal(t, []string{"ENT"}, e.State().Specialties)
	assert.Equal(t, "Dr. Vikram Shah", e.View().Doctors[0].Name)
}

func TestEngineApply(t *testing.T) {
	e, q := newTestEngine(t, "")

	require.NoError(t, e.Apply(Event{Type: EventSearch, Value: "dr"}))
	require.NoError(t, e.Apply(Event{Type: EventSuggestion, Value: "Dr. Meera Iyer"}))
	require.NoError(t, e.Apply(Event{Type: EventMode, Value: types.ModeInClinic}))
	require.NoError(t, e.Apply(Event{Type: EventSpecialty, Value: "Cardiologist", Checked: true}))
	require.NoError(t, e.Apply(Event{Type: EventSort, Value: "experience"}))

	assert.Equal(t, "search=Dr.+Meera+Iyer&sort=experience", q.String())
	assert.Equal(t, []string{"Dr. Meera Iyer"}, Names(e.View().Doctors))

	assert.Error(t, e.Apply(Event{Type: EventSort, Value: "rating"}))
	assert.Error(t, e.Apply(Event{Type: EventSpecialty}))
	assert.Error(t, e.Apply(Event{Type: "click"}))
}
