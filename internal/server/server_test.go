// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doctor-directory/internal/directory"
	"github.com/pdiddy/doctor-directory/internal/records"
	"github.com/pdiddy/doctor-directory/pkg/types"
)

func testServer() *Server {
	store := records.NewStaticStore([]types.Doctor{
		{Name: "Dr. A", Mode: types.ModeVideoConsult, Specialties: []string{"Dentist"}, Fees: 500, Experience: 5},
		{Name: "Dr. B", Mode: types.ModeInClinic, Specialties: []string{"Dentist"}, Fees: 300, Experience: 10},
		{Name: "Dr. C", Mode: types.ModeInClinic, Specialties: []string{"ENT"}, Fees: 400, Experience: 2},
	})
	return New(store, types.URLPolicyChangedOnly, nil)
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[healthResponse](t, rec)
	assert.Equal(t, "ok", got.Status)
	assert.True(t, got.Loaded)
	assert.Equal(t, 3, got.Records)
}

func TestHealthBeforeLoad(t *testing.T) {
	s := New(records.NewStore(nil), types.URLPolicyChangedOnly, nil)
	got := decode[healthResponse](t, do(t, s, http.MethodGet, "/health", ""))
	assert.False(t, got.Loaded)
	assert.Equal(t, 0, got.Records)
}

func TestDoctors(t *testing.T) {
	rec := do(t, testServer(), http.MethodGet, "/api/doctors?specialty=Dentist&sort=fees", "")
	require.Equal(t, http.StatusOK, rec.Code)

	v := decode[directory.View](t, rec)
	assert.Equal(t, []string{"Dr. B", "Dr. A"}, directory.Names(v.Doctors))
	assert.Equal(t, types.SortFees, v.State.SortOption)
	assert.Equal(t, "specialty=Dentist&sort=fees", v.Query)
}

func TestDoctorsNoQuery(t *testing.T) {
	v := decode[directory.View](t, do(t, testServer(), http.MethodGet, "/api/doctors", ""))
	assert.Len(t, v.Doctors, 3)
	assert.Empty(t, v.Suggestions)
}

func TestSuggestions(t *testing.T) {
	got := decode[suggestionsResponse](t, do(t, testServer(), http.MethodGet, "/api/suggestions?q=dr", ""))
	assert.Equal(t, []string{"Dr. A", "Dr. B", "Dr. C"}, got.Suggestions)

	got = decode[suggestionsResponse](t, do(t, testServer(), http.MethodGet, "/api/suggestions?q=+", ""))
	assert.Empty(t, got.Suggestions)
}

func TestSpecialties(t *testing.T) {
	got := decode[[]specialtyResponse](t, do(t, testServer(), http.MethodGet, "/api/specialties", ""))
	require.Len(t, got, 24)
	assert.Equal(t, "filter-specialty-Dietitian-Nutritionist", got[16].ControlID)
}

func TestControls(t *testing.T) {
	got := decode[[]types.Control](t, do(t, testServer(), http.MethodGet, "/api/controls?mode=In+Clinic", ""))
	require.NotEmpty(t, got)
	assert.Equal(t, types.ControlInClinic, got[1].ID)
	assert.True(t, got[1].Checked)
	assert.False(t, got[0].Checked)
}

func TestEventSpecialtyRewritesQuery(t *testing.T) {
	rec := do(t, testServer(), http.MethodPost, "/api/events?search=dr&mode=In+Clinic",
		`{"type":"specialty","value":"ENT","checked":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	v := decode[directory.View](t, rec)
	assert.Equal(t, "search=dr&specialty=ENT", v.Query)
	// The in-memory mode filter still applies to this response.
	assert.Equal(t, []string{"Dr. C"}, directory.Names(v.Doctors))
}

func TestEventMergePolicy(t *testing.T) {
	s := New(records.NewStaticStore(nil), types.URLPolicyMerge, nil)
	v := decode[directory.View](t, do(t, s, http.MethodPost, "/api/events?mode=In+Clinic",
		`{"type":"sort","value":"experience"}`))
	assert.Equal(t, "mode=In+Clinic&sort=experience", v.Query)
}

func TestEventSearchReturnsSuggestions(t *testing.T) {
	v := decode[directory.View](t, do(t, testServer(), http.MethodPost, "/api/events?mode=In+Clinic",
		`{"type":"search","value":"dr. a"}`))
	assert.Equal(t, []string{"Dr. A"}, directory.Names(v.Suggestions))
	assert.Empty(t, v.Doctors)
	assert.Equal(t, "mode=In+Clinic", v.Query)
}

func TestEventErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed", `{`},
		{"unknown type", `{"type":"click"}`},
		{"unknown sort", `{"type":"sort","value":"rating"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, testServer(), http.MethodPost, "/api/events", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.NotEmpty(t, decode[errorResponse](t, rec).Error)
		})
	}
}

func TestRateLimit(t *testing.T) {
	s := New(records.NewStaticStore(nil), types.URLPolicyChangedOnly, nil, WithRateLimit(1))

	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/health", "").Code)
	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "rate limit exceeded", decode[errorResponse](t, rec).Error)
}
