// file: internals/features/cohorts/controller/rearrange_controller_test.go
package controller_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRearrangeSessions_FullSchedule(t *testing.T) {
	app, db := newTestApp(t)

	// ten sessions with stale placeholder dates
	cohort, _ := seedCohort(t, db, "Cohort Alpha",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05",
		"2025-01-06", "2025-01-07", "2025-01-08", "2025-01-09", "2025-01-10")

	resp, body := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", map[string]any{
		"cohortId":  cohort.CohortID.String(),
		"startDate": "2026-01-19",
		"fixed_dates": map[string]string{
			"4": "2026-01-26",
			"6": "2026-01-30",
			"8": "2026-02-04",
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 10, body["sessionsUpdated"])
	assert.Equal(t, "2026-01-19", body["startDate"])
	assert.Equal(t, "2026-02-09", body["endDate"])

	schedule, ok := body["schedule"].([]any)
	require.True(t, ok)
	require.Len(t, schedule, 10)
	first := schedule[0].(map[string]any)
	assert.EqualValues(t, 1, first["session_number"])
	assert.Equal(t, "2026-01-19", first["date"])
	assert.Equal(t, "Monday", first["day"])

	want := []string{
		"2026-01-19", "2026-01-21", "2026-01-23", "2026-01-26", "2026-01-28",
		"2026-01-30", "2026-02-02", "2026-02-04", "2026-02-06", "2026-02-09",
	}
	assert.Equal(t, want, sessionDates(t, db, cohort.CohortID))

	// no collisions after a successful rearrange
	seen := map[string]bool{}
	for _, d := range sessionDates(t, db, cohort.CohortID) {
		assert.False(t, seen[d], "duplicate date %s", d)
		seen[d] = true
	}
}

func TestRearrangeSessions_IdempotentRerun(t *testing.T) {
	app, db := newTestApp(t)
	cohort, _ := seedCohort(t, db, "Cohort Beta",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04", "2025-01-05")

	payload := map[string]any{
		"cohortName": "Cohort Beta",
		"startDate":  "2026-01-19",
	}

	resp, _ := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	firstRun := sessionDates(t, db, cohort.CohortID)

	resp, body := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", payload)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 5, body["sessionsUpdated"])
	assert.Equal(t, firstRun, sessionDates(t, db, cohort.CohortID))
}

func TestRearrangeSessions_SundayStartDeflects(t *testing.T) {
	app, db := newTestApp(t)
	cohort, _ := seedCohort(t, db, "Cohort Gamma", "2025-01-01", "2025-01-02")

	resp, body := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", map[string]any{
		"cohortId":  cohort.CohortID.String(),
		"startDate": "2026-01-18", // Sunday
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	schedule := body["schedule"].([]any)
	first := schedule[0].(map[string]any)
	assert.Equal(t, "2026-01-19", first["date"])
	assert.Equal(t, "Monday", first["day"])
}

func TestRearrangeSessions_UsesStoredPinsWhenBodyOmitsThem(t *testing.T) {
	app, db := newTestApp(t)
	cohort, _ := seedCohort(t, db, "Cohort Delta",
		"2025-01-01", "2025-01-02", "2025-01-03", "2025-01-04")

	require.NoError(t, db.Model(&cohort).
		Update("cohort_fixed_session_dates", `{"4":"2026-02-06"}`).Error)

	resp, _ := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", map[string]any{
		"cohortId":  cohort.CohortID.String(),
		"startDate": "2026-01-19",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	want := []string{"2026-01-19", "2026-01-21", "2026-01-23", "2026-02-06"}
	assert.Equal(t, want, sessionDates(t, db, cohort.CohortID))
}

func TestRearrangeSessions_InputErrors(t *testing.T) {
	app, db := newTestApp(t)
	seedCohort(t, db, "Cohort Epsilon", "2025-01-01")

	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{"missing startDate", map[string]any{"cohortName": "Cohort Epsilon"}, http.StatusBadRequest},
		{"bad startDate", map[string]any{"cohortName": "Cohort Epsilon", "startDate": "not-a-date"}, http.StatusBadRequest},
		{"no cohort identifier", map[string]any{"startDate": "2026-01-19"}, http.StatusBadRequest},
		{"bad cohortId", map[string]any{"cohortId": "nope", "startDate": "2026-01-19"}, http.StatusBadRequest},
		{"unknown cohort", map[string]any{"cohortName": "Missing", "startDate": "2026-01-19"}, http.StatusNotFound},
		{"bad fixed_dates key", map[string]any{
			"cohortName": "Cohort Epsilon", "startDate": "2026-01-19",
			"fixed_dates": map[string]string{"zero": "2026-01-26"},
		}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", tt.body)
			assert.Equal(t, tt.code, resp.StatusCode)
			assert.Equal(t, false, body["success"])
		})
	}
}

func TestRearrangeSessions_CohortWithoutSessions(t *testing.T) {
	app, db := newTestApp(t)
	cohort, _ := seedCohort(t, db, "Cohort Empty")

	resp, _ := doJSON(t, app, "POST", "/api/a/cohorts/rearrange-sessions", map[string]any{
		"cohortId":  cohort.CohortID.String(),
		"startDate": "2026-01-19",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
