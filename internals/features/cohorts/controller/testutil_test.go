// file: internals/features/cohorts/controller/testutil_test.go
package controller_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	m "bitacademy_backend/internals/features/cohorts/model"
	route "bitacademy_backend/internals/features/cohorts/route"
)

// newTestDB opens a private in-memory SQLite database with the schema laid
// out by hand (the Postgres column defaults don't migrate cleanly).
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// a single connection keeps every query on the same :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Exec(`
		CREATE TABLE cohorts (
			cohort_id                  TEXT PRIMARY KEY,
			cohort_name                TEXT NOT NULL UNIQUE,
			cohort_description         TEXT,
			cohort_status              TEXT NOT NULL DEFAULT 'Active',
			cohort_teaching_days       TEXT,
			cohort_fixed_session_dates TEXT,
			cohort_created_at          DATETIME,
			cohort_updated_at          DATETIME,
			cohort_deleted_at          DATETIME
		)`).Error)

	require.NoError(t, db.Exec(`
		CREATE TABLE cohort_sessions (
			cohort_session_id               TEXT PRIMARY KEY,
			cohort_session_cohort_id        TEXT NOT NULL,
			cohort_session_number           INTEGER NOT NULL,
			cohort_session_date             DATETIME NOT NULL,
			cohort_session_status           TEXT NOT NULL DEFAULT 'scheduled',
			cohort_session_topic            TEXT,
			cohort_session_instructor       TEXT,
			cohort_session_duration_minutes INTEGER,
			cohort_session_link             TEXT,
			cohort_session_recording_url    TEXT,
			cohort_session_created_at       DATETIME,
			cohort_session_updated_at       DATETIME,
			cohort_session_deleted_at       DATETIME,
			UNIQUE (cohort_session_cohort_id, cohort_session_number)
		)`).Error)

	return db
}

// newTestApp wires the cohort routes without the auth chain; the JWT
// middleware has its own tests.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	app := fiber.New()
	route.CohortAdminRoutes(app.Group("/api/a"), db)
	route.CohortUserRoutes(app.Group("/api/u"), db)
	return app, db
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d.UTC()
}

// seedCohort inserts a cohort plus numbered sessions on the given dates.
func seedCohort(t *testing.T, db *gorm.DB, name string, dates ...string) (m.CohortModel, []m.CohortSessionModel) {
	t.Helper()

	cohort := m.CohortModel{
		CohortID:           uuid.New(),
		CohortName:         name,
		CohortStatus:       m.CohortStatusActive,
		CohortTeachingDays: []int64{1, 3, 5},
	}
	require.NoError(t, db.Create(&cohort).Error)

	sessions := make([]m.CohortSessionModel, 0, len(dates))
	for i, ds := range dates {
		s := m.CohortSessionModel{
			CohortSessionID:       uuid.New(),
			CohortSessionCohortID: cohort.CohortID,
			CohortSessionNumber:   i + 1,
			CohortSessionDate:     date(t, ds),
			CohortSessionStatus:   m.SessionStatusScheduled,
		}
		require.NoError(t, db.Create(&s).Error)
		sessions = append(sessions, s)
	}
	return cohort, sessions
}

func doJSON(t *testing.T, app *fiber.App, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	parsed := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

// sessionDates reloads the cohort's sessions ordered by number and formats
// their dates as YYYY-MM-DD.
func sessionDates(t *testing.T, db *gorm.DB, cohortID uuid.UUID) []string {
	t.Helper()

	var rows []m.CohortSessionModel
	require.NoError(t, db.
		Where("cohort_session_cohort_id = ?", cohortID).
		Order("cohort_session_number ASC").
		Find(&rows).Error)

	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.CohortSessionDate.UTC().Format("2006-01-02"))
	}
	return out
}
