// file: internals/features/cohorts/dto/session_dto.go
package dto

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	m "bitacademy_backend/internals/features/cohorts/model"
	helper "bitacademy_backend/internals/helpers"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Bulk rearrange (JSON). Body keys follow the public API contract
// (camelCase, at least one of cohortId/cohortName).
type RearrangeSessionsRequest struct {
	CohortID   *string `json:"cohortId"   validate:"omitempty,uuid4"`
	CohortName *string `json:"cohortName" validate:"omitempty,max=120"`
	StartDate  string  `json:"startDate"  validate:"required"`

	// Optional override of the cohort's stored pinned-date map
	FixedDates map[string]string `json:"fixed_dates" validate:"omitempty"`
}

// Update mode for single-session updates
const (
	UpdateModeSingle = "single"
	UpdateModeShift  = "shift"
)

// Partial update (JSON)
type UpdateSessionRequest struct {
	SessionDate     *string `json:"session_date"     validate:"omitempty"`
	Topic           *string `json:"topic"            validate:"omitempty,max=300"`
	Instructor      *string `json:"instructor"       validate:"omitempty,max=120"`
	// duration/status/update_mode are range-checked in the controller so a
	// bad value answers 400 per the public contract, not a 422 field error
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty"`
	Link            *string `json:"link"             validate:"omitempty,max=2000"`
	RecordingURL    *string `json:"recording_url"    validate:"omitempty,max=2000"`
	Status          *string `json:"status"           validate:"omitempty"`
	UpdateMode      *string `json:"update_mode"      validate:"omitempty"`
}

// HasFields reports whether the update carries at least one mutable field.
func (r UpdateSessionRequest) HasFields() bool {
	return r.SessionDate != nil || r.Topic != nil || r.Instructor != nil ||
		r.DurationMinutes != nil || r.Link != nil || r.RecordingURL != nil ||
		r.Status != nil
}

// Mode returns the effective update mode (single by default).
func (r UpdateSessionRequest) Mode() string {
	if r.UpdateMode != nil && *r.UpdateMode == UpdateModeShift {
		return UpdateModeShift
	}
	return UpdateModeSingle
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

// One slot of the computed schedule as the API reports it
type ScheduleEntryResponse struct {
	SessionNumber int    `json:"session_number"`
	Date          string `json:"date"`
	Day           string `json:"day"`
}

type SessionResponse struct {
	CohortSessionID       uuid.UUID       `json:"cohort_session_id"`
	CohortSessionCohortID uuid.UUID       `json:"cohort_session_cohort_id"`
	SessionNumber         int             `json:"session_number"`
	SessionDate           string          `json:"session_date"`
	Status                m.SessionStatus `json:"status"`

	Topic           *string `json:"topic,omitempty"`
	Instructor      *string `json:"instructor,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Link            *string `json:"link,omitempty"`
	RecordingURL    *string `json:"recording_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	Cohort *CohortSummary `json:"cohort,omitempty"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func NewSessionResponse(mdl m.CohortSessionModel, cohort *CohortSummary) SessionResponse {
	return SessionResponse{
		CohortSessionID:       mdl.CohortSessionID,
		CohortSessionCohortID: mdl.CohortSessionCohortID,
		SessionNumber:         mdl.CohortSessionNumber,
		SessionDate:           helper.FormatDate(mdl.CohortSessionDate),
		Status:                mdl.CohortSessionStatus,
		Topic:                 mdl.CohortSessionTopic,
		Instructor:            mdl.CohortSessionInstructor,
		DurationMinutes:       mdl.CohortSessionDurationMinutes,
		Link:                  mdl.CohortSessionLink,
		RecordingURL:          mdl.CohortSessionRecordingURL,
		CreatedAt:             mdl.CohortSessionCreatedAt,
		UpdatedAt:             mdl.CohortSessionUpdatedAt,
		Cohort:                cohort,
	}
}

// ParseFixedDates converts a {"4":"2026-01-26"} body map into the engine's
// session-number keyed form. Bad keys or dates fail the whole map.
func ParseFixedDates(raw map[string]string) (map[int]time.Time, error) {
	out := make(map[int]time.Time, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("fixed_dates: invalid session number %q", k)
		}
		d, err := helper.ParseLocalDate(v)
		if err != nil {
			return nil, fmt.Errorf("fixed_dates: invalid date %q for session %d", v, n)
		}
		out[n] = d
	}
	return out, nil
}
