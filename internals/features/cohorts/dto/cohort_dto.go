// file: internals/features/cohorts/dto/cohort_dto.go
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"

	m "bitacademy_backend/internals/features/cohorts/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON). When session_count > 0 the cohort is provisioned with that
// many numbered sessions and start_date becomes mandatory (the schedule is
// computed immediately).
type CreateCohortRequest struct {
	CohortName        string  `json:"cohort_name" validate:"required,max=120"`
	CohortDescription *string `json:"cohort_description" validate:"omitempty,max=2000"`

	// ISO weekday numbers (1=Mon .. 7=Sun); default Mon/Wed/Fri
	TeachingDays []int64 `json:"teaching_days" validate:"omitempty,max=7,dive,min=1,max=7"`

	// Pinned dates per session number: {"4":"2026-01-26"}
	FixedDates map[string]string `json:"fixed_dates" validate:"omitempty"`

	SessionCount int      `json:"session_count" validate:"omitempty,min=0,max=200"`
	StartDate    *string  `json:"start_date" validate:"omitempty"`
	Topics       []string `json:"topics" validate:"omitempty,max=200,dive,max=300"`
}

// Filter / List (query)
type FilterCohortRequest struct {
	Status *string `query:"status" validate:"omitempty,oneof=Active Completed"`
	Search *string `query:"search" validate:"omitempty,max=200"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type CohortResponse struct {
	CohortID          uuid.UUID      `json:"cohort_id"`
	CohortName        string         `json:"cohort_name"`
	CohortDescription *string        `json:"cohort_description,omitempty"`
	CohortStatus      m.CohortStatus `json:"cohort_status"`
	TeachingDays      []int64        `json:"teaching_days"`
	FixedDates        map[string]string `json:"fixed_dates,omitempty"`
	SessionCount      int            `json:"session_count"`
	CreatedAt         time.Time      `json:"created_at"`
}

type CohortSummary struct {
	CohortID     uuid.UUID      `json:"cohort_id"`
	CohortName   string         `json:"cohort_name"`
	CohortStatus m.CohortStatus `json:"cohort_status"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateCohortRequest) ToModel() (m.CohortModel, error) {
	mdl := m.CohortModel{
		CohortName:        r.CohortName,
		CohortDescription: r.CohortDescription,
		CohortStatus:      m.CohortStatusActive,
	}
	if len(r.TeachingDays) > 0 {
		mdl.CohortTeachingDays = pq.Int64Array(r.TeachingDays)
	} else {
		mdl.CohortTeachingDays = pq.Int64Array{1, 3, 5}
	}
	if len(r.FixedDates) > 0 {
		raw, err := json.Marshal(r.FixedDates)
		if err != nil {
			return mdl, err
		}
		mdl.CohortFixedSessionDates = datatypes.JSON(raw)
	}
	return mdl, nil
}

func NewCohortResponse(mdl m.CohortModel, sessionCount int) CohortResponse {
	resp := CohortResponse{
		CohortID:          mdl.CohortID,
		CohortName:        mdl.CohortName,
		CohortDescription: mdl.CohortDescription,
		CohortStatus:      mdl.CohortStatus,
		TeachingDays:      []int64(mdl.CohortTeachingDays),
		SessionCount:      sessionCount,
		CreatedAt:         mdl.CohortCreatedAt,
	}
	if len(mdl.CohortFixedSessionDates) > 0 {
		var fd map[string]string
		if err := json.Unmarshal(mdl.CohortFixedSessionDates, &fd); err == nil {
			resp.FixedDates = fd
		}
	}
	return resp
}

func NewCohortSummary(mdl m.CohortModel) CohortSummary {
	return CohortSummary{
		CohortID:     mdl.CohortID,
		CohortName:   mdl.CohortName,
		CohortStatus: mdl.CohortStatus,
	}
}
