// file: internals/features/cohorts/model/cohort_model.go
package model

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Go-side enum for cohort_status
type CohortStatus string

const (
	CohortStatusActive    CohortStatus = "Active"
	CohortStatusCompleted CohortStatus = "Completed"
)

type CohortModel struct {
	CohortID uuid.UUID `json:"cohort_id" gorm:"column:cohort_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	CohortName        string  `json:"cohort_name"                  gorm:"column:cohort_name;type:varchar(120);not null;uniqueIndex"`
	CohortDescription *string `json:"cohort_description,omitempty" gorm:"column:cohort_description"`

	CohortStatus CohortStatus `json:"cohort_status" gorm:"column:cohort_status;type:varchar(20);not null;default:'Active'"`

	// Weekly teaching pattern, ISO weekday numbers (1=Mon .. 7=Sun).
	// Default {1,3,5} = Mon/Wed/Fri; 7 is never honored by the engine.
	CohortTeachingDays pq.Int64Array `json:"cohort_teaching_days" gorm:"column:cohort_teaching_days;type:int[]"`

	// Pinned dates per session number: {"4":"2026-01-26", ...}.
	// Caller-trusted overrides for the rolling pattern.
	CohortFixedSessionDates datatypes.JSON `json:"cohort_fixed_session_dates,omitempty" gorm:"column:cohort_fixed_session_dates;type:jsonb"`

	CohortCreatedAt time.Time      `json:"cohort_created_at"           gorm:"column:cohort_created_at;autoCreateTime"`
	CohortUpdatedAt *time.Time     `json:"cohort_updated_at,omitempty" gorm:"column:cohort_updated_at;autoUpdateTime"`
	CohortDeletedAt gorm.DeletedAt `json:"cohort_deleted_at,omitempty" gorm:"column:cohort_deleted_at;index"`
}

func (CohortModel) TableName() string { return "cohorts" }

// TeachingWeekdays decodes the stored pattern into time.Weekday values.
// Sunday is stripped unconditionally; an empty result falls back to Mon/Wed/Fri.
func (m *CohortModel) TeachingWeekdays() []time.Weekday {
	out := make([]time.Weekday, 0, len(m.CohortTeachingDays))
	for _, iso := range m.CohortTeachingDays {
		if iso < 1 || iso > 6 { // 7 = Sunday, never a teaching day
			continue
		}
		out = append(out, time.Weekday(iso%7))
	}
	if len(out) == 0 {
		return []time.Weekday{time.Monday, time.Wednesday, time.Friday}
	}
	sort.Slice(out, func(i, j int) bool {
		// week order with Monday first
		oi, oj := (int(out[i])+6)%7, (int(out[j])+6)%7
		return oi < oj
	})
	return out
}

// FixedSessionDates decodes the pinned-date map (session number → date).
func (m *CohortModel) FixedSessionDates() (map[int]time.Time, error) {
	if len(m.CohortFixedSessionDates) == 0 {
		return map[int]time.Time{}, nil
	}
	var raw map[string]string
	if err := json.Unmarshal(m.CohortFixedSessionDates, &raw); err != nil {
		return nil, err
	}
	out := make(map[int]time.Time, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 {
			continue
		}
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, err
		}
		out[n] = d
	}
	return out, nil
}
