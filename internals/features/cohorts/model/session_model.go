// file: internals/features/cohorts/model/session_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Go-side enum for cohort_session_status
type SessionStatus string

const (
	SessionStatusScheduled   SessionStatus = "scheduled"
	SessionStatusCompleted   SessionStatus = "completed"
	SessionStatusCancelled   SessionStatus = "cancelled"
	SessionStatusRescheduled SessionStatus = "rescheduled"
)

func ValidSessionStatus(s string) bool {
	switch SessionStatus(s) {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusRescheduled:
		return true
	}
	return false
}

type CohortSessionModel struct {
	CohortSessionID uuid.UUID `json:"cohort_session_id" gorm:"column:cohort_session_id;type:uuid;primaryKey;default:gen_random_uuid()"`

	// FK → cohorts, immutable after creation
	CohortSessionCohortID uuid.UUID `json:"cohort_session_cohort_id" gorm:"column:cohort_session_cohort_id;type:uuid;not null;uniqueIndex:uq_cohort_session_number,priority:1"`

	// 1-based position inside the cohort, defines chronological order
	CohortSessionNumber int `json:"cohort_session_number" gorm:"column:cohort_session_number;not null;uniqueIndex:uq_cohort_session_number,priority:2"`

	CohortSessionDate   time.Time     `json:"cohort_session_date"   gorm:"column:cohort_session_date;type:date;not null"`
	CohortSessionStatus SessionStatus `json:"cohort_session_status" gorm:"column:cohort_session_status;type:varchar(20);not null;default:'scheduled'"`

	// Descriptive fields the scheduler passes through untouched
	CohortSessionTopic           *string `json:"cohort_session_topic,omitempty"            gorm:"column:cohort_session_topic"`
	CohortSessionInstructor      *string `json:"cohort_session_instructor,omitempty"       gorm:"column:cohort_session_instructor"`
	CohortSessionDurationMinutes *int    `json:"cohort_session_duration_minutes,omitempty" gorm:"column:cohort_session_duration_minutes"`
	CohortSessionLink            *string `json:"cohort_session_link,omitempty"             gorm:"column:cohort_session_link"`
	CohortSessionRecordingURL    *string `json:"cohort_session_recording_url,omitempty"    gorm:"column:cohort_session_recording_url"`

	CohortSessionCreatedAt time.Time      `json:"cohort_session_created_at"           gorm:"column:cohort_session_created_at;autoCreateTime"`
	CohortSessionUpdatedAt *time.Time     `json:"cohort_session_updated_at,omitempty" gorm:"column:cohort_session_updated_at;autoUpdateTime"`
	CohortSessionDeletedAt gorm.DeletedAt `json:"cohort_session_deleted_at,omitempty" gorm:"column:cohort_session_deleted_at;index"`

	// Optional relation to the owning cohort
	Cohort *CohortModel `json:"-" gorm:"foreignKey:CohortSessionCohortID;references:CohortID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (CohortSessionModel) TableName() string { return "cohort_sessions" }
