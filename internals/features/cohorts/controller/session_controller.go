// file: internals/features/cohorts/controller/session_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitacademy_backend/internals/features/cohorts/dto"
	m "bitacademy_backend/internals/features/cohorts/model"
	helper "bitacademy_backend/internals/helpers"
)

type SessionController struct {
	DB *gorm.DB
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db}
}

/* ===================== UPDATE (single / shift) ===================== */
// PUT /api/a/sessions/:id
//
// Partial update. When session_date changes, siblings on the target date are
// conflict-checked; in shift mode every later session is moved by the same
// day offset, and those moves are written BEFORE the edited row so the
// conflict window never sees a stale successor date. One transaction wraps
// the whole sequence.
func (ctrl *SessionController) UpdateSession(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// contract: these answer 400, not a field-error 422
	if !req.HasFields() {
		return helper.JsonError(c, fiber.StatusBadRequest, "No valid fields to update")
	}
	if req.DurationMinutes != nil && *req.DurationMinutes < 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "duration_minutes must be a non-negative number")
	}
	if req.Status != nil && !m.ValidSessionStatus(*req.Status) {
		return helper.JsonError(c, fiber.StatusBadRequest, "status must be one of scheduled, completed, cancelled, rescheduled")
	}
	if req.UpdateMode != nil && *req.UpdateMode != dto.UpdateModeSingle && *req.UpdateMode != dto.UpdateModeShift {
		return helper.JsonError(c, fiber.StatusBadRequest, "update_mode must be single or shift")
	}

	var session m.CohortSessionModel
	if err := ctrl.DB.First(&session, "cohort_session_id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Session not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	updates := map[string]any{}
	if req.Topic != nil {
		updates["cohort_session_topic"] = *req.Topic
	}
	if req.Instructor != nil {
		updates["cohort_session_instructor"] = *req.Instructor
	}
	if req.DurationMinutes != nil {
		updates["cohort_session_duration_minutes"] = *req.DurationMinutes
	}
	if req.Link != nil {
		updates["cohort_session_link"] = *req.Link
	}
	if req.RecordingURL != nil {
		updates["cohort_session_recording_url"] = *req.RecordingURL
	}
	if req.Status != nil {
		updates["cohort_session_status"] = *req.Status
	}

	// date normalization + change detection
	dateChanged := false
	oldDate := helper.DateOnly(session.CohortSessionDate)
	newDate := oldDate
	if req.SessionDate != nil {
		newDate, err = helper.ParseLocalDate(*req.SessionDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session_date (expected YYYY-MM-DD)")
		}
		dateChanged = !newDate.Equal(oldDate)
	}

	mode := req.Mode()

	if dateChanged {
		// conflict detection against already-persisted sibling dates
		var siblings []m.CohortSessionModel
		if err := ctrl.DB.
			Where("cohort_session_cohort_id = ?", session.CohortSessionCohortID).
			Where("cohort_session_date = ?", newDate).
			Where("cohort_session_id <> ?", session.CohortSessionID).
			Find(&siblings).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		for _, sib := range siblings {
			// shift mode: later siblings are about to move out of the way,
			// only earlier-or-equal ones are real collisions
			if mode == dto.UpdateModeSingle || sib.CohortSessionNumber <= session.CohortSessionNumber {
				return helper.JsonError(c, fiber.StatusBadRequest,
					fmt.Sprintf("Date conflict: session %d already occupies %s", sib.CohortSessionNumber, helper.FormatDate(newDate)))
			}
		}

		updates["cohort_session_date"] = newDate
	}

	var shiftedCount int
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if mode == dto.UpdateModeShift && dateChanged {
			delta := helper.WholeDaysBetween(oldDate, newDate)
			if delta != 0 {
				var successors []m.CohortSessionModel
				if err := tx.
					Where("cohort_session_cohort_id = ?", session.CohortSessionCohortID).
					Where("cohort_session_number > ?", session.CohortSessionNumber).
					Order("cohort_session_number ASC").
					Find(&successors).Error; err != nil {
					return err
				}
				// successors move first; the edited row's write comes last
				for _, succ := range successors {
					shifted := helper.DateOnly(succ.CohortSessionDate).AddDate(0, 0, delta)
					if err := tx.Model(&m.CohortSessionModel{}).
						Where("cohort_session_id = ?", succ.CohortSessionID).
						Update("cohort_session_date", shifted).Error; err != nil {
						return err
					}
					shiftedCount++
				}
			}
		}
		return tx.Model(&m.CohortSessionModel{}).
			Where("cohort_session_id = ?", session.CohortSessionID).
			Updates(updates).Error
	}); err != nil {
		return helper.JsonPartialFailure(c, "Failed to persist the session update", fiber.Map{
			"sessions_shifted": shiftedCount,
			"reason":           err.Error(),
		})
	}

	// completion side effect: best-effort, never surfaces to the caller
	if req.Status != nil && m.SessionStatus(*req.Status) == m.SessionStatusCompleted {
		ctrl.maybeCompleteCohort(session.CohortSessionCohortID)
	}

	var updated m.CohortSessionModel
	if err := ctrl.DB.First(&updated, "cohort_session_id = ?", sessionID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	var cohort m.CohortModel
	var summary *dto.CohortSummary
	if err := ctrl.DB.First(&cohort, "cohort_id = ?", updated.CohortSessionCohortID).Error; err == nil {
		s := dto.NewCohortSummary(cohort)
		summary = &s
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"session": dto.NewSessionResponse(updated, summary),
	})
}

// maybeCompleteCohort flips the cohort to Completed once every session is.
func (ctrl *SessionController) maybeCompleteCohort(cohortID uuid.UUID) {
	var remaining int64
	if err := ctrl.DB.Model(&m.CohortSessionModel{}).
		Where("cohort_session_cohort_id = ?", cohortID).
		Where("cohort_session_status <> ?", m.SessionStatusCompleted).
		Count(&remaining).Error; err != nil {
		log.Printf("[WARN] cohort completion check failed for %s: %v", cohortID, err)
		return
	}
	if remaining > 0 {
		return
	}
	if err := ctrl.DB.Model(&m.CohortModel{}).
		Where("cohort_id = ?", cohortID).
		Update("cohort_status", m.CohortStatusCompleted).Error; err != nil {
		log.Printf("[WARN] cohort completion update failed for %s: %v", cohortID, err)
	}
}

/* ===================== STUDENT VIEW ===================== */
// GET /api/u/cohorts/:id/sessions
func (ctrl *SessionController) ListCohortSessions(c *fiber.Ctx) error {
	cohortID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cohort id")
	}

	var cohort m.CohortModel
	if err := ctrl.DB.First(&cohort, "cohort_id = ?", cohortID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cohort not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var sessions []m.CohortSessionModel
	if err := ctrl.DB.
		Where("cohort_session_cohort_id = ?", cohortID).
		Order("cohort_session_number ASC").
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	summary := dto.NewCohortSummary(cohort)
	resp := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		resp = append(resp, dto.NewSessionResponse(s, nil))
	}

	return helper.JsonOK(c, "Sessions fetched", fiber.Map{
		"cohort":   summary,
		"sessions": resp,
	})
}
