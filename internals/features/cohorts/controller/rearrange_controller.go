// file: internals/features/cohorts/controller/rearrange_controller.go
package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitacademy_backend/internals/features/cohorts/dto"
	m "bitacademy_backend/internals/features/cohorts/model"
	"bitacademy_backend/internals/features/cohorts/service"
	helper "bitacademy_backend/internals/helpers"
)

/* ===================== BULK REARRANGE ===================== */
// POST /api/a/cohorts/rearrange-sessions
//
// Recomputes every session date of a cohort from startDate following the
// cohort's weekly teaching pattern, honoring pinned fixed dates. Idempotent:
// rerunning with the same inputs reproduces the same schedule. All date
// writes happen inside one transaction, in session-number order.
func (ctrl *CohortController) RearrangeSessions(c *fiber.Ctx) error {
	var req dto.RearrangeSessionsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	if strings.TrimSpace(req.StartDate) == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "startDate is required")
	}
	start, err := helper.ParseLocalDate(req.StartDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid startDate (expected YYYY-MM-DD)")
	}
	if req.CohortID == nil && req.CohortName == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Either cohortId or cohortName is required")
	}

	// resolve cohort by id first, then by name
	var cohort m.CohortModel
	q := ctrl.DB.Model(&m.CohortModel{})
	if req.CohortID != nil {
		id, err := uuid.Parse(strings.TrimSpace(*req.CohortID))
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cohortId")
		}
		q = q.Where("cohort_id = ?", id)
	} else {
		q = q.Where("cohort_name = ?", strings.TrimSpace(*req.CohortName))
	}
	if err := q.First(&cohort).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cohort not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var sessions []m.CohortSessionModel
	if err := ctrl.DB.
		Where("cohort_session_cohort_id = ?", cohort.CohortID).
		Order("cohort_session_number ASC").
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if len(sessions) == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "No sessions found for this cohort")
	}

	// request-level pins override the cohort's stored map
	fixed, err := dto.ParseFixedDates(req.FixedDates)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if len(fixed) == 0 {
		fixed, err = cohort.FixedSessionDates()
		if err != nil {
			return helper.JsonErrorWithDetails(c, fiber.StatusInternalServerError, "Stored fixed-date map is corrupt", err.Error())
		}
	}

	numbers := make([]int, 0, len(sessions))
	for _, s := range sessions {
		numbers = append(numbers, s.CohortSessionNumber)
	}
	plan, err := service.PlanSchedule(numbers, start, cohort.TeachingWeekdays(), fixed)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// one transaction: a failed write rolls everything back instead of
	// leaving the cohort half-rearranged
	var failedNumber int
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		for i, p := range plan {
			if err := tx.Model(&m.CohortSessionModel{}).
				Where("cohort_session_id = ?", sessions[i].CohortSessionID).
				Update("cohort_session_date", p.Date).Error; err != nil {
				failedNumber = p.SessionNumber
				return err
			}
		}
		return nil
	}); err != nil {
		return helper.JsonPartialFailure(c, "Failed to persist the rearranged schedule", fiber.Map{
			"failed_session_number": failedNumber,
			"reason":                err.Error(),
		})
	}

	schedule := make([]dto.ScheduleEntryResponse, 0, len(plan))
	for _, p := range plan {
		schedule = append(schedule, dto.ScheduleEntryResponse{
			SessionNumber: p.SessionNumber,
			Date:          helper.FormatDate(p.Date),
			Day:           p.Date.Weekday().String(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":         true,
		"message":         fmt.Sprintf("Rearranged %d sessions for cohort %s", len(plan), cohort.CohortName),
		"sessionsUpdated": len(plan),
		"startDate":       helper.FormatDate(start),
		"endDate":         helper.FormatDate(plan[len(plan)-1].Date),
		"schedule":        schedule,
	})
}
