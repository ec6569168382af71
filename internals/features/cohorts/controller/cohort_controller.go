// file: internals/features/cohorts/controller/cohort_controller.go
package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"bitacademy_backend/internals/features/cohorts/dto"
	m "bitacademy_backend/internals/features/cohorts/model"
	"bitacademy_backend/internals/features/cohorts/service"
	helper "bitacademy_backend/internals/helpers"
)

var validate = validator.New()

type CohortController struct {
	DB *gorm.DB
}

func NewCohortController(db *gorm.DB) *CohortController {
	return &CohortController{DB: db}
}

/* ===================== CREATE ===================== */
// POST /api/a/cohorts
func (ctrl *CohortController) CreateCohort(c *fiber.Ctx) error {
	var req dto.CreateCohortRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	// duplicate name → conflict
	var dup int64
	if err := ctrl.DB.Model(&m.CohortModel{}).
		Where("cohort_name = ?", strings.TrimSpace(req.CohortName)).
		Count(&dup).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	if dup > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "A cohort with that name already exists")
	}

	mdl, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid fixed_dates payload")
	}
	mdl.CohortID = uuid.New()

	// provisioned sessions get dates straight from the pattern engine
	var sessions []m.CohortSessionModel
	if req.SessionCount > 0 {
		if req.StartDate == nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "start_date is required when session_count > 0")
		}
		start, err := helper.ParseLocalDate(*req.StartDate)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid start_date")
		}
		fixed, err := dto.ParseFixedDates(req.FixedDates)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		numbers := make([]int, req.SessionCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		plan, err := service.PlanSchedule(numbers, start, mdl.TeachingWeekdays(), fixed)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		sessions = make([]m.CohortSessionModel, 0, len(plan))
		for i, p := range plan {
			s := m.CohortSessionModel{
				CohortSessionID:       uuid.New(),
				CohortSessionCohortID: mdl.CohortID,
				CohortSessionNumber:   p.SessionNumber,
				CohortSessionDate:     p.Date,
				CohortSessionStatus:   m.SessionStatusScheduled,
			}
			if i < len(req.Topics) && strings.TrimSpace(req.Topics[i]) != "" {
				topic := req.Topics[i]
				s.CohortSessionTopic = &topic
			}
			sessions = append(sessions, s)
		}
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mdl).Error; err != nil {
			return err
		}
		if len(sessions) > 0 {
			if err := tx.Create(&sessions).Error; err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return helper.JsonErrorWithDetails(c, fiber.StatusInternalServerError, "Failed to create cohort", err.Error())
	}

	return helper.JsonCreated(c, "Cohort created", dto.NewCohortResponse(mdl, len(sessions)))
}

/* ===================== LIST ===================== */
// GET /api/a/cohorts
func (ctrl *CohortController) ListCohorts(c *fiber.Ctx) error {
	var filter dto.FilterCohortRequest
	if err := c.QueryParser(&filter); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query")
	}
	if err := validate.Struct(filter); err != nil {
		return helper.ValidationError(c, err)
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&m.CohortModel{})
	if filter.Status != nil {
		q = q.Where("cohort_status = ?", *filter.Status)
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		q = q.Where("cohort_name ILIKE ?", "%"+strings.TrimSpace(*filter.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var rows []m.CohortModel
	if err := q.Order("cohort_created_at DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	// session counts for the page in one grouped query
	counts := map[uuid.UUID]int{}
	if len(rows) > 0 {
		ids := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.CohortID)
		}
		type countRow struct {
			CohortID uuid.UUID `gorm:"column:cohort_session_cohort_id"`
			N        int       `gorm:"column:n"`
		}
		var cr []countRow
		if err := ctrl.DB.Model(&m.CohortSessionModel{}).
			Select("cohort_session_cohort_id, COUNT(*) AS n").
			Where("cohort_session_cohort_id IN ?", ids).
			Group("cohort_session_cohort_id").
			Find(&cr).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
		}
		for _, r := range cr {
			counts[r.CohortID] = r.N
		}
	}

	resp := make([]dto.CohortResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, dto.NewCohortResponse(r, counts[r.CohortID]))
	}

	pg := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage, len(resp))
	return helper.JsonList(c, "Cohorts fetched", resp, &pg)
}

/* ===================== DETAIL ===================== */
// GET /api/a/cohorts/:id
func (ctrl *CohortController) GetCohort(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cohort id")
	}

	var cohort m.CohortModel
	if err := ctrl.DB.First(&cohort, "cohort_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cohort not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var sessions []m.CohortSessionModel
	if err := ctrl.DB.
		Where("cohort_session_cohort_id = ?", id).
		Order("cohort_session_number ASC").
		Find(&sessions).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	sessResp := make([]dto.SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		sessResp = append(sessResp, dto.NewSessionResponse(s, nil))
	}

	return helper.JsonOK(c, "Cohort fetched", fiber.Map{
		"cohort":   dto.NewCohortResponse(cohort, len(sessions)),
		"sessions": sessResp,
	})
}

/* ===================== DELETE ===================== */
// DELETE /api/a/cohorts/:id (soft delete, sessions included)
func (ctrl *CohortController) DeleteCohort(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cohort id")
	}

	var cohort m.CohortModel
	if err := ctrl.DB.First(&cohort, "cohort_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cohort not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cohort_session_cohort_id = ?", id).
			Delete(&m.CohortSessionModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cohort).Error
	}); err != nil {
		return helper.JsonErrorWithDetails(c, fiber.StatusInternalServerError, "Failed to delete cohort", err.Error())
	}

	return helper.JsonDeleted(c, "Cohort deleted", fiber.Map{"cohort_id": id})
}
