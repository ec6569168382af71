// file: internals/features/cohorts/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bitacademy_backend/internals/features/cohorts/controller"
	"bitacademy_backend/internals/middlewares"
)

// CohortAdminRoutes registers the admin surface (full CRUD + scheduling).
func CohortAdminRoutes(admin fiber.Router, db *gorm.DB) {
	cohortCtl := controller.NewCohortController(db)
	sessionCtl := controller.NewSessionController(db)

	grp := admin.Group("/cohorts")
	grp.Post("/", cohortCtl.CreateCohort)
	grp.Get("/", cohortCtl.ListCohorts)
	grp.Post("/rearrange-sessions", middlewares.ScheduleWriteRateLimiter(), cohortCtl.RearrangeSessions)
	grp.Get("/:id", cohortCtl.GetCohort)
	grp.Delete("/:id", cohortCtl.DeleteCohort)

	admin.Put("/sessions/:id", sessionCtl.UpdateSession)
}
