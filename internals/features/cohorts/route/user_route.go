// file: internals/features/cohorts/route/user_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"bitacademy_backend/internals/features/cohorts/controller"
)

// CohortUserRoutes registers the read-only student surface.
func CohortUserRoutes(user fiber.Router, db *gorm.DB) {
	sessionCtl := controller.NewSessionController(db)

	user.Get("/cohorts/:id/sessions", sessionCtl.ListCohortSessions)
}
