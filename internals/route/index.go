// file: internals/route/index.go
package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cohortRoutes "bitacademy_backend/internals/features/cohorts/route"
	"bitacademy_backend/internals/middlewares"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	user := app.Group("/api/u",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
	)
	cohortRoutes.CohortUserRoutes(user, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		middlewares.AuthJWT(middlewares.AuthJWTOpts{
			Secret:              os.Getenv("JWT_SECRET"),
			AllowCookieFallback: true,
		}),
		middlewares.RequireAdmin(),
	)
	cohortRoutes.CohortAdminRoutes(admin, db)
}
