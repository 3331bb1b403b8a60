// Package routes wires every controller into the Fiber app.
package routes

import (
	"Backend-GnaasCMS/src/controllers"
	"Backend-GnaasCMS/src/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Students   *controllers.StudentController
	Attendance *controllers.AttendanceController
	Promotion  *controllers.PromotionController
	Admin      *controllers.AdminController
	BulkUpload *controllers.BulkUploadController
	Reports    *controllers.ReportsController
}

// InitRoutes mounts every endpoint under /api. All routes except login and
// the health check require a valid token.
func InitRoutes(app *fiber.App, jwtSecret string, ctl Controllers) {
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")
	api.Post("/auth/login", ctl.Auth.Login)

	authed := api.Use(middleware.AuthJWT(jwtSecret))
	authed.Get("/auth/me", ctl.Auth.Me)
	authed.Post("/auth/change-password", ctl.Auth.ChangePassword)

	registerStudentRoutes(authed, ctl)
	registerAttendanceRoutes(authed, ctl)
	registerPromotionRoutes(authed, ctl)
	registerAdminRoutes(authed, ctl)
	registerReportRoutes(authed, ctl)
}
