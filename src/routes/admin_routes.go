package routes

import (
	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/models"

	"github.com/gofiber/fiber/v2"
)

func registerAdminRoutes(r fiber.Router, ctl Controllers) {
	admin := r.Group("/admin")
	admin.Get("/users", ctl.Admin.ListUsers)
	admin.Put("/profile-image", ctl.Admin.UpdateProfileImage)
	admin.Get("/distributions/level", ctl.Admin.LevelDistribution)
	admin.Get("/distributions/hall", ctl.Admin.HallDistribution)
	admin.Get("/distributions/gender", ctl.Admin.GenderDistribution)
	admin.Get("/insights", ctl.Admin.Insights)
	admin.Get("/actions", ctl.Admin.RecentActions)

	// Only the super admin can provision accounts.
	admin.Post("/secretaries", middleware.RequireRoles(models.RoleSuperAdmin), ctl.Admin.CreateSecretary)
}
