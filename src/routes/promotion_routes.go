package routes

import "github.com/gofiber/fiber/v2"

func registerPromotionRoutes(r fiber.Router, ctl Controllers) {
	promotion := r.Group("/promotion")
	promotion.Post("/", ctl.Promotion.Promote)
	promotion.Post("/undo/:actionId", ctl.Promotion.Undo)
	promotion.Get("/targets/:fromLevel", ctl.Promotion.ValidTargets)
	promotion.Get("/levels", ctl.Promotion.AvailableLevels)
	promotion.Get("/alumni-eligible", ctl.Promotion.AlumniEligible)
}
