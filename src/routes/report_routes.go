package routes

import "github.com/gofiber/fiber/v2"

func registerReportRoutes(r fiber.Router, ctl Controllers) {
	reports := r.Group("/reports")
	reports.Get("/attendance", ctl.Reports.Range)
	reports.Get("/roster", ctl.Reports.Roster)
	reports.Get("/students/export.csv", ctl.Reports.ExportCSV)
	reports.Get("/students/export.xlsx", ctl.Reports.ExportExcel)
}
