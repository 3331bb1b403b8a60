package routes

import "github.com/gofiber/fiber/v2"

func registerAttendanceRoutes(r fiber.Router, ctl Controllers) {
	attendance := r.Group("/attendance")
	attendance.Get("/stats/weekly", ctl.Attendance.Weekly)
	attendance.Get("/stats/monthly", ctl.Attendance.Monthly)
	attendance.Post("/undo/mark-all/:actionId", ctl.Attendance.UndoMarkAll)
	attendance.Post("/undo/individual/:actionId", ctl.Attendance.UndoIndividual)

	attendance.Get("/:date/status", ctl.Attendance.Status)
	attendance.Get("/:date/summary", ctl.Attendance.Summary)
	attendance.Get("/:date/present", ctl.Attendance.Present)
	attendance.Get("/:date/absent", ctl.Attendance.Absent)
	attendance.Get("/:date/unmarked", ctl.Attendance.Unmarked)
	attendance.Get("/:date/visitors", ctl.Attendance.Visitors)
	attendance.Post("/:date/members", ctl.Attendance.MarkMember)
	attendance.Delete("/:date/members/:studentId", ctl.Attendance.UnmarkMember)
	attendance.Post("/:date/visitors", ctl.Attendance.MarkVisitor)
	attendance.Post("/:date/mark-all", ctl.Attendance.MarkAll)
	attendance.Post("/:date/close", ctl.Attendance.Close)
}
