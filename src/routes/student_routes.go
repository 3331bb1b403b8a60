package routes

import "github.com/gofiber/fiber/v2"

func registerStudentRoutes(r fiber.Router, ctl Controllers) {
	students := r.Group("/students")
	students.Get("/", ctl.Students.List)
	students.Get("/next-code", ctl.Students.NextCode)
	students.Post("/", ctl.Students.Create)
	students.Get("/bulk-upload/template", ctl.BulkUpload.Template)
	students.Post("/bulk-upload", ctl.BulkUpload.Upload)
	students.Post("/bulk-upload/undo/:actionId", ctl.BulkUpload.Undo)
	students.Get("/:id", ctl.Students.Get)
	students.Put("/:id", ctl.Students.Update)
	students.Delete("/:id", ctl.Students.Delete)
}
