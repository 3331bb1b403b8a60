package controllers

import (
	"Backend-GnaasCMS/src/services/students"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type StudentController struct {
	students *students.Service
}

func NewStudentController(svc *students.Service) *StudentController {
	return &StudentController{students: svc}
}

// Create godoc
// @Summary      Register a student
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        student  body  students.CreateRequest  true  "Student details"
// @Success      201 {object} models.Student
// @Failure      400 {object} models.ErrorResponse
// @Router       /students [post]
func (ctl *StudentController) Create(c *fiber.Ctx) error {
	var req students.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	st, err := ctl.students.Create(c.Context(), req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(st)
}

// List godoc
// @Summary      List students
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        hall    query  string  false  "Filter by hall"
// @Param        level   query  string  false  "Filter by level"
// @Param        gender  query  string  false  "Filter by gender"
// @Success      200 {array} models.Student
// @Router       /students [get]
func (ctl *StudentController) List(c *fiber.Ctx) error {
	list, err := ctl.students.List(c.Context(), c.Query("hall"), c.Query("level"), c.Query("gender"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// Get godoc
// @Summary      Get one student
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Student id"
// @Success      200 {object} models.Student
// @Failure      404 {object} models.ErrorResponse
// @Router       /students/{id} [get]
func (ctl *StudentController) Get(c *fiber.Ctx) error {
	st, err := ctl.students.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(st)
}

// Update godoc
// @Summary      Update a student's profile
// @Tags         students
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string                  true  "Student id"
// @Param        student  body  students.CreateRequest  true  "Updated details"
// @Success      200 {object} models.Student
// @Failure      404 {object} models.ErrorResponse
// @Router       /students/{id} [put]
func (ctl *StudentController) Update(c *fiber.Ctx) error {
	var req students.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	st, err := ctl.students.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(st)
}

// Delete godoc
// @Summary      Delete a student
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Student id"
// @Success      200 {object} map[string]string
// @Failure      404 {object} models.ErrorResponse
// @Router       /students/{id} [delete]
func (ctl *StudentController) Delete(c *fiber.Ctx) error {
	if err := ctl.students.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "student deleted"})
}

// NextCode godoc
// @Summary      Preview the next student code
// @Tags         students
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Router       /students/next-code [get]
func (ctl *StudentController) NextCode(c *fiber.Ctx) error {
	code, err := ctl.students.NextCode(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"code": code})
}
