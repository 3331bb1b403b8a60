package controllers

import (
	"strconv"

	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/models"
	"Backend-GnaasCMS/src/services/attendance"
	"Backend-GnaasCMS/src/store"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AttendanceController struct {
	attendance *attendance.Service
}

func NewAttendanceController(svc *attendance.Service) *AttendanceController {
	return &AttendanceController{attendance: svc}
}

// Status godoc
// @Summary      Get a date's open/closed status
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {object} attendance.StatusReport
// @Router       /attendance/{date}/status [get]
func (ctl *AttendanceController) Status(c *fiber.Ctx) error {
	report, err := ctl.attendance.Status(c.Context(), c.Params("date"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(report)
}

type markMemberRequest struct {
	StudentID string `json:"studentId"`
	IsPresent *bool  `json:"isPresent"`
}

// MarkMember godoc
// @Summary      Mark one member's attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string                         true  "Date (YYYY-MM-DD)"
// @Param        mark  body  controllers.markMemberRequest  true  "Student and presence"
// @Success      201 {object} map[string]interface{}
// @Failure      409 {object} models.ErrorResponse
// @Router       /attendance/{date}/members [post]
func (ctl *AttendanceController) MarkMember(c *fiber.Ctx) error {
	var req markMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	isPresent := true
	if req.IsPresent != nil {
		isPresent = *req.IsPresent
	}
	row, entry, err := ctl.attendance.MarkMember(c.Context(), c.Params("date"), req.StudentID, isPresent, middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	resp := fiber.Map{"attendance": row}
	if entry != nil {
		resp["actionId"] = entry.ID.Hex()
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UnmarkMember godoc
// @Summary      Remove one member's attendance mark
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date       path  string  true  "Date (YYYY-MM-DD)"
// @Param        studentId  path  string  true  "Student id"
// @Success      200 {object} map[string]string
// @Failure      404 {object} models.ErrorResponse
// @Router       /attendance/{date}/members/{studentId} [delete]
func (ctl *AttendanceController) UnmarkMember(c *fiber.Ctx) error {
	if err := ctl.attendance.UnmarkMember(c.Context(), c.Params("date"), c.Params("studentId")); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "attendance removed"})
}

type markVisitorRequest struct {
	Visitor   models.VisitorData `json:"visitor"`
	IsPresent *bool              `json:"isPresent"`
}

// MarkVisitor godoc
// @Summary      Record a visitor
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        date     path  string                          true  "Date (YYYY-MM-DD)"
// @Param        visitor  body  controllers.markVisitorRequest  true  "Visitor details"
// @Success      201 {object} models.Attendance
// @Failure      400 {object} models.ErrorResponse
// @Router       /attendance/{date}/visitors [post]
func (ctl *AttendanceController) MarkVisitor(c *fiber.Ctx) error {
	var req markVisitorRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	isPresent := true
	if req.IsPresent != nil {
		isPresent = *req.IsPresent
	}
	row, err := ctl.attendance.MarkVisitor(c.Context(), c.Params("date"), req.Visitor, isPresent, middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(row)
}

// MarkAll godoc
// @Summary      Mark all unmarked members present
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} models.ErrorResponse
// @Router       /attendance/{date}/mark-all [post]
func (ctl *AttendanceController) MarkAll(c *fiber.Ctx) error {
	count, entry, err := ctl.attendance.MarkAllPresent(c.Context(), c.Params("date"), middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	resp := fiber.Map{"marked": count}
	if entry != nil {
		resp["actionId"] = entry.ID.Hex()
	}
	return c.JSON(resp)
}

// UndoMarkAll godoc
// @Summary      Undo a mark-all action
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        actionId  path  string  true  "Action id"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} models.ErrorResponse
// @Router       /attendance/undo/mark-all/{actionId} [post]
func (ctl *AttendanceController) UndoMarkAll(c *fiber.Ctx) error {
	removed, err := ctl.attendance.UndoMarkAll(c.Context(), c.Params("actionId"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"removed": removed})
}

// UndoIndividual godoc
// @Summary      Undo one individual attendance mark
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        actionId  path  string  true  "Action id"
// @Success      200 {object} map[string]string
// @Failure      409 {object} models.ErrorResponse
// @Router       /attendance/undo/individual/{actionId} [post]
func (ctl *AttendanceController) UndoIndividual(c *fiber.Ctx) error {
	if err := ctl.attendance.UndoIndividual(c.Context(), c.Params("actionId")); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "attendance mark undone"})
}

// Close godoc
// @Summary      Close a date's attendance slot
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path   string  true  "Date (YYYY-MM-DD)"
// @Param        type  query  string  true  "Slot type (member or visitor)"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} models.ErrorResponse
// @Router       /attendance/{date}/close [post]
func (ctl *AttendanceController) Close(c *fiber.Ctx) error {
	n, err := ctl.attendance.Close(c.Context(), c.Params("date"), models.AttendanceType(c.Query("type", "member")))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"closed": n})
}

// Summary godoc
// @Summary      Get a date's attendance summary
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {object} attendance.Summary
// @Router       /attendance/{date}/summary [get]
func (ctl *AttendanceController) Summary(c *fiber.Ctx) error {
	sum, err := ctl.attendance.DateSummary(c.Context(), c.Params("date"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(sum)
}

// Present godoc
// @Summary      List members marked present
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {array} attendance.MemberMark
// @Router       /attendance/{date}/present [get]
func (ctl *AttendanceController) Present(c *fiber.Ctx) error {
	list, err := ctl.attendance.MembersPresent(c.Context(), c.Params("date"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// Absent godoc
// @Summary      List members marked absent
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {array} attendance.MemberMark
// @Router       /attendance/{date}/absent [get]
func (ctl *AttendanceController) Absent(c *fiber.Ctx) error {
	list, err := ctl.attendance.MembersAbsent(c.Context(), c.Params("date"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// Unmarked godoc
// @Summary      List members not yet marked
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date    path   string  true   "Date (YYYY-MM-DD)"
// @Param        hall    query  string  false  "Filter by hall"
// @Param        level   query  string  false  "Filter by level"
// @Param        gender  query  string  false  "Filter by gender"
// @Success      200 {array} models.Student
// @Router       /attendance/{date}/unmarked [get]
func (ctl *AttendanceController) Unmarked(c *fiber.Ctx) error {
	filter := store.StudentFilter{
		Hall:   c.Query("hall"),
		Level:  c.Query("level"),
		Gender: c.Query("gender"),
	}
	list, err := ctl.attendance.UnmarkedMembers(c.Context(), c.Params("date"), filter)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// Visitors godoc
// @Summary      List a date's visitors
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200 {array} models.Attendance
// @Router       /attendance/{date}/visitors [get]
func (ctl *AttendanceController) Visitors(c *fiber.Ctx) error {
	list, err := ctl.attendance.Visitors(c.Context(), c.Params("date"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// Weekly godoc
// @Summary      Get weekly attendance stats
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        week  query  string  false  "Week (YYYY-WW), defaults to current"
// @Success      200 {object} attendance.WeeklyReport
// @Router       /attendance/stats/weekly [get]
func (ctl *AttendanceController) Weekly(c *fiber.Ctx) error {
	stats, err := ctl.attendance.WeeklyStats(c.Context(), c.Query("week"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(stats)
}

// Monthly godoc
// @Summary      Get monthly attendance trends
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Param        months  query  int  false  "Trailing months (default 6)"
// @Success      200 {array} attendance.MonthlyTrend
// @Router       /attendance/stats/monthly [get]
func (ctl *AttendanceController) Monthly(c *fiber.Ctx) error {
	months, _ := strconv.Atoi(c.Query("months", "6"))
	trends, err := ctl.attendance.MonthlyTrends(c.Context(), months)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(trends)
}
