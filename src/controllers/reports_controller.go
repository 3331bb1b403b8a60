package controllers

import (
	"Backend-GnaasCMS/src/services/reports"
	"Backend-GnaasCMS/src/store"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportsController struct {
	reports *reports.Service
}

func NewReportsController(svc *reports.Service) *ReportsController {
	return &ReportsController{reports: svc}
}

// Range godoc
// @Summary      Attendance report over a date range
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        from  query  string  true  "Start date (YYYY-MM-DD)"
// @Param        to    query  string  true  "End date (YYYY-MM-DD)"
// @Success      200 {object} reports.RangeReport
// @Failure      400 {object} models.ErrorResponse
// @Router       /reports/attendance [get]
func (ctl *ReportsController) Range(c *fiber.Ctx) error {
	report, err := ctl.reports.AttendanceRange(c.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(report)
}

// Roster godoc
// @Summary      Student roster grouped by attribute
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        groupBy  query  string  true  "level, hall or gender"
// @Success      200 {object} reports.GroupedRoster
// @Failure      400 {object} models.ErrorResponse
// @Router       /reports/roster [get]
func (ctl *ReportsController) Roster(c *fiber.Ctx) error {
	roster, err := ctl.reports.Roster(c.Context(), c.Query("groupBy", "level"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(roster)
}

// ExportCSV godoc
// @Summary      Export the student roster as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        hall    query  string  false  "Filter by hall"
// @Param        level   query  string  false  "Filter by level"
// @Param        gender  query  string  false  "Filter by gender"
// @Success      200 {string} string
// @Router       /reports/students/export.csv [get]
func (ctl *ReportsController) ExportCSV(c *fiber.Ctx) error {
	data, err := ctl.reports.ExportStudentsCSV(c.Context(), store.StudentFilter{
		Hall: c.Query("hall"), Level: c.Query("level"), Gender: c.Query("gender"),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.csv"`)
	return c.Send(data)
}

// ExportExcel godoc
// @Summary      Export the student roster as an Excel workbook
// @Tags         reports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Param        hall    query  string  false  "Filter by hall"
// @Param        level   query  string  false  "Filter by level"
// @Param        gender  query  string  false  "Filter by gender"
// @Success      200 {string} string
// @Router       /reports/students/export.xlsx [get]
func (ctl *ReportsController) ExportExcel(c *fiber.Ctx) error {
	data, err := ctl.reports.ExportStudentsExcel(c.Context(), store.StudentFilter{
		Hall: c.Query("hall"), Level: c.Query("level"), Gender: c.Query("gender"),
	})
	if err != nil {
		return utils.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="students.xlsx"`)
	return c.Send(data)
}
