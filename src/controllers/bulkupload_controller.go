package controllers

import (
	"io"

	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/services/bulkupload"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type BulkUploadController struct {
	uploads *bulkupload.Service
}

func NewBulkUploadController(svc *bulkupload.Service) *BulkUploadController {
	return &BulkUploadController{uploads: svc}
}

// Upload godoc
// @Summary      Bulk import students from CSV or Excel
// @Tags         bulk-upload
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file  formData  file  true  "CSV or XLSX file"
// @Success      200 {object} bulkupload.Result
// @Failure      400 {object} models.ErrorResponse
// @Router       /students/bulk-upload [post]
func (ctl *BulkUploadController) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required")
	}
	f, err := header.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not open uploaded file")
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not read uploaded file")
	}

	result, err := ctl.uploads.Upload(c.Context(), header.Filename, content, middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(result)
}

// Template godoc
// @Summary      Download the bulk upload sample workbook
// @Tags         bulk-upload
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200 {file} binary
// @Router       /students/bulk-upload/template [get]
func (ctl *BulkUploadController) Template(c *fiber.Ctx) error {
	buf, err := bulkupload.Template()
	if err != nil {
		return utils.Fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="bulk-upload-template.xlsx"`)
	return c.Send(buf.Bytes())
}

// Undo godoc
// @Summary      Undo a bulk upload
// @Tags         bulk-upload
// @Produce      json
// @Security     BearerAuth
// @Param        actionId  path  string  true  "Action id"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} models.ErrorResponse
// @Router       /students/bulk-upload/undo/{actionId} [post]
func (ctl *BulkUploadController) Undo(c *fiber.Ctx) error {
	deleted, err := ctl.uploads.Undo(c.Context(), c.Params("actionId"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted})
}
