package controllers

import (
	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/services/promotion"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type PromotionController struct {
	promotion *promotion.Service
}

func NewPromotionController(svc *promotion.Service) *PromotionController {
	return &PromotionController{promotion: svc}
}

type promoteRequest struct {
	FromLevel string `json:"fromLevel"`
	ToLevel   string `json:"toLevel"`
}

// Promote godoc
// @Summary      Promote eligible students between levels
// @Tags         promotion
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        levels  body  controllers.promoteRequest  true  "From and to levels"
// @Success      200 {object} promotion.Result
// @Failure      400 {object} models.ErrorResponse
// @Router       /promotion [post]
func (ctl *PromotionController) Promote(c *fiber.Ctx) error {
	var req promoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	result, err := ctl.promotion.Promote(c.Context(), req.FromLevel, req.ToLevel, middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(result)
}

// Undo godoc
// @Summary      Undo a promotion
// @Tags         promotion
// @Produce      json
// @Security     BearerAuth
// @Param        actionId  path  string  true  "Action id"
// @Success      200 {object} map[string]interface{}
// @Failure      409 {object} models.ErrorResponse
// @Router       /promotion/undo/{actionId} [post]
func (ctl *PromotionController) Undo(c *fiber.Ctx) error {
	restored, err := ctl.promotion.Undo(c.Context(), c.Params("actionId"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"restored": restored})
}

// ValidTargets godoc
// @Summary      List legal promotion targets for a level
// @Tags         promotion
// @Produce      json
// @Security     BearerAuth
// @Param        fromLevel  path  string  true  "Source level (L100..L600)"
// @Success      200 {array} string
// @Failure      400 {object} models.ErrorResponse
// @Router       /promotion/targets/{fromLevel} [get]
func (ctl *PromotionController) ValidTargets(c *fiber.Ctx) error {
	targets, err := ctl.promotion.ValidTargets(c.Context(), c.Params("fromLevel"))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(targets)
}

// AlumniEligible godoc
// @Summary      List students eligible to graduate
// @Tags         promotion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Student
// @Router       /promotion/alumni-eligible [get]
func (ctl *PromotionController) AlumniEligible(c *fiber.Ctx) error {
	list, err := ctl.promotion.AlumniEligible(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(list)
}

// AvailableLevels godoc
// @Summary      List levels that currently have students
// @Tags         promotion
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} string
// @Router       /promotion/levels [get]
func (ctl *PromotionController) AvailableLevels(c *fiber.Ctx) error {
	levels, err := ctl.promotion.AvailableLevels(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(levels)
}
