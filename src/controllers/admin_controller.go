package controllers

import (
	"strconv"

	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/services/actions"
	"Backend-GnaasCMS/src/services/admins"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AdminController struct {
	admins  *admins.Service
	actions *actions.Service
}

func NewAdminController(adminSvc *admins.Service, actionSvc *actions.Service) *AdminController {
	return &AdminController{admins: adminSvc, actions: actionSvc}
}

// ListUsers godoc
// @Summary      List admin accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.UserSummary
// @Router       /admin/users [get]
func (ctl *AdminController) ListUsers(c *fiber.Ctx) error {
	users, err := ctl.admins.ListUsers(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(users)
}

// CreateSecretary godoc
// @Summary      Create a secretary account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        secretary  body  admins.CreateSecretaryRequest  true  "Secretary details"
// @Success      201 {object} models.UserSummary
// @Failure      400 {object} models.ErrorResponse
// @Router       /admin/secretaries [post]
func (ctl *AdminController) CreateSecretary(c *fiber.Ctx) error {
	var req admins.CreateSecretaryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	user, err := ctl.admins.CreateSecretary(c.Context(), req)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

type profileImageRequest struct {
	URL string `json:"url"`
}

// UpdateProfileImage godoc
// @Summary      Update the signed-in user's avatar
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        image  body  controllers.profileImageRequest  true  "Image URL"
// @Success      200 {object} map[string]string
// @Failure      400 {object} models.ErrorResponse
// @Router       /admin/profile-image [put]
func (ctl *AdminController) UpdateProfileImage(c *fiber.Ctx) error {
	var req profileImageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.admins.UpdateProfileImage(c.Context(), middleware.PerformerID(c), req.URL); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "profile image updated"})
}

// LevelDistribution godoc
// @Summary      Students per level
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} admins.Slice
// @Router       /admin/distributions/level [get]
func (ctl *AdminController) LevelDistribution(c *fiber.Ctx) error {
	slices, err := ctl.admins.LevelDistribution(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(slices)
}

// HallDistribution godoc
// @Summary      Students per hall with today's presence
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} admins.HallStat
// @Router       /admin/distributions/hall [get]
func (ctl *AdminController) HallDistribution(c *fiber.Ctx) error {
	slices, err := ctl.admins.HallDistribution(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(slices)
}

// GenderDistribution godoc
// @Summary      Students per gender
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} admins.Slice
// @Router       /admin/distributions/gender [get]
func (ctl *AdminController) GenderDistribution(c *fiber.Ctx) error {
	slices, err := ctl.admins.GenderDistribution(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(slices)
}

// Insights godoc
// @Summary      Dashboard overview
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} admins.Insights
// @Router       /admin/insights [get]
func (ctl *AdminController) Insights(c *fiber.Ctx) error {
	ins, err := ctl.admins.GetInsights(c.Context())
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(ins)
}

// RecentActions godoc
// @Summary      List recent undoable actions
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query  int  false  "Max entries (default 20)"
// @Success      200 {array} models.ActionLog
// @Router       /admin/actions [get]
func (ctl *AdminController) RecentActions(c *fiber.Ctx) error {
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
	entries, err := ctl.actions.Recent(c.Context(), limit)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(entries)
}
