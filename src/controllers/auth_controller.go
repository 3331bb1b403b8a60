package controllers

import (
	"Backend-GnaasCMS/src/middleware"
	"Backend-GnaasCMS/src/services/auth"
	"Backend-GnaasCMS/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	auth *auth.Service
}

func NewAuthController(svc *auth.Service) *AuthController {
	return &AuthController{auth: svc}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  controllers.loginRequest  true  "Email and password"
// @Success      200 {object} auth.LoginResult
// @Failure      400 {object} models.ErrorResponse
// @Router       /auth/login [post]
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	result, err := ctl.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(result)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword godoc
// @Summary      Change the signed-in user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        passwords  body  controllers.changePasswordRequest  true  "Current and new password"
// @Success      200 {object} map[string]string
// @Failure      400 {object} models.ErrorResponse
// @Router       /auth/change-password [post]
func (ctl *AuthController) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := ctl.auth.ChangePassword(c.Context(), middleware.PerformerID(c), req.CurrentPassword, req.NewPassword); err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "password changed"})
}

// Me godoc
// @Summary      Get the signed-in user's profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} models.UserSummary
// @Failure      401 {object} models.ErrorResponse
// @Router       /auth/me [get]
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	user, err := ctl.auth.Me(c.Context(), middleware.PerformerID(c))
	if err != nil {
		return utils.Fail(c, err)
	}
	return c.JSON(user)
}
