package controllers

import (
	"errors"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/services/auth"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	auth   *auth.Service
	audits *audits.Service
}

func NewAuthController(authSvc *auth.Service, auditSvc *audits.Service) *AuthController {
	return &AuthController{auth: authSvc, audits: auditSvc}
}

// Login godoc
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body body models.LoginRequest true "Credentials"
// @Success      200  {object}  models.LoginResponse
// @Failure      401  {object}  models.ErrorResponse
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrors(err),
		})
	}

	resp, err := ac.auth.Login(c.Context(), &req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Incorrect username or password")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Login failed")
	}

	ac.audits.Record(c.Context(), req.Username, models.AuditLogin, "admin", resp.User.ID, nil)
	return c.JSON(resp)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revokes the current token for the rest of its lifetime
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.SuccessResponse
// @Failure      401  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*utils.JWTClaims)
	if !ok {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Missing token")
	}

	if err := ac.auth.Logout(claims); err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Logout failed")
	}
	return c.JSON(models.SuccessResponse{Message: "Logged out successfully"})
}

// Me godoc
// @Summary      Current admin
// @Tags         auth
// @Produce      json
// @Success      200  {object}  models.Admin
// @Failure      401  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /auth/me [get]
func (ac *AuthController) Me(c *fiber.Ctx) error {
	userID, _ := c.Locals("userId").(string)

	admin, err := ac.auth.Me(c.Context(), userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusUnauthorized, "Admin not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch admin")
	}
	return c.JSON(admin)
}
