package controllers

import (
	"errors"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/activities"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ActivityController struct {
	activities *activities.Service
	audits     *audits.Service
}

func NewActivityController(activitySvc *activities.Service, auditSvc *audits.Service) *ActivityController {
	return &ActivityController{activities: activitySvc, audits: auditSvc}
}

// GetAllActivities godoc
// @Summary      List all tours
// @Description  Returns the full tour catalog, including unavailable ones
// @Tags         activities
// @Produce      json
// @Success      200  {array}   models.Activity
// @Failure      500  {object}  models.ErrorResponse
// @Router       /activities [get]
func (ac *ActivityController) GetAllActivities(c *fiber.Ctx) error {
	result, err := ac.activities.GetAllActivities(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch activities")
	}
	return c.JSON(result)
}

// GetActivityByID godoc
// @Summary      Get one tour
// @Tags         activities
// @Produce      json
// @Param        id   path      string  true  "Activity ID"
// @Success      200  {object}  models.Activity
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /activities/{id} [get]
func (ac *ActivityController) GetActivityByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	activity, err := ac.activities.GetActivityByID(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Activity not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch activity")
	}
	return c.JSON(activity)
}

// CreateActivity godoc
// @Summary      Create a tour
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        body body models.ActivityRequest true "Activity payload"
// @Success      201  {object}  models.Activity
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/activities [post]
func (ac *ActivityController) CreateActivity(c *fiber.Ctx) error {
	var req models.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrors(err),
		})
	}

	username, _ := c.Locals("username").(string)
	activity, err := ac.activities.CreateActivity(c.Context(), &req, username)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to create activity")
	}

	ac.audits.Record(c.Context(), username, models.AuditCreate, "activity", activity.ID.Hex(), map[string]any{
		"title": activity.Title,
	})
	return c.Status(fiber.StatusCreated).JSON(activity)
}

// UpdateActivity godoc
// @Summary      Update a tour
// @Tags         activities
// @Accept       json
// @Produce      json
// @Param        id   path      string                  true  "Activity ID"
// @Param        body body      models.ActivityRequest  true  "Activity payload"
// @Success      200  {object}  models.Activity
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/activities/{id} [put]
func (ac *ActivityController) UpdateActivity(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	var req models.ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrors(err),
		})
	}

	activity, err := ac.activities.UpdateActivity(c.Context(), id, &req)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Activity not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to update activity")
	}

	username, _ := c.Locals("username").(string)
	ac.audits.Record(c.Context(), username, models.AuditUpdate, "activity", id.Hex(), map[string]any{
		"title": activity.Title,
	})
	return c.JSON(activity)
}

// DeleteActivity godoc
// @Summary      Delete a tour
// @Tags         activities
// @Produce      json
// @Param        id   path      string  true  "Activity ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/activities/{id} [delete]
func (ac *ActivityController) DeleteActivity(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	if err := ac.activities.DeleteActivity(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, "Activity not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to delete activity")
	}

	username, _ := c.Locals("username").(string)
	ac.audits.Record(c.Context(), username, models.AuditDelete, "activity", id.Hex(), nil)
	return c.JSON(models.SuccessResponse{Message: "Activity deleted successfully"})
}
