package controllers

import (
	"errors"
	"strings"

	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/capacity"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CapacityController struct {
	capacity *capacity.Service
}

func NewCapacityController(capacitySvc *capacity.Service) *CapacityController {
	return &CapacityController{capacity: capacitySvc}
}

// GetActivityCapacity godoc
// @Summary      Capacity of one tour on one date
// @Tags         capacity
// @Produce      json
// @Param        activityId  path      string  true  "Activity ID"
// @Param        date        path      string  true  "Date (YYYY-MM-DD)"
// @Success      200  {object}  models.ActivityCapacity
// @Failure      400  {object}  models.ErrorResponse
// @Router       /capacity/activity/{activityId}/{date} [get]
func (cc *CapacityController) GetActivityCapacity(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("activityId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	result, err := cc.capacity.CapacityForActivity(c.Context(), activityID, c.Params("date"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}
	return c.JSON(result)
}

// GetDateCapacity godoc
// @Summary      Capacity of several tours on one date
// @Tags         capacity
// @Produce      json
// @Param        date         path   string  true   "Date (YYYY-MM-DD)"
// @Param        activityIds  query  string  false  "Comma-separated activity IDs"
// @Success      200  {array}   models.ActivityCapacity
// @Failure      400  {object}  models.ErrorResponse
// @Router       /capacity/date/{date} [get]
func (cc *CapacityController) GetDateCapacity(c *fiber.Ctx) error {
	ids := []primitive.ObjectID{}
	for _, raw := range strings.Split(c.Query("activityIds"), ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID: "+raw)
		}
		ids = append(ids, id)
	}

	results, err := cc.capacity.CapacityForDate(c.Context(), ids, c.Params("date"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}
	return c.JSON(results)
}

// GetDateAvailability godoc
// @Summary      Availability of every tour on one date
// @Description  Calendar badge per tour: available, limited or unavailable
// @Tags         capacity
// @Produce      json
// @Param        date  path  string  true  "Date (YYYY-MM-DD)"
// @Success      200  {array}   models.ActivityAvailability
// @Failure      400  {object}  models.ErrorResponse
// @Router       /availability/date/{date} [get]
func (cc *CapacityController) GetDateAvailability(c *fiber.Ctx) error {
	results, err := cc.capacity.AvailabilityForDate(c.Context(), c.Params("date"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
	}
	return c.JSON(results)
}

// GetActivityAvailability godoc
// @Summary      Availability of one tour over a month
// @Tags         capacity
// @Produce      json
// @Param        activityId  path  string  true  "Activity ID"
// @Param        month       path  string  true  "Month (YYYY-MM)"
// @Success      200  {array}   models.ActivityAvailability
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /availability/activity/{activityId}/{month} [get]
func (cc *CapacityController) GetActivityAvailability(c *fiber.Ctx) error {
	activityID, err := primitive.ObjectIDFromHex(c.Params("activityId"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid activity ID")
	}

	results, err := cc.capacity.AvailabilityForActivity(c.Context(), activityID, c.Params("month"))
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Activity not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid month format, expected YYYY-MM")
	}
	return c.JSON(results)
}
