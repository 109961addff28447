package controllers

import (
	"errors"
	"strconv"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/services/bookings"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingController struct {
	bookings *bookings.Service
	audits   *audits.Service
}

func NewBookingController(bookingSvc *bookings.Service, auditSvc *audits.Service) *BookingController {
	return &BookingController{bookings: bookingSvc, audits: auditSvc}
}

// CreateBooking godoc
// @Summary      Submit a booking
// @Description  Admits the booking if the activity has capacity left on the requested date
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        body body models.BookingRequest true "Booking payload"
// @Success      201  {object}  models.Booking
// @Failure      400  {object}  models.CapacityErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /bookings [post]
func (bc *BookingController) CreateBooking(c *fiber.Ctx) error {
	var req models.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrors(err),
		})
	}

	booking, err := bc.bookings.CreateBooking(c.Context(), &req)
	if err != nil {
		var capErr *bookings.InsufficientCapacityError
		switch {
		case errors.As(err, &capErr):
			return c.Status(fiber.StatusBadRequest).JSON(models.CapacityErrorResponse{
				Message:        "Not enough capacity for this booking",
				Details:        capErr.Details,
				RemainingSpots: capErr.RemainingSpots,
			})
		case errors.Is(err, bookings.ErrInvalidActivityID), errors.Is(err, bookings.ErrInvalidDate):
			return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
		default:
			return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to create booking")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(booking)
}

// GetAllBookings godoc
// @Summary      List bookings with pagination and search
// @Tags         bookings
// @Produce      json
// @Param        page   query  int     false  "Page number" default(1)
// @Param        limit  query  int     false  "Items per page" default(10)
// @Param        search query  string  false  "Search by name or phone"
// @Param        sortBy query  string  false  "Field to sort by" default(createdAt)
// @Param        order  query  string  false  "Sort order (asc or desc)" default(desc)
// @Success      200  {object}  models.PaginatedResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/bookings [get]
func (bc *BookingController) GetAllBookings(c *fiber.Ctx) error {
	params := models.DefaultPagination()
	params.Page, _ = strconv.Atoi(c.Query("page", strconv.Itoa(params.Page)))
	params.Limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(params.Limit)))
	params.Search = c.Query("search", params.Search)
	params.SortBy = c.Query("sortBy", params.SortBy)
	params.Order = c.Query("order", params.Order)

	page, err := bc.bookings.GetBookingsPage(c.Context(), params)
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch bookings")
	}
	return c.JSON(page)
}

// GetBookingByID godoc
// @Summary      Get one booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.Booking
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/bookings/{id} [get]
func (bc *BookingController) GetBookingByID(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	booking, err := bc.bookings.GetBookingByID(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch booking")
	}
	return c.JSON(booking)
}

// UpdateBooking godoc
// @Summary      Edit a booking
// @Description  Admin edit; capacity is not re-checked here
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id   path      string                 true  "Booking ID"
// @Param        body body      models.BookingRequest  true  "Booking payload"
// @Success      200  {object}  models.Booking
// @Failure      400  {object}  models.ValidationErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/bookings/{id} [put]
func (bc *BookingController) UpdateBooking(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	var req models.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Message: "Validation failed",
			Errors:  validationErrors(err),
		})
	}

	booking, err := bc.bookings.UpdateBooking(c.Context(), id, &req)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
	case errors.Is(err, bookings.ErrInvalidActivityID), errors.Is(err, bookings.ErrInvalidDate):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case err != nil:
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to update booking")
	}

	username, _ := c.Locals("username").(string)
	bc.audits.Record(c.Context(), username, models.AuditUpdate, "booking", id.Hex(), map[string]any{
		"name": booking.Name,
		"date": booking.Date,
	})
	return c.JSON(booking)
}

// UpdateBookingStatus godoc
// @Summary      Change a booking's status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        id   path      string                        true  "Booking ID"
// @Param        body body      models.BookingStatusRequest   true  "New status"
// @Success      200  {object}  models.Booking
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id}/status [patch]
func (bc *BookingController) UpdateBookingStatus(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	var req models.BookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid input: "+err.Error())
	}

	booking, err := bc.bookings.UpdateBookingStatus(c.Context(), id, req.Status)
	switch {
	case errors.Is(err, bookings.ErrInvalidStatus):
		return utils.HandleError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, repositories.ErrNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
	case err != nil:
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to update booking status")
	}

	username, _ := c.Locals("username").(string)
	bc.audits.Record(c.Context(), username, models.AuditUpdate, "booking", id.Hex(), map[string]any{
		"status": req.Status,
	})
	return c.JSON(booking)
}

// SyncCRM godoc
// @Summary      Re-run the CRM sync for a booking
// @Description  Queues a fresh CRM sync; the result lands in the booking's crmReference
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id}/sync-crm [post]
func (bc *BookingController) SyncCRM(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	booking, err := bc.bookings.SyncCRM(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to trigger CRM sync")
	}
	return c.JSON(models.SuccessResponse{Message: "CRM sync triggered", Data: booking})
}

// ResendWhatsApp godoc
// @Summary      Resend the WhatsApp notification for a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /bookings/{id}/resend-whatsapp [post]
func (bc *BookingController) ResendWhatsApp(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	booking, err := bc.bookings.ResendWhatsApp(c.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
	}
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to resend notification")
	}
	return c.JSON(models.SuccessResponse{Message: "WhatsApp notification resent", Data: booking})
}

// DeleteBooking godoc
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/bookings/{id} [delete]
func (bc *BookingController) DeleteBooking(c *fiber.Ctx) error {
	id, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return utils.HandleError(c, fiber.StatusBadRequest, "Invalid booking ID")
	}

	if err := bc.bookings.DeleteBooking(c.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.HandleError(c, fiber.StatusNotFound, "Booking not found")
		}
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to delete booking")
	}

	username, _ := c.Locals("username").(string)
	bc.audits.Record(c.Context(), username, models.AuditDelete, "booking", id.Hex(), nil)
	return c.JSON(models.SuccessResponse{Message: "Booking deleted successfully"})
}
