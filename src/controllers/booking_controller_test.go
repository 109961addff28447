package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/services/bookings"
	"github.com/hamzaRio/MarrakechTours/src/services/capacity"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func newBookingApp(t *testing.T) (*fiber.App, primitive.ObjectID) {
	t.Helper()

	activities := repositories.NewMemoryActivityRepository()
	bookingRepo := repositories.NewMemoryBookingRepository()

	activity := &models.Activity{
		Title:        "Ouzoud Waterfalls Day Trip",
		Price:        200,
		MaxGroupSize: intPtr(15),
		PriceType:    models.PricePerPerson,
	}
	require.NoError(t, activities.Create(context.Background(), activity))

	capacitySvc := capacity.NewService(activities, bookingRepo)
	bookingSvc := bookings.NewService(bookingRepo, activities, capacitySvc, nil)
	auditSvc := audits.NewService(repositories.NewMemoryAuditLogRepository())

	controller := NewBookingController(bookingSvc, auditSvc)

	app := fiber.New()
	app.Post("/api/bookings", controller.CreateBooking)
	return app, activity.ID
}

func postBooking(t *testing.T, app *fiber.App, payload map[string]any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateBookingEndpoint(t *testing.T) {
	t.Run("AdmittedBookingReturns201", func(t *testing.T) {
		app, activityID := newBookingApp(t)

		resp := postBooking(t, app, map[string]any{
			"name":       "Amina Benali",
			"phone":      "+212612345678",
			"activityId": activityID.Hex(),
			"date":       "2026-10-01",
			"people":     4,
		})
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

		var booking models.Booking
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&booking))
		assert.Equal(t, models.StatusPending, booking.Status)
		assert.Equal(t, "2026-10-01", booking.Date)
		assert.False(t, booking.ID.IsZero())
	})

	t.Run("OverCapacityReturns400WithRemainingSpots", func(t *testing.T) {
		app, activityID := newBookingApp(t)

		resp := postBooking(t, app, map[string]any{
			"name":       "Amina Benali",
			"phone":      "+212612345678",
			"activityId": activityID.Hex(),
			"date":       "2026-10-01",
			"people":     13,
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)

		resp = postBooking(t, app, map[string]any{
			"name":       "Karim Idrissi",
			"phone":      "+212698765432",
			"activityId": activityID.Hex(),
			"date":       "2026-10-01",
			"people":     3,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var capErr models.CapacityErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&capErr))
		assert.Equal(t, "Not enough capacity for this booking", capErr.Message)
		assert.Equal(t, 2, capErr.RemainingSpots)
		assert.Contains(t, capErr.Details, "only 2 spots remaining")
	})

	t.Run("ValidationFailureListsFields", func(t *testing.T) {
		app, activityID := newBookingApp(t)

		resp := postBooking(t, app, map[string]any{
			"name":       "Al",
			"phone":      "123",
			"activityId": activityID.Hex(),
			"date":       "2026-10-01",
			"people":     0,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var verr models.ValidationErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&verr))
		assert.Equal(t, "Validation failed", verr.Message)
		assert.Contains(t, verr.Errors, "name")
		assert.Contains(t, verr.Errors, "phone")
		assert.Contains(t, verr.Errors, "people")
	})

	t.Run("MalformedActivityIDReturns400", func(t *testing.T) {
		app, _ := newBookingApp(t)

		resp := postBooking(t, app, map[string]any{
			"name":       "Amina Benali",
			"phone":      "+212612345678",
			"activityId": "nope",
			"date":       "2026-10-01",
			"people":     2,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("UnknownActivityRejectedAsNoCapacity", func(t *testing.T) {
		app, _ := newBookingApp(t)

		resp := postBooking(t, app, map[string]any{
			"name":       "Amina Benali",
			"phone":      "+212612345678",
			"activityId": primitive.NewObjectID().Hex(),
			"date":       "2026-10-01",
			"people":     2,
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var capErr models.CapacityErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&capErr))
		assert.Contains(t, capErr.Details, "Activity not found")
	})
}
