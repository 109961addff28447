package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hamzaRio/MarrakechTours/src/controllers"
	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/activities"
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/services/auth"
	"github.com/hamzaRio/MarrakechTours/src/services/bookings"
	"github.com/hamzaRio/MarrakechTours/src/services/capacity"
	"github.com/hamzaRio/MarrakechTours/src/services/crm"
	"github.com/hamzaRio/MarrakechTours/src/services/notifications"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noteDispatcher records which side effect each endpoint triggered.
type noteDispatcher struct {
	mu    sync.Mutex
	kinds []string
}

func (d *noteDispatcher) add(kind string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.kinds = append(d.kinds, kind)
}

func (d *noteDispatcher) BookingCreated(models.Booking, string) { d.add("created") }
func (d *noteDispatcher) NotifyBooking(models.Booking, string)  { d.add("notify") }
func (d *noteDispatcher) SyncBookingCRM(models.Booking, string) { d.add("crm") }

func (d *noteDispatcher) last() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.kinds) == 0 {
		return ""
	}
	return d.kinds[len(d.kinds)-1]
}

// newTestApp wires the full route surface on in-memory repositories and
// returns a seeded booking to poke at.
func newTestApp(t *testing.T) (*fiber.App, *models.Booking, *noteDispatcher) {
	t.Helper()
	ctx := context.Background()

	activityRepo := repositories.NewMemoryActivityRepository()
	bookingRepo := repositories.NewMemoryBookingRepository()
	adminRepo := repositories.NewMemoryAdminRepository()
	auditRepo := repositories.NewMemoryAuditLogRepository()

	max := 10
	activity := &models.Activity{Title: "Agafay Desert Camp", Price: 350, MaxGroupSize: &max, PriceType: models.PricePerPerson}
	require.NoError(t, activityRepo.Create(ctx, activity))

	dispatcher := &noteDispatcher{}
	capacitySvc := capacity.NewService(activityRepo, bookingRepo)
	bookingSvc := bookings.NewService(bookingRepo, activityRepo, capacitySvc, dispatcher)
	auditSvc := audits.NewService(auditRepo)

	booking, err := bookingSvc.CreateBooking(ctx, &models.BookingRequest{
		Name:       "Mehdi Ouazzani",
		Phone:      "+212600112233",
		ActivityID: activity.ID.Hex(),
		Date:       "2026-11-20",
		People:     2,
	})
	require.NoError(t, err)

	app := fiber.New()
	InitRoutes(app, &Controllers{
		Activities: controllers.NewActivityController(activities.NewService(activityRepo), auditSvc),
		Bookings:   controllers.NewBookingController(bookingSvc, auditSvc),
		Capacity:   controllers.NewCapacityController(capacitySvc),
		Auth:       controllers.NewAuthController(auth.NewService(adminRepo), auditSvc),
		Status:     controllers.NewStatusController(crm.NewStatusTracker(), notifications.NewStats()),
		AuditLogs:  controllers.NewAuditLogController(auditSvc),
	})
	return app, booking, dispatcher
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, _, err := utils.GenerateJWT("507f1f77bcf86cd799439011", "dashboard-admin", models.RoleAdmin, false)
	require.NoError(t, err)
	return token
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func TestBookingStatusRoute(t *testing.T) {
	app, booking, _ := newTestApp(t)
	token := adminToken(t)
	body := models.BookingStatusRequest{Status: models.StatusConfirmed}

	t.Run("MountedUnderBookings", func(t *testing.T) {
		resp, raw := doRequest(t, app, fiber.MethodPatch, "/api/bookings/"+booking.ID.Hex()+"/status", token, body)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

		var updated models.Booking
		require.NoError(t, json.Unmarshal(raw, &updated))
		assert.Equal(t, models.StatusConfirmed, updated.Status)
	})

	t.Run("AdminAliasStillAnswers", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodPatch, "/api/admin/bookings/"+booking.ID.Hex()+"/status", token, body)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("RejectsMissingToken", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodPatch, "/api/bookings/"+booking.ID.Hex()+"/status", "", body)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestBookingRetryRoutes(t *testing.T) {
	app, booking, dispatcher := newTestApp(t)
	token := adminToken(t)

	t.Run("SyncCRM", func(t *testing.T) {
		resp, raw := doRequest(t, app, fiber.MethodPost, "/api/bookings/"+booking.ID.Hex()+"/sync-crm", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
		assert.Equal(t, "crm", dispatcher.last())
	})

	t.Run("ResendWhatsApp", func(t *testing.T) {
		resp, raw := doRequest(t, app, fiber.MethodPost, "/api/bookings/"+booking.ID.Hex()+"/resend-whatsapp", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
		assert.Equal(t, "notify", dispatcher.last())
	})

	t.Run("RejectsMissingToken", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodPost, "/api/bookings/"+booking.ID.Hex()+"/sync-crm", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("UnknownBooking", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodPost, "/api/bookings/507f191e810c19729de860ea/resend-whatsapp", token, nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestStatusBadgesArePublic(t *testing.T) {
	app, _, _ := newTestApp(t)

	t.Run("CRMStatus", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodGet, "/api/crm/status", "", nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("MongoStatus", func(t *testing.T) {
		resp, raw := doRequest(t, app, fiber.MethodGet, "/api/mongo/status", "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var status map[string]any
		require.NoError(t, json.Unmarshal(raw, &status))
		assert.Equal(t, "memory", status["storage"])
	})

	t.Run("NotificationStatsStaysGuarded", func(t *testing.T) {
		resp, _ := doRequest(t, app, fiber.MethodGet, "/api/notifications/stats", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
