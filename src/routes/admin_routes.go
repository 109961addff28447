package routes

import (
	"github.com/hamzaRio/MarrakechTours/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// adminRoutes mounts everything behind the dashboard login, plus the two
// public status badges the frontend polls before anyone logs in.
func adminRoutes(api fiber.Router, c *Controllers) {
	admin := api.Group("/admin", middleware.AuthJWT)

	admin.Post("/activities", c.Activities.CreateActivity)
	admin.Put("/activities/:id", c.Activities.UpdateActivity)
	admin.Delete("/activities/:id", c.Activities.DeleteActivity)

	admin.Get("/bookings", c.Bookings.GetAllBookings)
	admin.Get("/bookings/:id", c.Bookings.GetBookingByID)
	admin.Put("/bookings/:id", c.Bookings.UpdateBooking)
	admin.Patch("/bookings/:id/status", c.Bookings.UpdateBookingStatus)
	admin.Delete("/bookings/:id", c.Bookings.DeleteBooking)

	admin.Get("/audit-logs", middleware.RequireSuperadmin, c.AuditLogs.GetAuditLogs)

	// Connection badges are public; they leak nothing beyond up/down.
	api.Get("/crm/status", c.Status.GetCRMStatus)
	api.Get("/mongo/status", c.Status.GetMongoStatus)

	guarded := api.Group("", middleware.AuthJWT)
	guarded.Post("/crm/test", c.Status.TestCRMConnection)
	guarded.Get("/notifications/stats", c.Status.GetNotificationStats)
}
