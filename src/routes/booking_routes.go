package routes

import (
	"github.com/hamzaRio/MarrakechTours/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// bookingRoutes mounts the public booking submission endpoint plus the
// per-booking admin operations that live under the same prefix: status
// changes and manual re-triggers of the WhatsApp / CRM side effects.
func bookingRoutes(api fiber.Router, c *Controllers) {
	bookings := api.Group("/bookings")
	bookings.Post("/", c.Bookings.CreateBooking)

	bookings.Patch("/:id/status", middleware.AuthJWT, c.Bookings.UpdateBookingStatus)
	bookings.Post("/:id/sync-crm", middleware.AuthJWT, c.Bookings.SyncCRM)
	bookings.Post("/:id/resend-whatsapp", middleware.AuthJWT, c.Bookings.ResendWhatsApp)
}
