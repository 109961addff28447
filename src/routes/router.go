package routes

import (
	"github.com/hamzaRio/MarrakechTours/src/controllers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Activities *controllers.ActivityController
	Bookings   *controllers.BookingController
	Capacity   *controllers.CapacityController
	Auth       *controllers.AuthController
	Status     *controllers.StatusController
	AuditLogs  *controllers.AuditLogController
}

// InitRoutes mounts every API group under /api.
func InitRoutes(app *fiber.App, c *Controllers) {
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("✅ API is running...")
	})
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api")

	activityRoutes(api, c)
	bookingRoutes(api, c)
	capacityRoutes(api, c)
	authRoutes(api, c)
	adminRoutes(api, c)
}
