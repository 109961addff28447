package routes

import (
	"github.com/gofiber/fiber/v2"
)

// capacityRoutes mounts the public capacity and availability lookups the
// booking form polls before submitting.
func capacityRoutes(api fiber.Router, c *Controllers) {
	capacityGroup := api.Group("/capacity")
	capacityGroup.Get("/activity/:activityId/:date", c.Capacity.GetActivityCapacity)
	capacityGroup.Get("/date/:date", c.Capacity.GetDateCapacity)

	availability := api.Group("/availability")
	availability.Get("/date/:date", c.Capacity.GetDateAvailability)
	availability.Get("/activity/:activityId/:month", c.Capacity.GetActivityAvailability)
}
