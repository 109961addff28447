package controllers

import (
	"github.com/hamzaRio/MarrakechTours/src/database"
	"github.com/hamzaRio/MarrakechTours/src/services/crm"
	"github.com/hamzaRio/MarrakechTours/src/services/notifications"

	"github.com/gofiber/fiber/v2"
)

// StatusController exposes the dashboard's operational badges: CRM
// connection, notification counters and storage mode.
type StatusController struct {
	tracker *crm.StatusTracker
	stats   *notifications.Stats
}

func NewStatusController(tracker *crm.StatusTracker, stats *notifications.Stats) *StatusController {
	return &StatusController{tracker: tracker, stats: stats}
}

// GetCRMStatus godoc
// @Summary      CRM connection status
// @Tags         status
// @Produce      json
// @Success      200  {object}  crm.Status
// @Router       /crm/status [get]
func (sc *StatusController) GetCRMStatus(c *fiber.Ctx) error {
	return c.JSON(sc.tracker.GetStatus())
}

// TestCRMConnection godoc
// @Summary      Test the CRM credentials
// @Tags         status
// @Produce      json
// @Success      200  {object}  crm.TestResult
// @Security     BearerAuth
// @Router       /crm/test [post]
func (sc *StatusController) TestCRMConnection(c *fiber.Ctx) error {
	return c.JSON(crm.TestConnection())
}

// GetNotificationStats godoc
// @Summary      WhatsApp notification counters
// @Tags         status
// @Produce      json
// @Success      200  {object}  notifications.StatsSnapshot
// @Security     BearerAuth
// @Router       /notifications/stats [get]
func (sc *StatusController) GetNotificationStats(c *fiber.Ctx) error {
	return c.JSON(sc.stats.Snapshot())
}

// GetMongoStatus godoc
// @Summary      Storage backend status
// @Description  Reports whether MongoDB is connected or the in-memory fallback is active
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /mongo/status [get]
func (sc *StatusController) GetMongoStatus(c *fiber.Ctx) error {
	connected := database.IsMongoConnected()
	storage := "mongodb"
	if !connected {
		storage = "memory"
	}
	return c.JSON(fiber.Map{
		"connected": connected,
		"storage":   storage,
	})
}
