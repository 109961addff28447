package controllers

import (
	"github.com/hamzaRio/MarrakechTours/src/services/audits"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"github.com/gofiber/fiber/v2"
)

type AuditLogController struct {
	audits *audits.Service
}

func NewAuditLogController(auditSvc *audits.Service) *AuditLogController {
	return &AuditLogController{audits: auditSvc}
}

// GetAuditLogs godoc
// @Summary      Recent admin actions
// @Tags         audit
// @Produce      json
// @Success      200  {array}   models.AuditLog
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /admin/audit-logs [get]
func (alc *AuditLogController) GetAuditLogs(c *fiber.Ctx) error {
	logs, err := alc.audits.GetAuditLogs(c.Context())
	if err != nil {
		return utils.HandleError(c, fiber.StatusInternalServerError, "Failed to fetch audit logs")
	}
	return c.JSON(logs)
}
