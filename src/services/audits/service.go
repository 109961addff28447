package audits

import (
	"context"
	"log"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
)

// Service records the admin action trail. Recording failures are logged
// and swallowed: an audit hiccup must never fail the admin action itself.
type Service struct {
	logs repositories.AuditLogRepository
}

func NewService(logs repositories.AuditLogRepository) *Service {
	return &Service{logs: logs}
}

// Record writes one audit entry.
func (s *Service) Record(ctx context.Context, username, action, entityType, entityID string, details map[string]any) {
	entry := &models.AuditLog{
		Username:   username,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		log.Println("⚠️ Failed to write audit log:", err)
	}
}

func (s *Service) GetAuditLogs(ctx context.Context) ([]models.AuditLog, error) {
	return s.logs.GetAll(ctx)
}
