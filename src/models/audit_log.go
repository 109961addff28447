package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Audit actions
const (
	AuditCreate = "CREATE"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
	AuditLogin  = "LOGIN"
)

// AuditLog records an admin action against an entity.
type AuditLog struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Username   string             `json:"username" bson:"username"`
	Action     string             `json:"action" bson:"action" example:"UPDATE"`
	EntityType string             `json:"entityType" bson:"entityType" example:"booking"`
	EntityID   string             `json:"entityId" bson:"entityId"`
	Details    map[string]any     `json:"details,omitempty" bson:"details,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
