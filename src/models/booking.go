package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Booking statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Booking - customer reservation for an activity on a calendar day.
// Date is always stored day-truncated as YYYY-MM-DD; the repository boundary
// normalizes whatever the client sent so that one canonical shape exists
// (no fullName/numberOfPeople aliases like the legacy records had).
type Booking struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name" example:"Fatima Zahra"`
	Phone        string             `json:"phone" bson:"phone" example:"+212600000000"`
	ActivityID   primitive.ObjectID `json:"activityId" bson:"activityId"`
	Date         string             `json:"date" bson:"date" example:"2025-06-01"`
	People       int                `json:"people" bson:"people" example:"3"`
	Notes        *string            `json:"notes,omitempty" bson:"notes,omitempty"`
	Status       string             `json:"status" bson:"status" example:"pending"`
	CRMReference *string            `json:"crmReference,omitempty" bson:"crmReference,omitempty"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
}

// BookingRequest is the public booking form payload.
type BookingRequest struct {
	Name       string  `json:"name" validate:"required,min=3"`
	Phone      string  `json:"phone" validate:"required,min=7"`
	ActivityID string  `json:"activityId" validate:"required"`
	Date       string  `json:"date" validate:"required"`
	People     int     `json:"people" validate:"required,gte=1"`
	Notes      *string `json:"notes,omitempty"`
}

// BookingStatusRequest updates only the status of a booking.
type BookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// ValidStatus reports whether s is one of the three booking statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCancelled
}
