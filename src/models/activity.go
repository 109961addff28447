package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	PriceFixed     = "fixed"
	PricePerPerson = "per_person"
)

// Activity is a bookable tour offered by the agency.
type Activity struct {
	ID                     primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title                  string             `json:"title" bson:"title" example:"Agafay Combo"`
	Description            string             `json:"description" bson:"description" example:"Camel ride, quad biking and Berber dinner in the Agafay desert"`
	Price                  int                `json:"price" bson:"price" example:"450"`
	Image                  string             `json:"image" bson:"image" example:"/attached_assets/agafaypack.jpeg"`
	Featured               bool               `json:"featured" bson:"featured"`
	Available              bool               `json:"available" bson:"available"`
	DurationHours          *int               `json:"durationHours,omitempty" bson:"durationHours,omitempty" example:"6"`
	IncludesFood           bool               `json:"includesFood" bson:"includesFood"`
	IncludesTransportation bool               `json:"includesTransportation" bson:"includesTransportation"`
	MaxGroupSize           *int               `json:"maxGroupSize,omitempty" bson:"maxGroupSize,omitempty" example:"15"`
	PriceType              string             `json:"priceType" bson:"priceType" example:"per_person"`
	CreatedBy              string             `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt              time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt              time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// GroupLimit returns the configured cap, 0 meaning unlimited.
func (a *Activity) GroupLimit() int {
	if a.MaxGroupSize == nil {
		return 0
	}
	return *a.MaxGroupSize
}

// ActivityRequest is the payload for creating or updating an activity.
type ActivityRequest struct {
	Title                  string `json:"title" validate:"required,min=3"`
	Description            string `json:"description" validate:"required,min=10"`
	Price                  int    `json:"price" validate:"required,gt=0"`
	Image                  string `json:"image" validate:"required"`
	Featured               *bool  `json:"featured,omitempty"`
	Available              *bool  `json:"available,omitempty"`
	DurationHours          *int   `json:"durationHours,omitempty" validate:"omitempty,gt=0"`
	IncludesFood           *bool  `json:"includesFood,omitempty"`
	IncludesTransportation *bool  `json:"includesTransportation,omitempty"`
	MaxGroupSize           *int   `json:"maxGroupSize,omitempty" validate:"omitempty,gt=0"`
	PriceType              string `json:"priceType,omitempty" validate:"omitempty,oneof=fixed per_person"`
}
