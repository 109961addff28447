package models

// Availability statuses derived from remaining capacity.
const (
	AvailabilityAvailable   = "available"
	AvailabilityLimited     = "limited"
	AvailabilityUnavailable = "unavailable"
)

// CapacityResult is the outcome of a capacity check. It is data, not an
// error: callers branch on HasCapacity. MaxGroupSize 0 means the activity
// has no configured limit.
type CapacityResult struct {
	HasCapacity    bool   `json:"hasCapacity"`
	RemainingSpots int    `json:"remainingSpots"`
	MaxGroupSize   int    `json:"maxGroupSize"`
	Message        string `json:"message"`
}

// ActivityCapacity is the wire shape of the capacity endpoints.
type ActivityCapacity struct {
	ActivityID     string `json:"activityId"`
	Date           string `json:"date"`
	HasCapacity    bool   `json:"hasCapacity"`
	RemainingSpots int    `json:"remainingSpots"`
	MaxGroupSize   int    `json:"maxGroupSize"`
}

// ActivityAvailability is the calendar view of one activity on one day.
type ActivityAvailability struct {
	ActivityID     string `json:"activityId"`
	Date           string `json:"date"`
	Status         string `json:"status"`
	SpotsRemaining *int   `json:"spotsRemaining,omitempty"`
}
