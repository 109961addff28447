package models

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CapacityErrorResponse is the 400 body when a booking exceeds remaining
// capacity, so the client can render "only N spots left".
type CapacityErrorResponse struct {
	Message        string `json:"message"`
	Details        string `json:"details"`
	RemainingSpots int    `json:"remainingSpots"`
}

// ValidationErrorResponse carries field-level validation failures.
type ValidationErrorResponse struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// SuccessResponse is the generic success envelope used by Swagger.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}
