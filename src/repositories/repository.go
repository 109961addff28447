package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// ActivityRepository persists the tour catalog.
type ActivityRepository interface {
	GetAll(ctx context.Context) ([]models.Activity, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error)
	Create(ctx context.Context, activity *models.Activity) error
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// BookingRepository persists customer reservations. SumPeopleForDate is the
// capacity query: total party size over all bookings of one activity on one
// calendar day. Stored dates are day-truncated, and implementations must
// still truncate when matching so records written with a time component
// aggregate with the rest of their day.
type BookingRepository interface {
	GetAll(ctx context.Context) ([]models.Booking, error)
	GetPage(ctx context.Context, params models.PaginationParams) ([]models.Booking, int64, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error)
	SetCRMReference(ctx context.Context, id primitive.ObjectID, ref string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	SumPeopleForDate(ctx context.Context, activityID primitive.ObjectID, date string) (int, error)
}

// AdminRepository persists back-office users.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error
}

// AuditLogRepository persists the admin action trail.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	GetAll(ctx context.Context) ([]models.AuditLog, error)
}

// Set bundles one implementation of every repository.
type Set struct {
	Activities ActivityRepository
	Bookings   BookingRepository
	Admins     AdminRepository
	AuditLogs  AuditLogRepository
}
