package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/services/capacity"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidActivityID = errors.New("invalid activity id")
	ErrInvalidDate       = errors.New("invalid date format")
	ErrInvalidStatus     = errors.New("invalid status value, must be one of: pending, confirmed, cancelled")
)

// InsufficientCapacityError rejects an admission and carries the remaining
// spots so the client can render "only N spots left".
type InsufficientCapacityError struct {
	RemainingSpots int
	Details        string
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough capacity for this booking: %s", e.Details)
}

// Dispatcher receives the fire-and-forget side effects of an admitted
// booking (WhatsApp notification, CRM sync). Implementations must never
// block admission or propagate failures back into it.
type Dispatcher interface {
	BookingCreated(booking models.Booking, activityTitle string)
	NotifyBooking(booking models.Booking, activityTitle string)
	SyncBookingCRM(booking models.Booking, activityTitle string)
}

// slotLock hands out one mutex per (activity, day) slot so the capacity
// read and the booking insert happen atomically for that slot. Entries are
// never evicted; the key space is bounded by activities × booked days.
type slotLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *slotLock) lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Service is the booking admission entry point plus the admin CRUD around it.
type Service struct {
	bookings   repositories.BookingRepository
	activities repositories.ActivityRepository
	capacity   *capacity.Service
	dispatcher Dispatcher
	slots      slotLock
}

func NewService(bookings repositories.BookingRepository, activities repositories.ActivityRepository, capacitySvc *capacity.Service, dispatcher Dispatcher) *Service {
	return &Service{
		bookings:   bookings,
		activities: activities,
		capacity:   capacitySvc,
		dispatcher: dispatcher,
		slots:      slotLock{locks: make(map[string]*sync.Mutex)},
	}
}

// CreateBooking admits a reservation: capacity check, then persist as
// pending, then hand the side effects to the dispatcher. The slot lock
// serializes check-and-insert per (activity, day) so two concurrent
// requests cannot both squeeze into the last spots.
func (s *Service) CreateBooking(ctx context.Context, req *models.BookingRequest) (*models.Booking, error) {
	activityID, err := primitive.ObjectIDFromHex(req.ActivityID)
	if err != nil {
		return nil, ErrInvalidActivityID
	}

	day, err := utils.NormalizeDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	unlock := s.slots.lock(activityID.Hex() + "@" + day)
	defer unlock()

	check, err := s.capacity.CheckActivityCapacity(ctx, activityID, day, req.People)
	if err != nil {
		return nil, err
	}
	if !check.HasCapacity {
		return nil, &InsufficientCapacityError{
			RemainingSpots: check.RemainingSpots,
			Details:        check.Message,
		}
	}

	booking := &models.Booking{
		Name:       req.Name,
		Phone:      req.Phone,
		ActivityID: activityID,
		Date:       day,
		People:     req.People,
		Notes:      req.Notes,
		Status:     models.StatusPending,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.BookingCreated(*booking, s.activityTitle(ctx, activityID))
	}

	return booking, nil
}

func (s *Service) activityTitle(ctx context.Context, activityID primitive.ObjectID) string {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return activityID.Hex()
	}
	return activity.Title
}

func (s *Service) GetAllBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.GetAll(ctx)
}

func (s *Service) GetBookingsPage(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	page, total, err := s.bookings.GetPage(ctx, params)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(page, total, params), nil
}

func (s *Service) GetBookingByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// UpdateBooking applies an admin edit. It deliberately bypasses the
// capacity check: admins may overbook by hand, and the checker copes with
// the negative remainder afterwards.
func (s *Service) UpdateBooking(ctx context.Context, id primitive.ObjectID, req *models.BookingRequest) (*models.Booking, error) {
	existing, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	activityID, err := primitive.ObjectIDFromHex(req.ActivityID)
	if err != nil {
		return nil, ErrInvalidActivityID
	}
	day, err := utils.NormalizeDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	existing.Name = req.Name
	existing.Phone = req.Phone
	existing.ActivityID = activityID
	existing.Date = day
	existing.People = req.People
	existing.Notes = req.Notes

	if err := s.bookings.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// UpdateBookingStatus moves a booking between pending/confirmed/cancelled.
// No capacity re-check happens here.
func (s *Service) UpdateBookingStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.bookings.UpdateStatus(ctx, id, status)
}

func (s *Service) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	return s.bookings.Delete(ctx, id)
}

// ResendWhatsApp re-triggers the WhatsApp notification for an existing
// booking. Like the original send it is fire-and-forget.
func (s *Service) ResendWhatsApp(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		s.dispatcher.NotifyBooking(*booking, s.activityTitle(ctx, booking.ActivityID))
	}
	return booking, nil
}

// SyncCRM re-triggers the CRM sync for an existing booking.
func (s *Service) SyncCRM(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.dispatcher != nil {
		s.dispatcher.SyncBookingCRM(*booking, s.activityTitle(ctx, booking.ActivityID))
	}
	return booking, nil
}
