package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories used when MongoDB is unreachable and in tests.
// The legacy server kept the same fallback so the public site never goes
// dark with the database down; bookings accepted here only live until the
// next restart.

// MemoryActivityRepository keeps the catalog in a mutex-guarded map.
type MemoryActivityRepository struct {
	mu         sync.RWMutex
	activities map[primitive.ObjectID]models.Activity
}

func NewMemoryActivityRepository() *MemoryActivityRepository {
	return &MemoryActivityRepository{activities: make(map[primitive.ObjectID]models.Activity)}
}

func (r *MemoryActivityRepository) GetAll(_ context.Context) ([]models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Activity, 0, len(r.activities))
	for _, a := range r.activities {
		all = append(all, a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (r *MemoryActivityRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.activities[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryActivityRepository) Create(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	now := time.Now()
	activity.CreatedAt = now
	activity.UpdatedAt = now
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryActivityRepository) Update(_ context.Context, activity *models.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[activity.ID]; !ok {
		return ErrNotFound
	}
	activity.UpdatedAt = time.Now()
	r.activities[activity.ID] = *activity
	return nil
}

func (r *MemoryActivityRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.activities[id]; !ok {
		return ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

// MemoryBookingRepository keeps bookings in a mutex-guarded map.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[primitive.ObjectID]models.Booking
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{bookings: make(map[primitive.ObjectID]models.Booking)}
}

func (r *MemoryBookingRepository) GetAll(_ context.Context) ([]models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(), nil
}

func (r *MemoryBookingRepository) sorted() []models.Booking {
	all := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all
}

func (r *MemoryBookingRepository) GetPage(_ context.Context, params models.PaginationParams) ([]models.Booking, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := []models.Booking{}
	for _, b := range r.sorted() {
		if params.Search != "" &&
			!strings.Contains(strings.ToLower(b.Name), strings.ToLower(params.Search)) &&
			!strings.Contains(b.Phone, params.Search) {
			continue
		}
		matched = append(matched, b)
	}

	total := int64(len(matched))
	start := int(params.GetSkip())
	if start > len(matched) {
		start = len(matched)
	}
	end := start + params.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (r *MemoryBookingRepository) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.Date = utils.TruncateDay(booking.Date)
	booking.CreatedAt = time.Now()
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepository) Update(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[booking.ID]; !ok {
		return ErrNotFound
	}
	booking.Date = utils.TruncateDay(booking.Date)
	r.bookings[booking.ID] = *booking
	return nil
}

func (r *MemoryBookingRepository) UpdateStatus(_ context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return &b, nil
}

func (r *MemoryBookingRepository) SetCRMReference(_ context.Context, id primitive.ObjectID, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return ErrNotFound
	}
	b.CRMReference = &ref
	r.bookings[id] = b
	return nil
}

func (r *MemoryBookingRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

// SumPeopleForDate truncates stored dates so a record written with a time
// component still counts toward its calendar day.
// TODO: confirm with the product owner whether cancelled bookings should be
// excluded here; the sum currently counts them.
func (r *MemoryBookingRepository) SumPeopleForDate(_ context.Context, activityID primitive.ObjectID, date string) (int, error) {
	day := utils.TruncateDay(date)

	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for _, b := range r.bookings {
		if b.ActivityID == activityID && utils.TruncateDay(b.Date) == day {
			total += b.People
		}
	}
	return total, nil
}

// MemoryAdminRepository keeps back-office users in memory.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[primitive.ObjectID]models.Admin
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[primitive.ObjectID]models.Admin)}
}

func (r *MemoryAdminRepository) GetByUsername(_ context.Context, username string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryAdminRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = time.Now()
	r.admins[admin.ID] = *admin
	return nil
}

func (r *MemoryAdminRepository) UpdateLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.admins[id]
	if !ok {
		return ErrNotFound
	}
	a.LastLogin = &at
	r.admins[id] = a
	return nil
}

// MemoryAuditLogRepository keeps the action trail in memory.
type MemoryAuditLogRepository struct {
	mu   sync.RWMutex
	logs []models.AuditLog
}

func NewMemoryAuditLogRepository() *MemoryAuditLogRepository {
	return &MemoryAuditLogRepository{}
}

func (r *MemoryAuditLogRepository) Create(_ context.Context, entry *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()
	r.logs = append(r.logs, *entry)
	return nil
}

func (r *MemoryAuditLogRepository) GetAll(_ context.Context) ([]models.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.AuditLog, len(r.logs))
	copy(out, r.logs)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// NewMemorySet builds the full in-memory fallback, seeded with the agency's
// standing tours so the public catalog is never empty.
func NewMemorySet() *Set {
	set := &Set{
		Activities: NewMemoryActivityRepository(),
		Bookings:   NewMemoryBookingRepository(),
		Admins:     NewMemoryAdminRepository(),
		AuditLogs:  NewMemoryAuditLogRepository(),
	}
	seedActivities(set.Activities)
	return set
}

func intPtr(v int) *int { return &v }

func seedActivities(repo ActivityRepository) {
	defaults := []models.Activity{
		{
			Title:        "Montgolfière (Hot Air Balloon)",
			Description:  "Sunrise hot air balloon flight over Marrakech and the Atlas Mountains.",
			Price:        1100,
			Image:        "/attached_assets/montgolfiere-marrakech.jpg",
			Featured:     true,
			Available:    false,
			MaxGroupSize: intPtr(8),
			PriceType:    models.PricePerPerson,
		},
		{
			Title:                  "Agafay Combo",
			Description:            "Camel ride, quad biking and Berber dinner under the stars in the Agafay stone desert.",
			Price:                  450,
			Image:                  "/attached_assets/agafaypack.jpeg",
			Featured:               true,
			Available:              true,
			IncludesFood:           true,
			IncludesTransportation: true,
			MaxGroupSize:           intPtr(15),
			PriceType:              models.PricePerPerson,
		},
		{
			Title:                  "Essaouira Day Trip",
			Description:            "Full-day trip to the coastal town of Essaouira, its medina and beaches.",
			Price:                  200,
			Image:                  "/attached_assets/essaouira-day-trip.jpg",
			Featured:               true,
			Available:              true,
			IncludesTransportation: true,
			MaxGroupSize:           intPtr(20),
			PriceType:              models.PricePerPerson,
		},
		{
			Title:                  "Ouzoud Waterfalls Day Trip",
			Description:            "Day trip to the Ouzoud waterfalls with viewpoints and Barbary macaques.",
			Price:                  200,
			Image:                  "/attached_assets/ouzoud-waterfalls.jpg",
			Featured:               true,
			Available:              true,
			IncludesTransportation: true,
			MaxGroupSize:           intPtr(20),
			PriceType:              models.PricePerPerson,
		},
	}

	ctx := context.Background()
	for i := range defaults {
		defaults[i].CreatedBy = "system"
		_ = repo.Create(ctx, &defaults[i])
	}
}
