package capacity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service answers "can a party of N join this activity on this day?".
// Results are data, never errors: a missing activity or a full day comes
// back as HasCapacity=false with a message, and only storage failures
// surface as errors.
type Service struct {
	activities repositories.ActivityRepository
	bookings   repositories.BookingRepository
}

func NewService(activities repositories.ActivityRepository, bookings repositories.BookingRepository) *Service {
	return &Service{activities: activities, bookings: bookings}
}

// CheckActivityCapacity sums the day's bookings for the activity and
// compares the remainder against the requested party size. The boundary is
// inclusive: a request exactly matching the remaining spots is admitted.
func (s *Service) CheckActivityCapacity(ctx context.Context, activityID primitive.ObjectID, date string, requestedPeople int) (*models.CapacityResult, error) {
	day, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if errors.Is(err, repositories.ErrNotFound) {
		return &models.CapacityResult{
			HasCapacity: false,
			Message:     "Activity not found",
		}, nil
	}
	if err != nil {
		return nil, err
	}

	maxGroupSize := activity.GroupLimit()
	if maxGroupSize == 0 {
		// No configured cap means unlimited admission.
		return &models.CapacityResult{
			HasCapacity:  true,
			MaxGroupSize: 0,
			Message:      "No capacity limit set for this activity",
		}, nil
	}

	bookedPeople, err := s.bookings.SumPeopleForDate(ctx, activityID, day)
	if err != nil {
		return nil, err
	}

	// remainingSpots can go negative if admins overbooked by hand; a
	// negative remainder rejects every request of size >= 1.
	remainingSpots := maxGroupSize - bookedPeople

	if remainingSpots >= requestedPeople {
		return &models.CapacityResult{
			HasCapacity:    true,
			RemainingSpots: remainingSpots,
			MaxGroupSize:   maxGroupSize,
			Message:        fmt.Sprintf("Sufficient capacity available (%d spots remaining)", remainingSpots),
		}, nil
	}

	return &models.CapacityResult{
		HasCapacity:    false,
		RemainingSpots: remainingSpots,
		MaxGroupSize:   maxGroupSize,
		Message:        fmt.Sprintf("Insufficient capacity (only %d spots remaining)", remainingSpots),
	}, nil
}

// RemainingCapacity returns the spots left for one activity on one day,
// nil when the activity has no limit.
func (s *Service) RemainingCapacity(ctx context.Context, activityID primitive.ObjectID, date string) (*int, error) {
	result, err := s.CheckActivityCapacity(ctx, activityID, date, 1)
	if err != nil {
		return nil, err
	}
	if result.MaxGroupSize == 0 {
		return nil, nil
	}
	remaining := result.RemainingSpots
	return &remaining, nil
}

// CapacityForActivity is the single-activity capacity endpoint shape.
func (s *Service) CapacityForActivity(ctx context.Context, activityID primitive.ObjectID, date string) (*models.ActivityCapacity, error) {
	result, err := s.CheckActivityCapacity(ctx, activityID, date, 1)
	if err != nil {
		return nil, err
	}
	day, _ := utils.NormalizeDate(date)
	return &models.ActivityCapacity{
		ActivityID:     activityID.Hex(),
		Date:           day,
		HasCapacity:    result.HasCapacity,
		RemainingSpots: result.RemainingSpots,
		MaxGroupSize:   result.MaxGroupSize,
	}, nil
}

// CapacityForDate checks a set of activities on one day, one result per id.
func (s *Service) CapacityForDate(ctx context.Context, activityIDs []primitive.ObjectID, date string) ([]models.ActivityCapacity, error) {
	results := make([]models.ActivityCapacity, 0, len(activityIDs))
	for _, id := range activityIDs {
		res, err := s.CapacityForActivity(ctx, id, date)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return results, nil
}

// AvailabilityForDate derives a calendar status for every activity on a day.
func (s *Service) AvailabilityForDate(ctx context.Context, date string) ([]models.ActivityAvailability, error) {
	day, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	activities, err := s.activities.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.ActivityAvailability, 0, len(activities))
	for _, activity := range activities {
		entry, err := s.availabilityEntry(ctx, &activity, day)
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	return out, nil
}

// AvailabilityForActivity derives one activity's status for every day of a
// month given as YYYY-MM.
func (s *Service) AvailabilityForActivity(ctx context.Context, activityID primitive.ObjectID, monthYear string) ([]models.ActivityAvailability, error) {
	month, err := time.Parse("2006-01", monthYear)
	if err != nil {
		return nil, fmt.Errorf("invalid month format: %q", monthYear)
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	out := []models.ActivityAvailability{}
	for d := month; d.Month() == month.Month(); d = d.AddDate(0, 0, 1) {
		entry, err := s.availabilityEntry(ctx, activity, d.Format(utils.DayFormat))
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	return out, nil
}

func (s *Service) availabilityEntry(ctx context.Context, activity *models.Activity, day string) (*models.ActivityAvailability, error) {
	entry := models.ActivityAvailability{
		ActivityID: activity.ID.Hex(),
		Date:       day,
		Status:     models.AvailabilityAvailable,
	}

	maxGroupSize := activity.GroupLimit()
	if maxGroupSize == 0 {
		return &entry, nil
	}

	booked, err := s.bookings.SumPeopleForDate(ctx, activity.ID, day)
	if err != nil {
		return nil, err
	}

	remaining := maxGroupSize - booked
	entry.SpotsRemaining = &remaining
	entry.Status = availabilityStatus(maxGroupSize, remaining)
	return &entry, nil
}

// availabilityStatus maps remaining capacity to the calendar badge:
// sold out below one spot, "limited" at a quarter of the cap or less.
func availabilityStatus(maxGroupSize, remaining int) string {
	switch {
	case remaining <= 0:
		return models.AvailabilityUnavailable
	case remaining*4 <= maxGroupSize:
		return models.AvailabilityLimited
	default:
		return models.AvailabilityAvailable
	}
}
