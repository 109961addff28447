package activities

import (
	"context"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service covers the catalog CRUD behind the public listing and the admin
// activity manager.
type Service struct {
	activities repositories.ActivityRepository
}

func NewService(activities repositories.ActivityRepository) *Service {
	return &Service{activities: activities}
}

func (s *Service) GetAllActivities(ctx context.Context) ([]models.Activity, error) {
	return s.activities.GetAll(ctx)
}

func (s *Service) GetActivityByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	return s.activities.GetByID(ctx, id)
}

func (s *Service) CreateActivity(ctx context.Context, req *models.ActivityRequest, createdBy string) (*models.Activity, error) {
	activity := &models.Activity{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		// New tours default to featured and bookable, matching the admin UI.
		Featured:     true,
		Available:    true,
		PriceType:    models.PricePerPerson,
		MaxGroupSize: req.MaxGroupSize,
		CreatedBy:    createdBy,
	}
	applyOptional(activity, req)

	if err := s.activities.Create(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) UpdateActivity(ctx context.Context, id primitive.ObjectID, req *models.ActivityRequest) (*models.Activity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	activity.Title = req.Title
	activity.Description = req.Description
	activity.Price = req.Price
	activity.Image = req.Image
	activity.MaxGroupSize = req.MaxGroupSize
	applyOptional(activity, req)

	if err := s.activities.Update(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

func (s *Service) DeleteActivity(ctx context.Context, id primitive.ObjectID) error {
	return s.activities.Delete(ctx, id)
}

func applyOptional(activity *models.Activity, req *models.ActivityRequest) {
	if req.Featured != nil {
		activity.Featured = *req.Featured
	}
	if req.Available != nil {
		activity.Available = *req.Available
	}
	if req.IncludesFood != nil {
		activity.IncludesFood = *req.IncludesFood
	}
	if req.IncludesTransportation != nil {
		activity.IncludesTransportation = *req.IncludesTransportation
	}
	if req.DurationHours != nil {
		activity.DurationHours = req.DurationHours
	}
	if req.PriceType != "" {
		activity.PriceType = req.PriceType
	}
}
