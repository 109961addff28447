package repositories

import (
	"context"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoActivityRepository stores activities in the activities collection.
type MongoActivityRepository struct {
	col *mongo.Collection
}

func NewMongoActivityRepository(col *mongo.Collection) *MongoActivityRepository {
	return &MongoActivityRepository{col: col}
}

func (r *MongoActivityRepository) GetAll(ctx context.Context) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	activities := []models.Activity{}
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *MongoActivityRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var activity models.Activity
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *MongoActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if activity.ID.IsZero() {
		activity.ID = primitive.NewObjectID()
	}
	now := time.Now()
	activity.CreatedAt = now
	activity.UpdatedAt = now

	_, err := r.col.InsertOne(ctx, activity)
	return err
}

func (r *MongoActivityRepository) Update(ctx context.Context, activity *models.Activity) error {
	activity.UpdatedAt = time.Now()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": activity.ID}, activity)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoActivityRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
