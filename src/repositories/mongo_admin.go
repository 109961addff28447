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

// MongoAdminRepository stores back-office users in the admins collection.
type MongoAdminRepository struct {
	col *mongo.Collection
}

func NewMongoAdminRepository(col *mongo.Collection) *MongoAdminRepository {
	return &MongoAdminRepository{col: col}
}

func (r *MongoAdminRepository) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *MongoAdminRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	var admin models.Admin
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&admin)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *MongoAdminRepository) Create(ctx context.Context, admin *models.Admin) error {
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	admin.CreatedAt = time.Now()

	_, err := r.col.InsertOne(ctx, admin)
	return err
}

func (r *MongoAdminRepository) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"lastLogin": at}},
	)
	return err
}

// MongoAuditLogRepository stores the admin action trail.
type MongoAuditLogRepository struct {
	col *mongo.Collection
}

func NewMongoAuditLogRepository(col *mongo.Collection) *MongoAuditLogRepository {
	return &MongoAuditLogRepository{col: col}
}

func (r *MongoAuditLogRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID.IsZero() {
		entry.ID = primitive.NewObjectID()
	}
	entry.CreatedAt = time.Now()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}

func (r *MongoAuditLogRepository) GetAll(ctx context.Context) ([]models.AuditLog, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(500)
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	logs := []models.AuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
