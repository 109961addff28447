package repositories

import (
	"context"
	"time"

	"github.com/hamzaRio/MarrakechTours/src/models"
	"github.com/hamzaRio/MarrakechTours/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepository stores bookings in the bookings collection.
type MongoBookingRepository struct {
	col *mongo.Collection
}

func NewMongoBookingRepository(col *mongo.Collection) *MongoBookingRepository {
	return &MongoBookingRepository{col: col}
}

func (r *MongoBookingRepository) GetAll(ctx context.Context) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *MongoBookingRepository) GetPage(ctx context.Context, params models.PaginationParams) ([]models.Booking, int64, error) {
	filter := bson.M{}
	if params.Search != "" {
		filter = bson.M{"$or": bson.A{
			bson.M{"name": bson.M{"$regex": params.Search, "$options": "i"}},
			bson.M{"phone": bson.M{"$regex": params.Search, "$options": "i"}},
		}}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	sort := bson.M{}
	for field, order := range params.GetSortOrder() {
		sort[field] = order
	}
	opts := options.Find().
		SetSort(sort).
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit))

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *MongoBookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *MongoBookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	booking.Date = utils.TruncateDay(booking.Date)
	booking.CreatedAt = time.Now()

	_, err := r.col.InsertOne(ctx, booking)
	return err
}

func (r *MongoBookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	booking.Date = utils.TruncateDay(booking.Date)

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) (*models.Booking, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking models.Booking
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": status}},
		opts,
	).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *MongoBookingRepository) SetCRMReference(ctx context.Context, id primitive.ObjectID, ref string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"crmReference": ref}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoBookingRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SumPeopleForDate aggregates total party size for one activity on one day.
// The prefix match keeps legacy records that carry a time component inside
// their calendar day.
// TODO: confirm with the product owner whether cancelled bookings should be
// excluded here; the sum currently counts them.
func (r *MongoBookingRepository) SumPeopleForDate(ctx context.Context, activityID primitive.ObjectID, date string) (int, error) {
	day := utils.TruncateDay(date)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "activityId", Value: activityID},
			{Key: "date", Value: bson.D{{Key: "$regex", Value: "^" + day}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$people"}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var result []struct {
		Total int `bson:"total"`
	}
	if err := cursor.All(ctx, &result); err != nil {
		return 0, err
	}
	if len(result) == 0 {
		return 0, nil
	}
	return result[0].Total, nil
}
