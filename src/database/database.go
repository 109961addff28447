package database

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	client     *mongo.Client
	once       sync.Once
	connectErr error

	ActivityCollection *mongo.Collection
	BookingCollection  *mongo.Collection
	AdminCollection    *mongo.Collection
	AuditLogCollection *mongo.Collection
)

const dbName = "marrakechtours"

// ConnectMongoDB connects once and wires up the collections. A connection
// failure is returned, not fatal: the caller falls back to the in-memory
// repositories so the public site keeps serving.
func ConnectMongoDB() error {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Warning: No .env file found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if connectErr != nil {
			return
		}

		if connectErr = client.Ping(ctx, readpref.Primary()); connectErr != nil {
			client = nil
			return
		}

		db := client.Database(dbName)
		ActivityCollection = db.Collection("activities")
		BookingCollection = db.Collection("bookings")
		AdminCollection = db.Collection("admins")
		AuditLogCollection = db.Collection("auditlogs")

		log.Println("✅ MongoDB connected successfully")
	})

	return connectErr
}

// IsMongoConnected reports whether the Mongo client survived startup.
func IsMongoConnected() bool {
	return client != nil
}

// GetCollection fetches a collection from the application database.
func GetCollection(collectionName string) *mongo.Collection {
	if client == nil {
		return nil
	}
	return client.Database(dbName).Collection(collectionName)
}

// Disconnect closes the Mongo client on shutdown.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
