// Package database owns the MongoDB connection and the index guarantees the
// rest of the backend relies on.
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect dials Mongo and pings it before handing back the database handle.
func Connect(uri, dbName string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	log.Println("✅ Connected to MongoDB:", dbName)
	return client.Database(dbName), nil
}

// EnsureIndexes creates the indexes the services assume exist. The unique
// partial index on member attendance is load-bearing: it is what turns a
// concurrent double-mark into a duplicate-key error instead of two rows.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("attendances").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "studentId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"type": "member"}),
	})
	if err != nil {
		return fmt.Errorf("attendance unique index: %w", err)
	}

	_, err = db.Collection("attendances").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}, {Key: "type", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("attendance slot index: %w", err)
	}

	_, err = db.Collection("students").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "code", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return fmt.Errorf("student code index: %w", err)
	}

	_, err = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("user email index: %w", err)
	}

	log.Println("✅ MongoDB indexes ensured")
	return nil
}
