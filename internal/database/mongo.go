package database

import (
	"context"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoDatabase = "moodlog"

// ConnectMongo connects to MongoDB and returns the handle. The handle is
// threaded explicitly into the stores; there is no package-level singleton.
func ConnectMongo(mongoURI string) (*mongo.Database, error) {
	// Use longer timeout for Atlas connections
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(mongoURI)
	clientOptions.SetServerSelectionTimeout(10 * time.Second)

	log.Printf("Attempting to connect to MongoDB...")
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}

	log.Println("✅ Connected to MongoDB")
	return client.Database(mongoDatabaseName(mongoURI)), nil
}

// mongoDatabaseName extracts the database name from the connection string,
// e.g. mongodb://host/database_name?opts, falling back to the default.
func mongoDatabaseName(mongoURI string) string {
	if mongoURI == "" {
		return defaultMongoDatabase
	}
	parts := strings.Split(mongoURI, "/")
	if len(parts) <= 3 {
		return defaultMongoDatabase
	}
	name := strings.Split(parts[len(parts)-1], "?")[0]
	if name == "" {
		return defaultMongoDatabase
	}
	return name
}

// DisconnectMongo closes the client behind the database handle.
func DisconnectMongo(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.Client().Disconnect(ctx)
}
