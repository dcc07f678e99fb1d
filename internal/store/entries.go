package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
)

const entriesCollection = "entries"

// MongoEntries stores journal entries in the "entries" collection. All reads
// and writes are scoped to the owning user.
type MongoEntries struct {
	scoped[models.JournalEntry]
}

func NewMongoEntries(db *mongo.Database) *MongoEntries {
	return &MongoEntries{scoped[models.JournalEntry]{
		coll: db.Collection(entriesCollection),
		owner: func(userID string) bson.M {
			return bson.M{"user_id": userID}
		},
	}}
}

func (s *MongoEntries) Insert(ctx context.Context, entry *models.JournalEntry) error {
	return s.insertOne(ctx, entry)
}

// FindOwned returns (nil, nil) when the entry does not exist or belongs to
// another user.
func (s *MongoEntries) FindOwned(ctx context.Context, id, userID string) (*models.JournalEntry, error) {
	return s.findOne(ctx, id, userID)
}

func (s *MongoEntries) UpdateOwned(ctx context.Context, id, userID string, fields Fields) error {
	return s.updateOne(ctx, id, userID, fields)
}

func (s *MongoEntries) DeleteOwned(ctx context.Context, id, userID string) error {
	return s.deleteOne(ctx, id, userID)
}

// ListOwned returns the caller's entries ordered by entry_date descending.
func (s *MongoEntries) ListOwned(ctx context.Context, userID string, limit, offset int64) ([]models.JournalEntry, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"entry_date": -1})
	findOptions.SetLimit(limit)
	findOptions.SetSkip(offset)

	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := make([]models.JournalEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// CountOwned counts all of the caller's entries, independent of pagination.
func (s *MongoEntries) CountOwned(ctx context.Context, userID string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"user_id": userID})
}
