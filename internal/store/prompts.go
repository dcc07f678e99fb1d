package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/moodlog-backend/internal/models"
)

const promptsCollection = "prompts"

// MongoPrompts stores journaling prompts in the "prompts" collection.
// Single-document operations are scoped to the owning user; listing also
// matches ownerless (global) prompts.
type MongoPrompts struct {
	scoped[models.Prompt]
}

func NewMongoPrompts(db *mongo.Database) *MongoPrompts {
	return &MongoPrompts{scoped[models.Prompt]{
		coll: db.Collection(promptsCollection),
		owner: func(userID string) bson.M {
			return bson.M{"user_id": userID}
		},
	}}
}

func (s *MongoPrompts) Insert(ctx context.Context, prompt *models.Prompt) error {
	return s.insertOne(ctx, prompt)
}

// FindOwned returns (nil, nil) when the prompt does not exist, belongs to
// another user, or is global. Global prompts are listable but never editable
// through this path.
func (s *MongoPrompts) FindOwned(ctx context.Context, id, userID string) (*models.Prompt, error) {
	return s.findOne(ctx, id, userID)
}

func (s *MongoPrompts) UpdateOwned(ctx context.Context, id, userID string, fields Fields) error {
	return s.updateOne(ctx, id, userID, fields)
}

// ListVisible returns the caller's own prompts plus global ones, ordered by
// created_at descending. Inactive prompts are excluded unless includeInactive.
func (s *MongoPrompts) ListVisible(ctx context.Context, userID string, includeInactive bool) ([]models.Prompt, error) {
	filter := bson.M{
		"$or": []bson.M{
			{"user_id": userID},
			{"user_id": nil},
		},
	}
	if !includeInactive {
		filter["is_active"] = true
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})

	cursor, err := s.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	prompts := make([]models.Prompt, 0)
	if err := cursor.All(ctx, &prompts); err != nil {
		return nil, err
	}
	return prompts, nil
}

// CountSystem counts system-seeded prompts, used to decide whether a fresh
// deployment needs the built-in set.
func (s *MongoPrompts) CountSystem(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.M{"is_system": true})
}
