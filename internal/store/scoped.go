package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fields is a sparse update: keys are bson field names, a nil value clears
// the field. Only keys present in the map are touched.
type Fields map[string]interface{}

// scoped wraps a Mongo collection whose documents carry an owner and provides
// single-document operations filtered by (id AND owner). The owner filter is
// applied to writes as well as reads, so a record that changes hands between
// the existence check and the write can never be mutated by the wrong user.
type scoped[T any] struct {
	coll  *mongo.Collection
	owner func(userID string) bson.M
}

func (s scoped[T]) filter(id, userID string) bson.M {
	f := s.owner(userID)
	f["_id"] = id
	return f
}

func (s scoped[T]) insertOne(ctx context.Context, doc *T) error {
	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

// findOne returns (nil, nil) when no document matches the scope.
func (s scoped[T]) findOne(ctx context.Context, id, userID string) (*T, error) {
	var doc T
	err := s.coll.FindOne(ctx, s.filter(id, userID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s scoped[T]) updateOne(ctx context.Context, id, userID string, fields Fields) error {
	set := bson.M{}
	unset := bson.M{}
	for k, v := range fields {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	if len(update) == 0 {
		return nil
	}
	_, err := s.coll.UpdateOne(ctx, s.filter(id, userID), update)
	return err
}

func (s scoped[T]) deleteOne(ctx context.Context, id, userID string) error {
	_, err := s.coll.DeleteOne(ctx, s.filter(id, userID))
	return err
}
