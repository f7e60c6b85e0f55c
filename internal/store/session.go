package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"tracker.app/api-server/internal/model"
)

type sessionStore struct {
	coll *mongo.Collection
}

func newSessionStore(coll *mongo.Collection) SessionStore {
	return &sessionStore{coll: coll}
}

func (s *sessionStore) GetValid(ctx context.Context, id int64) (*model.Session, error) {
	var session model.Session
	err := s.coll.FindOne(ctx, bson.M{
		"_id":        id,
		"expires_at": bson.M{"$gt": time.Now().UTC()},
	}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (s *sessionStore) Create(ctx context.Context, session *model.Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	_, err := s.coll.InsertOne(ctx, session)
	return err
}

func (s *sessionStore) Delete(ctx context.Context, id int64) error {
	_, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *sessionStore) DeleteExpired(ctx context.Context) error {
	_, err := s.coll.DeleteMany(ctx, bson.M{"expires_at": bson.M{"$lte": time.Now().UTC()}})
	return err
}
