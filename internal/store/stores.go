package store

import (
	"go.mongodb.org/mongo-driver/mongo"

	"tracker.app/api-server/core/db"
)

// Stores bundles the per-collection stores backed by one database handle.
type Stores struct {
	Releases   ReleaseStore
	Users      UserStore
	Activities ActivityStore
	Sessions   SessionStore
}

func New(database *mongo.Database) *Stores {
	return &Stores{
		Releases:   newReleaseStore(database.Collection(db.ReleasesCollection)),
		Users:      newUserStore(database.Collection(db.UsersCollection)),
		Activities: newActivityStore(database.Collection(db.ActivitiesCollection)),
		Sessions:   newSessionStore(database.Collection(db.SessionsCollection)),
	}
}
