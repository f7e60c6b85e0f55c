package model

import "time"

// Session is a bearer login session. The ID doubles as the token.
type Session struct {
	ID        int64     `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	ExpiresAt time.Time `bson:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}
