package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LoginToken struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Token          string             `bson:"token"`
	ExpirationTime time.Time          `bson:"expirationTime"`
	UserID         primitive.ObjectID `bson:"userId"`
	Role           string             `bson:"role"`
}
