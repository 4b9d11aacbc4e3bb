package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID        primitive.ObjectID   `json:"_id" bson:"_id"`
	Username  string               `json:"username" bson:"username" validate:"required"`
	Email     string               `json:"email" bson:"email" validate:"required,email"`
	Password  string               `json:"-" bson:"password"`
	IsStaff   bool                 `json:"is_staff" bson:"is_staff"`
	Following []primitive.ObjectID `json:"following" bson:"following"`
	Followers []primitive.ObjectID `json:"followers" bson:"followers"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}
