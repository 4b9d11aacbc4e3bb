package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxPostLength bounds the text content of a single post.
const MaxPostLength = 280

type Post struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id"`
	AuthorID     primitive.ObjectID   `json:"author_id" bson:"author_id"`
	TextContent  string               `json:"text_content" bson:"text_content"`
	Image        string               `json:"image" bson:"image"`
	LikesCounter int                  `json:"likes_counter" bson:"likes_counter"`
	LikedBy      []primitive.ObjectID `json:"liked_by" bson:"liked_by"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}
