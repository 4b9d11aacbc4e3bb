package services

import (
	"context"
	"errors"
	"minitwitter/models"
	"minitwitter/stores"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostStore is the slice of the post persistence layer used by the
// engagement service and the feed builder.
type PostStore interface {
	AddLiker(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLiker(ctx context.Context, postID, userID primitive.ObjectID) error
	ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page, pageSize int64) ([]models.Post, error)
	CountByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) (int64, error)
}

// Engagement handles likes. Any authenticated user may like any post; the
// store keeps the liker set and counter in step.
type Engagement struct {
	posts PostStore
}

func NewEngagement(posts PostStore) *Engagement {
	return &Engagement{posts: posts}
}

func (e *Engagement) Like(ctx context.Context, userID, postID primitive.ObjectID) error {
	err := e.posts.AddLiker(ctx, postID, userID)
	if errors.Is(err, stores.ErrAlreadyLiked) {
		return ErrAlreadyLiked
	}
	return err
}

func (e *Engagement) Dislike(ctx context.Context, userID, postID primitive.ObjectID) error {
	err := e.posts.RemoveLiker(ctx, postID, userID)
	if errors.Is(err, stores.ErrNotLiked) {
		return ErrNotLiked
	}
	return err
}
