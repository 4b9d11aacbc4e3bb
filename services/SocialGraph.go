package services

import (
	"context"
	"errors"
	"minitwitter/models"
	"minitwitter/stores"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentityStore is the slice of the identity persistence layer the social
// graph needs.
type IdentityStore interface {
	Get(ctx context.Context, id primitive.ObjectID) (models.User, error)
	AddFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error
	RemoveFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error
	FollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// SocialGraph enforces the follow relationship rules: no self-follows, no
// following staff accounts, at most one edge per ordered pair.
type SocialGraph struct {
	identities IdentityStore
}

func NewSocialGraph(identities IdentityStore) *SocialGraph {
	return &SocialGraph{identities: identities}
}

func (g *SocialGraph) Follow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	followee, err := g.identities.Get(ctx, followeeID)
	if err != nil {
		return err
	}
	if followee.IsStaff {
		return ErrForbiddenTarget
	}
	err = g.identities.AddFollowEdge(ctx, followerID, followeeID)
	if errors.Is(err, stores.ErrEdgeExists) {
		return ErrAlreadyFollowing
	}
	return err
}

func (g *SocialGraph) Unfollow(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	if _, err := g.identities.Get(ctx, followeeID); err != nil {
		return err
	}
	err := g.identities.RemoveFollowEdge(ctx, followerID, followeeID)
	if errors.Is(err, stores.ErrEdgeMissing) {
		return ErrNotFollowing
	}
	return err
}

// FollowingIDs is the read path the feed builder consumes.
func (g *SocialGraph) FollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return g.identities.FollowingIDs(ctx, userID)
}
