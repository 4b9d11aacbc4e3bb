package services

import (
	"context"
	"minitwitter/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultPageSize is used when a feed request does not name a page size.
const DefaultPageSize = 10

// Feed builds a viewer's timeline from the live follow set on every read.
// There is no fan-out or precomputed timeline; a follow change is visible on
// the next read.
type Feed struct {
	graph *SocialGraph
	posts PostStore
}

func NewFeed(graph *SocialGraph, posts PostStore) *Feed {
	return &Feed{graph: graph, posts: posts}
}

// BuildFeed returns the viewer's page of posts from followed authors,
// created_at descending with _id as tiebreak. An empty follow set yields an
// empty page, not an error.
func (f *Feed) BuildFeed(ctx context.Context, viewerID primitive.ObjectID, page, pageSize int64) (models.FeedPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	result := models.FeedPage{
		Results:  []models.Post{},
		Page:     page,
		PageSize: pageSize,
	}

	followingIDs, err := f.graph.FollowingIDs(ctx, viewerID)
	if err != nil {
		return models.FeedPage{}, err
	}
	if len(followingIDs) == 0 {
		return result, nil
	}

	count, err := f.posts.CountByAuthors(ctx, followingIDs)
	if err != nil {
		return models.FeedPage{}, err
	}
	posts, err := f.posts.ListByAuthors(ctx, followingIDs, page, pageSize)
	if err != nil {
		return models.FeedPage{}, err
	}

	result.Count = count
	result.Results = posts
	return result, nil
}
