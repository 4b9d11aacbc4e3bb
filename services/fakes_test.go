package services

import (
	"context"
	"minitwitter/models"
	"minitwitter/stores"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory stand-ins for the mongo stores, honoring the same sentinel
// errors and ordering rules.

type fakeIdentityStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeIdentityStore(users ...*models.User) *fakeIdentityStore {
	s := &fakeIdentityStore{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeIdentityStore) Get(_ context.Context, id primitive.ObjectID) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, stores.ErrNotFound
	}
	return *user, nil
}

func (s *fakeIdentityStore) AddFollowEdge(_ context.Context, followerID, followeeID primitive.ObjectID) error {
	follower, ok := s.users[followerID]
	if !ok {
		return stores.ErrNotFound
	}
	followee, ok := s.users[followeeID]
	if !ok {
		return stores.ErrNotFound
	}
	if containsID(follower.Following, followeeID) {
		return stores.ErrEdgeExists
	}
	follower.Following = append(follower.Following, followeeID)
	followee.Followers = append(followee.Followers, followerID)
	return nil
}

func (s *fakeIdentityStore) RemoveFollowEdge(_ context.Context, followerID, followeeID primitive.ObjectID) error {
	follower, ok := s.users[followerID]
	if !ok {
		return stores.ErrNotFound
	}
	if !containsID(follower.Following, followeeID) {
		return stores.ErrEdgeMissing
	}
	follower.Following = removeID(follower.Following, followeeID)
	if followee, ok := s.users[followeeID]; ok {
		followee.Followers = removeID(followee.Followers, followerID)
	}
	return nil
}

func (s *fakeIdentityStore) FollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Following, nil
}

type fakePostStore struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePostStore(posts ...*models.Post) *fakePostStore {
	s := &fakePostStore{posts: map[primitive.ObjectID]*models.Post{}}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakePostStore) AddLiker(_ context.Context, postID, userID primitive.ObjectID) error {
	post, ok := s.posts[postID]
	if !ok {
		return stores.ErrNotFound
	}
	if containsID(post.LikedBy, userID) {
		return stores.ErrAlreadyLiked
	}
	post.LikedBy = append(post.LikedBy, userID)
	post.LikesCounter++
	return nil
}

func (s *fakePostStore) RemoveLiker(_ context.Context, postID, userID primitive.ObjectID) error {
	post, ok := s.posts[postID]
	if !ok {
		return stores.ErrNotFound
	}
	if !containsID(post.LikedBy, userID) {
		return stores.ErrNotLiked
	}
	post.LikedBy = removeID(post.LikedBy, userID)
	post.LikesCounter--
	return nil
}

func (s *fakePostStore) ListByAuthors(_ context.Context, authorIDs []primitive.ObjectID, page, pageSize int64) ([]models.Post, error) {
	matched := s.byAuthors(authorIDs)
	start := (page - 1) * pageSize
	if start >= int64(len(matched)) {
		return []models.Post{}, nil
	}
	end := start + pageSize
	if end > int64(len(matched)) {
		end = int64(len(matched))
	}
	return matched[start:end], nil
}

func (s *fakePostStore) CountByAuthors(_ context.Context, authorIDs []primitive.ObjectID) (int64, error) {
	return int64(len(s.byAuthors(authorIDs))), nil
}

func (s *fakePostStore) byAuthors(authorIDs []primitive.ObjectID) []models.Post {
	matched := []models.Post{}
	for _, post := range s.posts {
		if containsID(authorIDs, post.AuthorID) {
			matched = append(matched, *post)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID.Hex() > matched[j].ID.Hex()
	})
	return matched
}

func containsID(ids []primitive.ObjectID, id primitive.ObjectID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	kept := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			kept = append(kept, candidate)
		}
	}
	return kept
}
