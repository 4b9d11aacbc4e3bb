package stores

import (
	"context"
	"minitwitter/models"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// These run against a live MongoDB replica set (the follow-edge operations
// use transactions). Set MONGO_URI to enable them.
func testDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set, skipping store integration tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	db := client.Database("minitwitter_test")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})

	_, err = db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, store *IdentityStore, username string) models.User {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	user, err := store.Create(ctx, models.User{
		ID:        primitive.NewObjectID(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "irrelevant-hash",
		Following: []primitive.ObjectID{},
		Followers: []primitive.ObjectID{},
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	return user
}

func TestIdentityStoreRejectsDuplicateUsernameAndEmail(t *testing.T) {
	store := NewIdentityStore(testDatabase(t))
	ctx := context.Background()
	seedUser(t, store, "alice")

	_, err := store.Create(ctx, models.User{
		ID:       primitive.NewObjectID(),
		Username: "alice",
		Email:    "other@example.com",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	_, err = store.Create(ctx, models.User{
		ID:       primitive.NewObjectID(),
		Username: "other",
		Email:    "alice@example.com",
	})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestFollowEdgeIsMutualAndUnique(t *testing.T) {
	store := NewIdentityStore(testDatabase(t))
	ctx := context.Background()
	alice := seedUser(t, store, "alice")
	bob := seedUser(t, store, "bob")

	require.NoError(t, store.AddFollowEdge(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, store.AddFollowEdge(ctx, alice.ID, bob.ID), ErrEdgeExists)

	aliceAfter, err := store.Get(ctx, alice.ID)
	require.NoError(t, err)
	bobAfter, err := store.Get(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, aliceAfter.Following)
	assert.Equal(t, []primitive.ObjectID{alice.ID}, bobAfter.Followers)

	require.NoError(t, store.RemoveFollowEdge(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, store.RemoveFollowEdge(ctx, alice.ID, bob.ID), ErrEdgeMissing)

	aliceAfter, err = store.Get(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, aliceAfter.Following)
}

func TestPostRoundTrip(t *testing.T) {
	db := testDatabase(t)
	posts := NewPostStore(db)
	ctx := context.Background()
	authorID := primitive.NewObjectID()

	created, err := posts.Create(ctx, authorID, "hello world", "")
	require.NoError(t, err)

	fetched, err := posts.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", fetched.TextContent)
	assert.Equal(t, authorID, fetched.AuthorID)
	assert.Equal(t, 0, fetched.LikesCounter)
	assert.Empty(t, fetched.LikedBy)
}

func TestLikerSetAndCounterMoveTogether(t *testing.T) {
	posts := NewPostStore(testDatabase(t))
	ctx := context.Background()
	post, err := posts.Create(ctx, primitive.NewObjectID(), "likeable", "")
	require.NoError(t, err)
	userID := primitive.NewObjectID()

	require.NoError(t, posts.AddLiker(ctx, post.ID, userID))
	assert.ErrorIs(t, posts.AddLiker(ctx, post.ID, userID), ErrAlreadyLiked)

	liked, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikesCounter)
	assert.Equal(t, []primitive.ObjectID{userID}, liked.LikedBy)

	require.NoError(t, posts.RemoveLiker(ctx, post.ID, userID))
	assert.ErrorIs(t, posts.RemoveLiker(ctx, post.ID, userID), ErrNotLiked)

	disliked, err := posts.Get(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, disliked.LikesCounter)
	assert.Empty(t, disliked.LikedBy)

	assert.ErrorIs(t, posts.AddLiker(ctx, primitive.NewObjectID(), userID), ErrNotFound)
}

func TestListByAuthorsOrderAndPagination(t *testing.T) {
	posts := NewPostStore(testDatabase(t))
	ctx := context.Background()
	authorID := primitive.NewObjectID()

	for i := 0; i < 15; i++ {
		_, err := posts.Create(ctx, authorID, "post", "")
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}

	first, err := posts.ListByAuthors(ctx, []primitive.ObjectID{authorID}, 1, 10)
	require.NoError(t, err)
	second, err := posts.ListByAuthors(ctx, []primitive.ObjectID{authorID}, 2, 10)
	require.NoError(t, err)

	require.Len(t, first, 10)
	require.Len(t, second, 5)
	for i := 1; i < len(first); i++ {
		assert.False(t, first[i].CreatedAt.After(first[i-1].CreatedAt))
	}

	count, err := posts.CountByAuthors(ctx, []primitive.ObjectID{authorID})
	require.NoError(t, err)
	assert.Equal(t, int64(15), count)

	empty, err := posts.ListByAuthors(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
