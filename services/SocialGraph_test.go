package services

import (
	"context"
	"minitwitter/models"
	"minitwitter/stores"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newUser(staff bool) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		IsStaff:   staff,
		Following: []primitive.ObjectID{},
		Followers: []primitive.ObjectID{},
	}
}

func TestFollowAddsBothViewsOfTheEdge(t *testing.T) {
	alice := newUser(false)
	bob := newUser(false)
	store := newFakeIdentityStore(alice, bob)
	graph := NewSocialGraph(store)

	require.NoError(t, graph.Follow(context.Background(), alice.ID, bob.ID))

	followingIDs, err := graph.FollowingIDs(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{bob.ID}, followingIDs)
	assert.Equal(t, []primitive.ObjectID{alice.ID}, bob.Followers)
}

func TestFollowTwiceFailsWithAlreadyFollowing(t *testing.T) {
	alice := newUser(false)
	bob := newUser(false)
	graph := NewSocialGraph(newFakeIdentityStore(alice, bob))

	require.NoError(t, graph.Follow(context.Background(), alice.ID, bob.ID))
	err := graph.Follow(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestFollowYourselfIsRejected(t *testing.T) {
	alice := newUser(false)
	graph := NewSocialGraph(newFakeIdentityStore(alice))

	err := graph.Follow(context.Background(), alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollowStaffAccountIsRejected(t *testing.T) {
	alice := newUser(false)
	admin := newUser(true)
	graph := NewSocialGraph(newFakeIdentityStore(alice, admin))

	err := graph.Follow(context.Background(), alice.ID, admin.ID)
	assert.ErrorIs(t, err, ErrForbiddenTarget)

	followingIDs, err := graph.FollowingIDs(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followingIDs)
}

func TestFollowUnknownUserFailsWithNotFound(t *testing.T) {
	alice := newUser(false)
	graph := NewSocialGraph(newFakeIdentityStore(alice))

	err := graph.Follow(context.Background(), alice.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, stores.ErrNotFound)
}

func TestUnfollowRemovesBothViewsOfTheEdge(t *testing.T) {
	alice := newUser(false)
	bob := newUser(false)
	graph := NewSocialGraph(newFakeIdentityStore(alice, bob))

	require.NoError(t, graph.Follow(context.Background(), alice.ID, bob.ID))
	require.NoError(t, graph.Unfollow(context.Background(), alice.ID, bob.ID))

	followingIDs, err := graph.FollowingIDs(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Empty(t, followingIDs)
	assert.Empty(t, bob.Followers)
}

func TestUnfollowWithoutEdgeFailsWithNotFollowing(t *testing.T) {
	alice := newUser(false)
	bob := newUser(false)
	graph := NewSocialGraph(newFakeIdentityStore(alice, bob))

	err := graph.Unfollow(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}
