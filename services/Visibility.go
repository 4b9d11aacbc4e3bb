package services

import (
	"minitwitter/models"

	"go.mongodb.org/mongo-driver/bson"
)

// PostScopeFor returns the filter bounding which posts the caller may read
// outside the feed. Staff accounts see every post, everyone else only their
// own. Evaluated once per request instead of branching per endpoint.
func PostScopeFor(caller models.User) bson.M {
	if caller.IsStaff {
		return bson.M{}
	}
	return bson.M{"author_id": caller.ID}
}

// CanReadPost reports whether the caller falls inside the post's read scope.
func CanReadPost(caller models.User, post models.Post) bool {
	return caller.IsStaff || post.AuthorID == caller.ID
}

// CanMutatePost reports whether the caller owns the post. Only the author
// may update or delete post content, staff included.
func CanMutatePost(caller models.User, post models.Post) bool {
	return post.AuthorID == caller.ID
}
