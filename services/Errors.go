package services

import "errors"

// Contract errors. Every failure of a service operation is one of these or
// stores.ErrNotFound; nothing here is retryable.
var (
	ErrSelfFollow       = errors.New("you can not follow yourself")
	ErrForbiddenTarget  = errors.New("you can not follow this user")
	ErrAlreadyFollowing = errors.New("you are already following this user")
	ErrNotFollowing     = errors.New("you are not following this user")
	ErrAlreadyLiked     = errors.New("you already liked this post")
	ErrNotLiked         = errors.New("you can not dislike a post you have not liked yet")
)
