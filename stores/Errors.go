package stores

import "errors"

// Persistence outcomes. The services map these onto their own contract
// errors; controllers never see them except for ErrNotFound.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("username or email already in use")
	ErrEdgeExists   = errors.New("follow edge already exists")
	ErrEdgeMissing  = errors.New("follow edge does not exist")
	ErrAlreadyLiked = errors.New("user already in liker set")
	ErrNotLiked     = errors.New("user not in liker set")
)
