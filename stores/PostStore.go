package stores

import (
	"context"
	"minitwitter/models"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostStore persists posts and their liker sets. The likes counter is a
// denormalized copy of the liker-set size; the two only ever change inside
// the same update document, so they cannot drift apart.
type PostStore struct {
	posts *mongo.Collection
}

func NewPostStore(db *mongo.Database) *PostStore {
	return &PostStore{posts: db.Collection("posts")}
}

func (s *PostStore) Create(ctx context.Context, authorID primitive.ObjectID, text, image string) (models.Post, error) {
	now := time.Now().UTC()
	post := models.Post{
		ID:           primitive.NewObjectID(),
		AuthorID:     authorID,
		TextContent:  text,
		Image:        image,
		LikesCounter: 0,
		LikedBy:      []primitive.ObjectID{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.posts.InsertOne(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *PostStore) Get(ctx context.Context, id primitive.ObjectID) (models.Post, error) {
	var post models.Post
	err := s.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// List returns posts matching the filter, newest first.
func (s *PostStore) List(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	cursor, err := s.posts.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthors returns one page of the given authors' posts ordered by
// created_at descending, ties broken by _id descending. Pagination is
// stateless: page is 1-indexed with a fixed page size.
func (s *PostStore) ListByAuthors(ctx context.Context, authorIDs []primitive.ObjectID, page, pageSize int64) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	opts := options.Find().
		SetSort(bson.D{
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}).
		SetSkip((page - 1) * pageSize).
		SetLimit(pageSize)
	cursor, err := s.posts.Find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	posts := []models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostStore) CountByAuthors(ctx context.Context, authorIDs []primitive.ObjectID) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	return s.posts.CountDocuments(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}})
}

func (s *PostStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$set":         fields,
		"$currentDate": bson.M{"updated_at": true},
	}
	var post models.Post
	err := s.posts.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}
	return post, nil
}

func (s *PostStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.posts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostStore) DeleteByAuthor(ctx context.Context, authorID primitive.ObjectID) error {
	_, err := s.posts.DeleteMany(ctx, bson.M{"author_id": authorID})
	return err
}

// AddLiker appends userID to the liker set and bumps the counter in a single
// update. The filter excludes posts already liked by the user, so the set
// and counter move together exactly once per user.
func (s *PostStore) AddLiker(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "liked_by": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet":    bson.M{"liked_by": userID},
			"$inc":         bson.M{"likes_counter": 1},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := s.posts.CountDocuments(ctx, bson.M{"_id": postID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrAlreadyLiked
	}
	return nil
}

// RemoveLiker is the inverse of AddLiker; it only matches when the user is
// currently in the liker set.
func (s *PostStore) RemoveLiker(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := s.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "liked_by": userID},
		bson.M{
			"$pull":        bson.M{"liked_by": userID},
			"$inc":         bson.M{"likes_counter": -1},
			"$currentDate": bson.M{"updated_at": true},
		},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		count, err := s.posts.CountDocuments(ctx, bson.M{"_id": postID})
		if err != nil {
			return err
		}
		if count == 0 {
			return ErrNotFound
		}
		return ErrNotLiked
	}
	return nil
}
