package stores

import (
	"context"
	"minitwitter/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IdentityStore persists user records and the follow graph. It enforces no
// business policy; uniqueness comes from the collection's unique indexes and
// edge consistency from conditioned updates run inside one transaction.
type IdentityStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

func NewIdentityStore(db *mongo.Database) *IdentityStore {
	return &IdentityStore{
		client: db.Client(),
		users:  db.Collection("users"),
	}
}

func (s *IdentityStore) Create(ctx context.Context, user models.User) (models.User, error) {
	_, err := s.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, ErrDuplicateKey
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *IdentityStore) Get(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *IdentityStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *IdentityStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *IdentityStore) List(ctx context.Context, filter bson.M) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *IdentityStore) Update(ctx context.Context, id primitive.ObjectID, fields bson.M) (models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return models.User{}, ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return models.User{}, ErrDuplicateKey
	}
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Delete removes the user and withdraws it from every other user's follower
// and following sets, in one transaction.
func (s *IdentityStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := s.users.DeleteOne(sc, bson.M{"_id": id})
		if err != nil {
			return nil, err
		}
		if result.DeletedCount == 0 {
			return nil, ErrNotFound
		}
		_, err = s.users.UpdateMany(sc, bson.M{}, bson.M{
			"$pull": bson.M{"following": id, "followers": id},
		})
		return nil, err
	})
	return err
}

// AddFollowEdge records the follower->followee edge in both views at once.
// The insert on the follower side is conditioned on the edge being absent,
// so a concurrent duplicate follow cannot slip through.
func (s *IdentityStore) AddFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := s.users.UpdateOne(sc,
			bson.M{"_id": followerID, "following": bson.M{"$ne": followeeID}},
			bson.M{"$addToSet": bson.M{"following": followeeID}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			count, err := s.users.CountDocuments(sc, bson.M{"_id": followerID})
			if err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrEdgeExists
		}

		result, err = s.users.UpdateOne(sc,
			bson.M{"_id": followeeID},
			bson.M{"$addToSet": bson.M{"followers": followerID}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	return err
}

// RemoveFollowEdge drops both views of the edge; fails with ErrEdgeMissing
// when the follower never followed the followee.
func (s *IdentityStore) RemoveFollowEdge(ctx context.Context, followerID, followeeID primitive.ObjectID) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := s.users.UpdateOne(sc,
			bson.M{"_id": followerID, "following": followeeID},
			bson.M{"$pull": bson.M{"following": followeeID}},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 0 {
			count, err := s.users.CountDocuments(sc, bson.M{"_id": followerID})
			if err != nil {
				return nil, err
			}
			if count == 0 {
				return nil, ErrNotFound
			}
			return nil, ErrEdgeMissing
		}

		_, err = s.users.UpdateOne(sc,
			bson.M{"_id": followeeID},
			bson.M{"$pull": bson.M{"followers": followerID}},
		)
		return nil, err
	})
	return err
}

func (s *IdentityStore) FollowingIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Following, nil
}
