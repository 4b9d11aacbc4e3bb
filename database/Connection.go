package database

import (
	"context"
	"fmt"
	"minitwitter/initializers"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func DBinstance() *mongo.Client {
	// Load environment variables
	initializers.LoadEnvVariables()

	MongoUri := os.Getenv("MONGO_URI")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(MongoUri))
	if err != nil {
		panic(err)
	}
	if err := ensureIndexes(ctx, client); err != nil {
		panic(err)
	}
	fmt.Println("Connected to MongoDB!")
	return client
}

var Client *mongo.Client = DBinstance()

var GridFSBucket *gridfs.Bucket = newGridFSBucket(Client)

func DB(client *mongo.Client) *mongo.Database {
	return client.Database(os.Getenv("DB_NAME"))
}

func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	collection := DB(client).Collection(collectionName)
	return collection
}

func newGridFSBucket(client *mongo.Client) *gridfs.Bucket {
	bucket, err := gridfs.NewBucket(client.Database(os.Getenv("DB_NAME")))
	if err != nil {
		panic(err)
	}
	return bucket
}

// ensureIndexes creates the unique constraints the stores rely on for
// duplicate detection, plus the index backing the feed query.
func ensureIndexes(ctx context.Context, client *mongo.Client) error {
	users := OpenCollection(client, "users")
	_, err := users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return err
	}

	posts := OpenCollection(client, "posts")
	_, err = posts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "author_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
