package docstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/evcraddock/realstate-api/internal/objectid"
)

// MongoStore is a Store backed by a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to uri, verifies the connection and selects database.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		if derr := client.Disconnect(ctx); derr != nil {
			return nil, fmt.Errorf("pinging mongodb: %w (also failed to disconnect: %v)", err, derr)
		}
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// Collection returns the named collection.
func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

// Ping checks the server is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc interface{}) (objectid.ID, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return objectid.Nil, fmt.Errorf("insert into %s: %w", c.coll.Name(), err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return objectid.Nil, fmt.Errorf("insert into %s: unexpected id type %T", c.coll.Name(), res.InsertedID)
	}
	return objectid.FromObjectID(oid), nil
}

func (c *mongoCollection) FindByID(ctx context.Context, id objectid.ID, out interface{}) error {
	err := c.coll.FindOne(ctx, bson.M{"_id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("find in %s: %w", c.coll.Name(), err)
	}
	return nil
}

func (c *mongoCollection) FindByIDAndSet(ctx context.Context, id objectid.ID, fields map[string]interface{}, out interface{}) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := c.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocument
	}
	if err != nil {
		return fmt.Errorf("update in %s: %w", c.coll.Name(), err)
	}
	return nil
}
