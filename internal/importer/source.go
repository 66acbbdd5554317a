package importer

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoSource reads the legacy contest collections.
type MongoSource struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(ctx context.Context, uri, database string) (*MongoSource, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri).SetConnectTimeout(10 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoSource{client: client, db: client.Database(database)}, nil
}

func (m *MongoSource) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoSource) Documents(ctx context.Context) (*Documents, error) {
	docs := &Documents{}
	steps := []struct {
		collection string
		out        interface{}
	}{
		{"photographers", &docs.Photographers},
		{"judges", &docs.Judges},
		{"visitors", &docs.Visitors},
		{"categories", &docs.Categories},
		{"photos", &docs.Photos},
		{"galleries", &docs.Galleries},
		{"judgescores", &docs.JudgeScores},
		{"visitorvotes", &docs.VisitorVotes},
		{"winners", &docs.Winners},
		{"querylogs", &docs.QueryLogs},
	}
	for _, step := range steps {
		if err := m.readAll(ctx, step.collection, step.out); err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func (m *MongoSource) readAll(ctx context.Context, collection string, out interface{}) error {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := m.db.Collection(collection).Find(ctx, bson.D{}, opts)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, err)
	}
	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}
