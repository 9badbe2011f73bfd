package dbclient

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"metricsync/internal/export"
)

// MongoReader implements export.Reader on top of a shared MongoDB
// client. One reader is constructed at process start and reused for
// every collection of the run.
type MongoReader struct {
	client *mongo.Client
	dbName string
}

// NewMongoReader connects to MongoDB with the given URI and database
// name. The driver dials lazily, so a bad URI surfaces on the first
// read, not here.
func NewMongoReader(uri, dbName string) (*MongoReader, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return &MongoReader{client: client, dbName: dbName}, nil
}

// Ping verifies connectivity.
func (m *MongoReader) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return m.client.Ping(ctx, nil)
}

// ReadAll fetches every document of the collection, drops the _id
// field and converts BSON values to plain Go values. Zero documents
// is a valid, empty result.
func (m *MongoReader) ReadAll(ctx context.Context, collection string) (export.RecordSet, error) {
	coll := m.client.Database(m.dbName).Collection(collection)

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var records export.RecordSet
	for cursor.Next(ctx) {
		// Decode into bson.D to preserve document field order.
		var doc bson.D
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", collection, err)
		}
		rec := export.NewRecord()
		for _, elem := range doc {
			if elem.Key == "_id" {
				continue
			}
			rec.Set(elem.Key, normalizeBSON(elem.Value))
		}
		records = append(records, rec)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor %s: %w", collection, err)
	}

	log.Printf("mongo: fetched %d document(s) from %s", len(records), collection)
	return records, nil
}

// Close disconnects the client.
func (m *MongoReader) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

// normalizeBSON maps driver-specific BSON types onto the plain value
// kinds the pipeline works with.
func normalizeBSON(v any) any {
	switch t := v.(type) {
	case bson.DateTime:
		return t.Time().UTC()
	case bson.ObjectID:
		return t.Hex()
	case bson.Decimal128:
		return t.String()
	case bson.D:
		m := make(map[string]any, len(t))
		for _, elem := range t {
			m[elem.Key] = normalizeBSON(elem.Value)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, item := range t {
			s[i] = normalizeBSON(item)
		}
		return s
	default:
		return v
	}
}
