package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore keeps blobs in a single MongoDB collection, one document per
// key with the JSON payload stored verbatim. Keeping the payload as a JSON
// string preserves the store's parse-failure-means-absent contract.
type MongoStore struct {
	client   *mongo.Client
	dbName   string
	collName string
	logger   *zap.Logger
}

type blobDocument struct {
	Key       string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, dbName string, logger *zap.Logger) (*MongoStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{
		client:   client,
		dbName:   dbName,
		collName: "blobs",
		logger:   logger,
	}, nil
}

// Load fetches the document for key and unmarshals its payload. A missing
// document reports absent; a corrupt payload is deleted and reports absent.
func (s *MongoStore) Load(ctx context.Context, key string, out interface{}) (bool, error) {
	var doc blobDocument
	err := s.collection().FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("load blob %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(doc.Payload), out); err != nil {
		s.logger.Warn("discarding corrupt blob", zap.String("key", key), zap.Error(err))
		if _, delErr := s.collection().DeleteOne(ctx, bson.M{"_id": key}); delErr != nil {
			s.logger.Warn("failed removing corrupt blob", zap.String("key", key), zap.Error(delErr))
		}
		return false, nil
	}

	return true, nil
}

// Save upserts the document for key with a fresh JSON payload.
func (s *MongoStore) Save(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal blob %s: %w", key, err)
	}

	doc := blobDocument{Key: key, Payload: string(raw), UpdatedAt: time.Now().UTC()}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection().ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("save blob %s: %w", key, err)
	}

	s.logger.Debug("blob saved", zap.String("key", key), zap.Int("bytes", len(raw)))
	return nil
}

// Ping checks database connectivity; used by the diagnostics endpoint.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close closes the MongoDB connection.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(s.collName)
}
