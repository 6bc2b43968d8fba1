package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/dealyield/internal/domain/models"
)

// ErrNotFound is returned when no analysis matches the tenant and id.
var ErrNotFound = errors.New("analysis not found")

const analysesCollection = "analyses"

// Repository defines the interface for analysis storage. Every read and
// delete is scoped to a tenant.
type Repository interface {
	Save(ctx context.Context, record models.AnalysisRecord) error
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.AnalysisRecord, error)
	GetByID(ctx context.Context, tenantID, id string) (models.AnalysisRecord, error)
	Delete(ctx context.Context, tenantID, id string) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		coll:   client.Database(dbName).Collection(analysesCollection),
	}, nil
}

// EnsureIndexes creates the tenant listing index.
func (r *MongoDBRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("tenant_created_at"),
	})
	if err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}
	return nil
}

// Save inserts an analysis record.
func (r *MongoDBRepository) Save(ctx context.Context, record models.AnalysisRecord) error {
	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// ListByTenant returns the newest analyses of a tenant.
func (r *MongoDBRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]models.AnalysisRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"tenant_id": tenantID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	records := make([]models.AnalysisRecord, 0)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode analyses: %w", err)
	}
	return records, nil
}

// GetByID fetches one analysis of a tenant.
func (r *MongoDBRepository) GetByID(ctx context.Context, tenantID, id string) (models.AnalysisRecord, error) {
	var record models.AnalysisRecord
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.AnalysisRecord{}, ErrNotFound
	}
	if err != nil {
		return models.AnalysisRecord{}, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	return record, nil
}

// Delete removes one analysis of a tenant.
func (r *MongoDBRepository) Delete(ctx context.Context, tenantID, id string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "tenant_id": tenantID})
	if err != nil {
		return fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThan purges analyses of every tenant created before cutoff.
func (r *MongoDBRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("failed to purge analyses: %w", err)
	}
	return res.DeletedCount, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
