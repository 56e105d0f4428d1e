// internal/domain/audit/recorder.go
package audit

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Entity types
const (
	EntityOrder   = "order"
	EntityProduct = "product"
)

// Actions
const (
	ActionOrderPlaced          = "order.placed"
	ActionPaymentCaptured      = "order.payment_captured"
	ActionPaymentFailed        = "order.payment_failed"
	ActionStatusChanged        = "order.status_changed"
	ActionCancellationRequest  = "order.cancellation_requested"
	ActionCancellationReviewed = "order.cancellation_reviewed"
	ActionReturnRequest        = "order.return_requested"
	ActionReturnReviewed       = "order.return_reviewed"
	ActionProductCreated       = "product.created"
	ActionProductUpdated       = "product.updated"
	ActionProductDeleted       = "product.deleted"
)

// Event is one entry of an entity's activity history
type Event struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EntityType string             `bson:"entity_type" json:"entityType"`
	EntityID   uint               `bson:"entity_id" json:"entityId"`
	Action     string             `bson:"action" json:"action"`
	ActorID    uint               `bson:"actor_id" json:"actorId"`
	From       string             `bson:"from,omitempty" json:"from,omitempty"`
	To         string             `bson:"to,omitempty" json:"to,omitempty"`
	Note       string             `bson:"note,omitempty" json:"note,omitempty"`
	At         time.Time          `bson:"at" json:"at"`
}

// Recorder stores and reads activity events
type Recorder interface {
	Record(ctx context.Context, event Event) error
	History(ctx context.Context, entityType string, entityID uint) ([]Event, error)
}

// MongoRecorder keeps events in a MongoDB collection
type MongoRecorder struct {
	collection *mongo.Collection
}

// NewMongoRecorder creates a recorder on the given collection
func NewMongoRecorder(collection *mongo.Collection) *MongoRecorder {
	return &MongoRecorder{collection: collection}
}

// EnsureIndexes creates the lookup index used by History
func (r *MongoRecorder) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "entity_type", Value: 1},
			{Key: "entity_id", Value: 1},
			{Key: "at", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create activity index: %w", err)
	}
	return nil
}

// Record inserts an event, stamping it when At is zero
func (r *MongoRecorder) Record(ctx context.Context, event Event) error {
	if event.At.IsZero() {
		event.At = time.Now().UTC()
	}
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// History returns an entity's events oldest first
func (r *MongoRecorder) History(ctx context.Context, entityType string, entityID uint) ([]Event, error) {
	filter := bson.M{"entity_type": entityType, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer cursor.Close(ctx)

	events := []Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode activity: %w", err)
	}
	return events, nil
}

// NopRecorder drops events. Used when no activity store is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) error { return nil }

func (NopRecorder) History(context.Context, string, uint) ([]Event, error) {
	return []Event{}, nil
}
