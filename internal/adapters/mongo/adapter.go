// Package mongo provides a MongoDB-backed implementation of the workout
// repository port. Workouts are stored as one document each, sections
// embedded in order.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ewilliams-labs/cadence/backend/internal/core/domain"
	"github.com/ewilliams-labs/cadence/backend/internal/core/ports"
)

const collectionName = "workouts"

type workoutDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Sections  []domain.Section   `bson:"sections"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d workoutDocument) toDomain() domain.Workout {
	sections := d.Sections
	if sections == nil {
		sections = []domain.Section{}
	}
	return domain.Workout{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      d.Type,
		Sections:  sections,
		CreatedAt: d.CreatedAt,
	}
}

// Adapter implements the repository port for MongoDB.
type Adapter struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

var _ ports.WorkoutRepository = (*Adapter)(nil)

// NewAdapter connects to uri and verifies the deployment is reachable.
func NewAdapter(ctx context.Context, uri, database string) (*Adapter, error) {
	a, err := newAdapter(uri, database)
	if err != nil {
		return nil, err
	}
	if err := a.client.Ping(ctx, nil); err != nil {
		_ = a.client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: failed to ping: %w", err)
	}
	return a, nil
}

// newAdapter builds the client without touching the network.
func newAdapter(uri, database string) (*Adapter, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}
	return &Adapter{
		client:     client,
		collection: client.Database(database).Collection(collectionName),
		now:        time.Now,
	}, nil
}

// Close disconnects the client.
func (a *Adapter) Close(ctx context.Context) error {
	return a.client.Disconnect(ctx)
}

// GetByID loads a workout. Ids that are not valid ObjectIDs cannot exist.
func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Workout, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Workout{}, domain.ErrNotFound
	}

	var doc workoutDocument
	if err := a.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Workout{}, domain.ErrNotFound
		}
		return domain.Workout{}, fmt.Errorf("mongo: failed to load workout: %w", err)
	}
	return doc.toDomain(), nil
}

// List returns every workout, oldest first.
func (a *Adapter) List(ctx context.Context) ([]domain.Workout, error) {
	cur, err := a.collection.Find(ctx, bson.M{}, listOptions())
	if err != nil {
		return nil, fmt.Errorf("mongo: failed to list workouts: %w", err)
	}

	var docs []workoutDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: failed to decode workouts: %w", err)
	}

	workouts := make([]domain.Workout, 0, len(docs))
	for _, d := range docs {
		workouts = append(workouts, d.toDomain())
	}
	return workouts, nil
}

func listOptions() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

// Create inserts a workout with no sections.
func (a *Adapter) Create(ctx context.Context, name, workoutType string) (domain.Workout, error) {
	oid := primitive.NewObjectID()
	w, err := domain.NewWorkout(oid.Hex(), name, workoutType)
	if err != nil {
		return domain.Workout{}, fmt.Errorf("mongo: %w", err)
	}

	now := a.now().UTC().Truncate(time.Millisecond)
	doc := workoutDocument{
		ID:        oid,
		Name:      w.Name,
		Type:      w.Type,
		Sections:  w.Sections,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := a.collection.InsertOne(ctx, doc); err != nil {
		return domain.Workout{}, fmt.Errorf("mongo: failed to insert workout: %w", err)
	}
	return doc.toDomain(), nil
}

// UpdateSections replaces the embedded sections of a workout.
func (a *Adapter) UpdateSections(ctx context.Context, id string, sections []domain.Section) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	if sections == nil {
		sections = []domain.Section{}
	}

	res, err := a.collection.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"sections":  sections,
		"updatedAt": a.now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("mongo: failed to update sections: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
