package mongo

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const workoutPlanCollectionName = "workout_plans"

type workoutPlanDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CoachID   string             `bson:"coachId"`
	ClientID  string             `bson:"clientId"`
	Day       time.Time          `bson:"day"`
	PlanName  string             `bson:"planName"`
	Exercises []interface{}      `bson:"exercises"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *workoutPlanDocument) toDomain() domain.WorkoutPlan {
	exercises := d.Exercises
	if exercises == nil {
		exercises = []interface{}{}
	}
	return domain.WorkoutPlan{
		ID:        d.ID.Hex(),
		CoachID:   d.CoachID,
		ClientID:  d.ClientID,
		Day:       d.Day.UTC(),
		PlanName:  d.PlanName,
		Exercises: exercises,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// mongoWorkoutPlanRepository implements repository.WorkoutPlanRepository
type mongoWorkoutPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutPlanRepository creates a new WorkoutPlan repository.
func NewMongoWorkoutPlanRepository(db *mongo.Database) repository.WorkoutPlanRepository {
	return &mongoWorkoutPlanRepository{
		collection: db.Collection(workoutPlanCollectionName),
	}
}

// Create inserts one plan. Each call is its own write; there is no batch transaction.
func (r *mongoWorkoutPlanRepository) Create(ctx context.Context, plan *domain.WorkoutPlan) (string, error) {
	if plan.CoachID == "" || plan.ClientID == "" || plan.PlanName == "" {
		return "", errors.New("workout plan requires coachId, clientId, and planName")
	}
	exercises := plan.Exercises
	if exercises == nil {
		exercises = []interface{}{}
	}
	now := time.Now().UTC()
	doc := workoutPlanDocument{
		ID:        primitive.NewObjectID(),
		CoachID:   plan.CoachID,
		ClientID:  plan.ClientID,
		Day:       plan.Day.UTC(),
		PlanName:  plan.PlanName,
		Exercises: exercises,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	plan.ID = doc.ID.Hex()
	plan.Exercises = exercises
	plan.CreatedAt = now
	plan.UpdatedAt = now
	return plan.ID, nil
}

// GetByID retrieves a plan owned by coachID.
func (r *mongoWorkoutPlanRepository) GetByID(ctx context.Context, id, coachID string) (*domain.WorkoutPlan, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc workoutPlanDocument
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "coachId": coachID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	p := doc.toDomain()
	return &p, nil
}

// ListByCoach retrieves the coach's plans, most recent day first.
func (r *mongoWorkoutPlanRepository) ListByCoach(ctx context.Context, coachID string, f repository.WorkoutPlanFilter) ([]domain.WorkoutPlan, error) {
	filter := bson.M{"coachId": coachID}
	if f.ClientID != "" {
		filter["clientId"] = f.ClientID
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "day", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []workoutPlanDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	plans := make([]domain.WorkoutPlan, 0, len(docs))
	for i := range docs {
		plans = append(plans, docs[i].toDomain())
	}
	return plans, nil
}

// EnsureWorkoutPlanIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutPlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "day", Value: -1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "clientId", Value: 1}, {Key: "day", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
