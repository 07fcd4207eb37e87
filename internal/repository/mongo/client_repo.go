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

const clientCollectionName = "clients"

type clientDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CoachID   string             `bson:"coachId"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email,omitempty"`
	Phone     string             `bson:"phone"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *clientDocument) toDomain() domain.Client {
	return domain.Client{
		ID:        d.ID.Hex(),
		CoachID:   d.CoachID,
		Name:      d.Name,
		Email:     d.Email,
		Phone:     d.Phone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// mongoClientRepository implements repository.ClientRepository
type mongoClientRepository struct {
	collection *mongo.Collection
}

func NewMongoClientRepository(db *mongo.Database) repository.ClientRepository {
	return &mongoClientRepository{
		collection: db.Collection(clientCollectionName),
	}
}

// Create inserts a new client for client.CoachID.
func (r *mongoClientRepository) Create(ctx context.Context, client *domain.Client) (string, error) {
	if client.CoachID == "" || client.Name == "" {
		return "", errors.New("client requires coachId and name")
	}
	now := time.Now().UTC()
	doc := clientDocument{
		ID:        primitive.NewObjectID(),
		CoachID:   client.CoachID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	client.ID = doc.ID.Hex()
	client.CreatedAt = now
	client.UpdatedAt = now
	return client.ID, nil
}

// GetByID retrieves a client owned by coachID.
func (r *mongoClientRepository) GetByID(ctx context.Context, id, coachID string) (*domain.Client, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	var doc clientDocument
	filter := bson.M{"_id": oid, "coachId": coachID}
	if err := r.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

// ListByCoach returns the coach's clients, newest first.
func (r *mongoClientRepository) ListByCoach(ctx context.Context, coachID string) ([]domain.Client, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"coachId": coachID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []clientDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(docs))
	for i := range docs {
		clients = append(clients, docs[i].toDomain())
	}
	return clients, nil
}

// EnsureClientIndexes creates necessary indexes. Call during startup.
func EnsureClientIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "coachId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
