package paiementRepo

import (
	"context"
	"fmt"
	"time"

	"telecare/database"
	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPaiementRepo implements PaiementRepository using MongoDB.
type MongoPaiementRepo struct {
	coll *mongo.Collection
}

// NewMongoPaiementRepo creates a new instance of PaiementRepository using MongoDB.
func NewMongoPaiementRepo() PaiementRepository {
	coll := database.Collection("paiements")
	repo := &MongoPaiementRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoPaiementRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "consultation_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by its unique ID.
func (r *MongoPaiementRepo) GetByID(id string) (*models.Paiement, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Paiement
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment with id %s: %w", id, err)
	}
	return &p, nil
}

// GetAll retrieves all payments.
func (r *MongoPaiementRepo) GetAll() ([]models.Paiement, error) {
	return r.find(bson.M{})
}

// GetByConsultation retrieves the payments of a consultation.
func (r *MongoPaiementRepo) GetByConsultation(consultationID string) ([]models.Paiement, error) {
	return r.find(bson.M{"consultation_id": consultationID})
}

func (r *MongoPaiementRepo) find(filter bson.M) ([]models.Paiement, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payments: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Paiement
	for cursor.Next(ctx) {
		var p models.Paiement
		if err := cursor.Decode(&p); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		list = append(list, p)
	}
	return list, nil
}

// Create inserts a new payment document.
func (r *MongoPaiementRepo) Create(p *models.Paiement) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// Update modifies an existing payment document.
func (r *MongoPaiementRepo) Update(p *models.Paiement) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	p.UpdatedAt = time.Now()
	filter := bson.M{"id": p.ID}
	update := bson.M{"$set": p}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update payment with id %s: %w", p.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("payment with id %s not found", p.ID)
	}
	return nil
}

// Delete removes a payment document by its ID.
func (r *MongoPaiementRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete payment with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("payment with id %s not found", id)
	}
	return nil
}
