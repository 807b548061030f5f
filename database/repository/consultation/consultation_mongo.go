package consultationRepo

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

// MongoConsultationRepo implements ConsultationRepository using MongoDB.
type MongoConsultationRepo struct {
	coll *mongo.Collection
}

// NewMongoConsultationRepo creates a new instance of ConsultationRepository using MongoDB.
func NewMongoConsultationRepo() ConsultationRepository {
	coll := database.Collection("consultations")
	repo := &MongoConsultationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoConsultationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "medecin_id", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a consultation by its unique ID.
func (r *MongoConsultationRepo) GetByID(id string) (*models.Consultation, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var cons models.Consultation
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&cons); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch consultation with id %s: %w", id, err)
	}
	return &cons, nil
}

// GetAll retrieves all consultations.
func (r *MongoConsultationRepo) GetAll() ([]models.Consultation, error) {
	return r.find(bson.M{})
}

// GetByMedecin retrieves the consultations of a doctor.
func (r *MongoConsultationRepo) GetByMedecin(medecinID string) ([]models.Consultation, error) {
	return r.find(bson.M{"medecin_id": medecinID})
}

// GetByPatient retrieves the consultations of a patient.
func (r *MongoConsultationRepo) GetByPatient(patientID string) ([]models.Consultation, error) {
	return r.find(bson.M{"patient_id": patientID})
}

func (r *MongoConsultationRepo) find(filter bson.M) ([]models.Consultation, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve consultations: %w", err)
	}
	defer cursor.Close(ctx)

	var list []models.Consultation
	for cursor.Next(ctx) {
		var cons models.Consultation
		if err := cursor.Decode(&cons); err != nil {
			return nil, fmt.Errorf("failed to decode consultation: %w", err)
		}
		list = append(list, cons)
	}
	return list, nil
}
