package rendezvousRepo

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

// MongoRendezVousRepo implements RendezVousRepository using MongoDB.
type MongoRendezVousRepo struct {
	coll *mongo.Collection
}

// NewMongoRendezVousRepo creates a new instance of RendezVousRepository using MongoDB.
func NewMongoRendezVousRepo() RendezVousRepository {
	coll := database.Collection("rendezvous")
	repo := &MongoRendezVousRepo{coll: coll}

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
func (r *MongoRendezVousRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "medecin_id", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
		{Keys: bson.D{{Key: "date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a rendez-vous by its unique ID.
func (r *MongoRendezVousRepo) GetByID(id string) (*models.RendezVous, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rdv models.RendezVous
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rdv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rendez-vous with id %s: %w", id, err)
	}
	return &rdv, nil
}

// GetAll retrieves all rendez-vous.
func (r *MongoRendezVousRepo) GetAll() ([]models.RendezVous, error) {
	return r.find(bson.M{})
}

// GetByMedecin retrieves the rendez-vous of a doctor.
func (r *MongoRendezVousRepo) GetByMedecin(medecinID string) ([]models.RendezVous, error) {
	return r.find(bson.M{"medecin_id": medecinID})
}

// GetByPatient retrieves the rendez-vous of a patient.
func (r *MongoRendezVousRepo) GetByPatient(patientID string) ([]models.RendezVous, error) {
	return r.find(bson.M{"patient_id": patientID})
}

// GetByConsultation retrieves the rendez-vous linked to a consultation.
func (r *MongoRendezVousRepo) GetByConsultation(consultationID string) (*models.RendezVous, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var rdv models.RendezVous
	if err := r.coll.FindOne(ctx, bson.M{"consultation_id": consultationID}).Decode(&rdv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch rendez-vous for consultation %s: %w", consultationID, err)
	}
	return &rdv, nil
}

func (r *MongoRendezVousRepo) find(filter bson.M) ([]models.RendezVous, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve rendez-vous: %w", err)
	}
	defer cursor.Close(ctx)

	var rdvs []models.RendezVous
	for cursor.Next(ctx) {
		var rdv models.RendezVous
		if err := cursor.Decode(&rdv); err != nil {
			return nil, fmt.Errorf("failed to decode rendez-vous: %w", err)
		}
		rdvs = append(rdvs, rdv)
	}
	return rdvs, nil
}
