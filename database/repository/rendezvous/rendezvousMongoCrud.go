package rendezvousRepo

import (
	"fmt"
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new rendez-vous document.
func (r *MongoRendezVousRepo) Create(rdv *models.RendezVous) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	rdv.CreatedAt = now
	rdv.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, rdv)
	if err != nil {
		return fmt.Errorf("failed to create rendez-vous: %w", err)
	}
	return nil
}

// Update modifies an existing rendez-vous document.
func (r *MongoRendezVousRepo) Update(rdv *models.RendezVous) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	rdv.UpdatedAt = time.Now()
	filter := bson.M{"id": rdv.ID}
	update := bson.M{"$set": rdv}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update rendez-vous with id %s: %w", rdv.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rendez-vous with id %s not found", rdv.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a rendez-vous.
func (r *MongoRendezVousRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update rendez-vous with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("rendez-vous with id %s not found", id)
	}
	return nil
}

// Delete removes a rendez-vous document by its ID.
func (r *MongoRendezVousRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete rendez-vous with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("rendez-vous with id %s not found", id)
	}
	return nil
}
