package consultationRepo

import (
	"fmt"
	"time"

	"telecare/models"

	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new consultation document.
func (r *MongoConsultationRepo) Create(cons *models.Consultation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	cons.CreatedAt = now
	cons.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, cons)
	if err != nil {
		return fmt.Errorf("failed to create consultation: %w", err)
	}
	return nil
}

// Update modifies an existing consultation document.
func (r *MongoConsultationRepo) Update(cons *models.Consultation) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	cons.UpdatedAt = time.Now()
	filter := bson.M{"id": cons.ID}
	update := bson.M{"$set": cons}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update consultation with id %s: %w", cons.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("consultation with id %s not found", cons.ID)
	}
	return nil
}

// UpdateSetDocument applies a partial $set update to a consultation.
func (r *MongoConsultationRepo) UpdateSetDocument(id string, updateDoc bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	updateDoc["updated_at"] = time.Now()
	update := bson.M{"$set": updateDoc}

	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update consultation with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("consultation with id %s not found", id)
	}
	return nil
}

// PushDocument appends a document URL to a consultation.
func (r *MongoConsultationRepo) PushDocument(id, url string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"documents": url},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	filter := bson.M{"id": id}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append document to consultation %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("consultation with id %s not found", id)
	}
	return nil
}

// Delete removes a consultation document by its ID.
func (r *MongoConsultationRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete consultation with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("consultation with id %s not found", id)
	}
	return nil
}
