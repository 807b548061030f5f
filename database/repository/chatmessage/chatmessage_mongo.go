package chatRepo

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

// MongoChatMessageRepo implements ChatMessageRepository using MongoDB.
type MongoChatMessageRepo struct {
	coll *mongo.Collection
}

// NewMongoChatMessageRepo creates a new instance of ChatMessageRepository using MongoDB.
func NewMongoChatMessageRepo() ChatMessageRepository {
	coll := database.Collection("chatmessages")
	repo := &MongoChatMessageRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoChatMessageRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "consultation_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new chat message document.
func (r *MongoChatMessageRepo) Create(msg *models.ChatMessage) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// GetByID retrieves a message by its unique ID.
func (r *MongoChatMessageRepo) GetByID(id string) (*models.ChatMessage, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var msg models.ChatMessage
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&msg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch chat message with id %s: %w", id, err)
	}
	return &msg, nil
}

// GetByConsultation retrieves the messages of a session in ascending timestamp order.
func (r *MongoChatMessageRepo) GetByConsultation(consultationID string) ([]models.ChatMessage, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"consultation_id": consultationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	var msgs []models.ChatMessage
	for cursor.Next(ctx) {
		var msg models.ChatMessage
		if err := cursor.Decode(&msg); err != nil {
			return nil, fmt.Errorf("failed to decode chat message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// Delete removes a chat message document by its ID.
func (r *MongoChatMessageRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id}
	result, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete chat message with id %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("chat message with id %s not found", id)
	}
	return nil
}
