package models

import "time"

// ChatMessage is one line of the per-session chat history. Messages are
// append-only; they are never mutated, only deleted by the sender or an
// authorized party. Timestamp is server-assigned at write time and doubles as
// the display order.
type ChatMessage struct {
	ID             string    `bson:"id" json:"id"`
	ConsultationID string    `bson:"consultation_id" json:"consultationId"`
	SenderID       string    `bson:"sender_id" json:"senderId"`
	SenderName     string    `bson:"sender_name" json:"senderName"`
	Text           string    `bson:"text" json:"text"`
	Timestamp      time.Time `bson:"timestamp" json:"timestamp"`
}
