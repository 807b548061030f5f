package session

import "telecare/models"

// SessionService enforces the teleconsultation lifecycle across the
// RendezVous and Consultation state machines and resolves the duality between
// the two identifier spaces.
//
// RendezVous: planned -> confirmed -> completed; planned|confirmed -> cancelled.
// Consultation: planned -> in_progress -> completed; planned -> cancelled.
// Terminal states accept no further transitions.
type SessionService interface {
	// Resolve maps a session identifier to its entity.
	Resolve(id string) (*SessionRef, error)
	// Complete marks the session finished. When the id resolves to a
	// consultation (directly or through a rendez-vous link) the
	// consultation is completed; otherwise the rendez-vous itself is.
	Complete(id string) (*SessionRef, error)
	// Confirm moves a planned rendez-vous to confirmed and schedules its
	// reminders.
	Confirm(rdvID string) (*models.RendezVous, error)
	// Cancel moves a planned or confirmed rendez-vous to cancelled.
	Cancel(rdvID string) (*models.RendezVous, error)
	// OnRoomJoin is the integration point with the signaling relay: when a
	// participant joins the room for a session, the consultation (created
	// lazily from the rendez-vous if needed) moves to in_progress. Errors
	// are logged, never surfaced to the relay.
	OnRoomJoin(roomID, userID string)
}

// ReminderScheduler enqueues the reminder tasks of a rendez-vous.
type ReminderScheduler interface {
	ScheduleReminders(rdv *models.RendezVous) error
}
