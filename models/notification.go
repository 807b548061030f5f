package models

// ReminderPayload is the asynq task body for a scheduled appointment reminder.
type ReminderPayload struct {
	RendezVousID string `json:"rendezVousId"`
	PatientID    string `json:"patientId"`
	MedecinID    string `json:"medecinId"`
	FireDate     string `json:"fireDate"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}
