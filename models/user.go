package models

import "time"

// User roles. Credential issuance lives in an external identity service; this
// record only carries the profile fields the teleconsultation flow reads
// (payer email resolution, chat sender names).
const (
	RolePatient = "patient"
	RoleMedecin = "medecin"
	RoleAdmin   = "admin"
)

// User represents a patient or doctor profile.
type User struct {
	ID        string    `bson:"id" json:"id"`
	FirstName string    `bson:"first_name" json:"firstName"`
	LastName  string    `bson:"last_name" json:"lastName"`
	Email     string    `bson:"email" json:"email"`
	Role      string    `bson:"role" json:"role"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// DisplayName returns the name shown to other session participants.
func (u *User) DisplayName() string {
	if u.FirstName == "" && u.LastName == "" {
		return "Utilisateur"
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
