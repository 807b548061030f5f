package userRepo

import "telecare/models"

// UserRepository defines methods for patient/doctor profile access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID. Returns (nil, nil) when no
	// document matches.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address.
	GetByEmail(email string) (*models.User, error)
	// GetAll retrieves all users.
	GetAll() ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
}
