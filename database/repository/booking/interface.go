package bookingRepo

import (
	"errors"

	"wanderly/models"
)

// ErrVersionConflict is returned when a guarded update lost the race
// against a concurrent writer; the caller should re-read and retry or
// surface a conflict.
var ErrVersionConflict = errors.New("booking version conflict")

// ErrNotFound is returned when no booking matches the given ID.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines booking data access. All lifecycle
// mutations go through UpdateGuarded so that concurrent reconcilers
// cannot interleave a read-check-write sequence.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(id string) (*models.Booking, error)
	// GetByUser retrieves all bookings belonging to a user, newest first.
	GetByUser(userID string) ([]models.Booking, error)
	// UpdateGuarded persists the booking only if the stored version
	// still matches booking.Version, then increments it. Returns
	// ErrVersionConflict when a concurrent writer got there first.
	UpdateGuarded(booking *models.Booking) error
}
