package models

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus represents the status of a user trip grouping
// Matches PostgreSQL ENUM: trip_status
type TripStatus string

const (
	TripStatusPlanning  TripStatus = "planning"
	TripStatusBooked    TripStatus = "booked"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// Trip is an optional user-defined grouping of bookings
type Trip struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id"`
	Name      string     `json:"name" db:"name"`
	Status    TripStatus `json:"status" db:"status"`
	StartDate time.Time  `json:"start_date" db:"start_date"`
	EndDate   time.Time  `json:"end_date" db:"end_date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

// TripDetails is the trip association carried in booking requests:
// create a new trip, attach to an existing one, or neither.
type TripDetails struct {
	CreateNewTrip bool       `json:"create_new_trip"`
	NewTripName   string     `json:"new_trip_name,omitempty"`
	TripID        *uuid.UUID `json:"trip_id,omitempty"`
}
