package models

import (
	"time"

	"github.com/google/uuid"
)

// AccommodationType represents the kind of stay
type AccommodationType string

const (
	AccommodationTypeHotel  AccommodationType = "hotel"
	AccommodationTypeAirbnb AccommodationType = "airbnb"
)

// Accommodation represents a hotel or rental property
type Accommodation struct {
	ID        uuid.UUID         `json:"id" db:"id"`
	Name      string            `json:"name" db:"name"`
	Type      AccommodationType `json:"type" db:"accommodation_type"`
	Address   string            `json:"address" db:"address"`
	City      string            `json:"city" db:"city"`
	CreatedAt time.Time         `json:"created_at" db:"created_at"`
	Rooms     []Room            `json:"rooms,omitempty"`
}

// Room is a bookable room class within an accommodation. RoomsAvailable is the
// nominal count of physical rooms of this class; availability for a date range
// is always computed against assignments, never cached.
type Room struct {
	ID              uuid.UUID `json:"id" db:"id"`
	AccommodationID uuid.UUID `json:"accommodation_id" db:"accommodation_id"`
	RoomType        string    `json:"room_type" db:"room_type"`
	RoomsAvailable  int       `json:"rooms_available" db:"rooms_available"`
	PplAccommodated int       `json:"ppl_accommodated" db:"ppl_accommodated"`
	Price           float64   `json:"price" db:"price"`
}
