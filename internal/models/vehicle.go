package models

import (
	"time"

	"github.com/google/uuid"
)

// VehicleKind represents the transport mode of a vehicle
// Matches PostgreSQL ENUM: vehicle_kind
type VehicleKind string

const (
	VehicleKindFlight VehicleKind = "flight"
	VehicleKindTrain  VehicleKind = "train"
	VehicleKindBus    VehicleKind = "bus"
	VehicleKindCab    VehicleKind = "cab"
	VehicleKindCruise VehicleKind = "cruise"
)

// Valid reports whether k is a known vehicle kind.
func (k VehicleKind) Valid() bool {
	switch k {
	case VehicleKindFlight, VehicleKindTrain, VehicleKindBus, VehicleKindCab, VehicleKindCruise:
		return true
	}
	return false
}

// VehicleStatus represents the lifecycle status of a vehicle
type VehicleStatus string

const (
	VehicleStatusActive   VehicleStatus = "active"
	VehicleStatusInactive VehicleStatus = "inactive"
)

// Vehicle represents a bookable transport vehicle
type Vehicle struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Kind         VehicleKind   `json:"kind" db:"vehicle_kind"`
	Status       VehicleStatus `json:"status" db:"status"`
	SeatCapacity int           `json:"seat_capacity" db:"seat_capacity"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at" db:"updated_at"`
}

// Coach is a priced capacity partition of a vehicle (fare class / cabin type).
// SeatsAvailable is a denormalized counter: it is decremented on booking and is
// expected to equal nominal capacity minus non-cancelled passenger assignments.
type Coach struct {
	VehicleID      uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	CoachID        string    `json:"coach_id" db:"coach_id"`
	CoachType      string    `json:"coach_type" db:"coach_type"` // e.g. AC_SLEEPER, ECONOMY, BALCONY
	SeatsAvailable int       `json:"seats_available" db:"seats_available"`
	Price          float64   `json:"price" db:"price"`
}

// Seat represents a physical seat in a coach. Booked status is derived from
// passenger assignments, never stored on the seat row.
type Seat struct {
	ID         uuid.UUID `json:"id" db:"id"`
	VehicleID  uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	CoachID    string    `json:"coach_id" db:"coach_id"`
	SeatNumber string    `json:"seat_number" db:"seat_number"`
}

// Stop is an ordered waypoint on a vehicle's route
type Stop struct {
	ID            uuid.UUID `json:"id" db:"id"`
	VehicleID     uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	StationName   string    `json:"station_name" db:"station_name"`
	ArrivalTime   time.Time `json:"arrival_time" db:"arrival_time"`
	DepartureTime time.Time `json:"departure_time" db:"departure_time"`
	StopOrder     int       `json:"stop_order" db:"stop_order"`
}

// VehicleSummary is the list-endpoint row: a vehicle with its derived
// origin/destination (lowest/highest stop order) and departure/arrival times.
type VehicleSummary struct {
	ID            uuid.UUID   `json:"id" db:"id"`
	Name          string      `json:"name" db:"name"`
	Kind          VehicleKind `json:"kind" db:"vehicle_kind"`
	Origin        string      `json:"origin" db:"origin"`
	Destination   string      `json:"destination" db:"destination"`
	DepartureTime time.Time   `json:"departure_time" db:"departure_time"`
	ArrivalTime   time.Time   `json:"arrival_time" db:"arrival_time"`
	Coaches       []Coach     `json:"coaches,omitempty"`
}
