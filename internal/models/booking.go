package models

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// STATUSES (match DB ENUMs)
// ============================================================================

// BookingStatus represents the status of a booking
// Matches PostgreSQL ENUM: booking_status
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ItemStatus represents the status of a booked leg or stay
type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusConfirmed ItemStatus = "confirmed"
	ItemStatusCancelled ItemStatus = "cancelled"
)

// PaymentStatus represents the status of a payment row
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// ============================================================================
// PERSISTED ENTITIES
// ============================================================================

// Booking is the root aggregate for a purchase
type Booking struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	UserID           uuid.UUID     `json:"user_id" db:"user_id"`
	TripID           *uuid.UUID    `json:"trip_id,omitempty" db:"trip_id"`
	BookingReference string        `json:"booking_reference" db:"booking_reference"`
	TotalPrice       float64       `json:"total_price" db:"total_price"`
	Status           BookingStatus `json:"status" db:"status"`
	DeviceInfo       *string       `json:"device_info,omitempty" db:"device_info"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

// BookingItemKind discriminates what a booking item points at
type BookingItemKind string

const (
	BookingItemKindVehicle       BookingItemKind = "vehicle"
	BookingItemKindAccommodation BookingItemKind = "accommodation"
)

// BookingItem links a Booking to exactly one purchased unit: a vehicle leg or
// an accommodation stay, never both. The schema carries two nullable
// references; Kind/Validate enforce the exactly-one invariant at construction.
type BookingItem struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	BookingID           uuid.UUID  `json:"booking_id" db:"booking_id"`
	VehicleItemID       *uuid.UUID `json:"vehicle_item_id,omitempty" db:"vehicle_item_id"`
	AccommodationItemID *uuid.UUID `json:"accommodation_item_id,omitempty" db:"accommodation_item_id"`
}

// Kind returns which child the item references, or "" if the item is malformed.
func (bi *BookingItem) Kind() BookingItemKind {
	switch {
	case bi.VehicleItemID != nil && bi.AccommodationItemID == nil:
		return BookingItemKindVehicle
	case bi.VehicleItemID == nil && bi.AccommodationItemID != nil:
		return BookingItemKindAccommodation
	}
	return ""
}

// Valid reports whether the item references exactly one child.
func (bi *BookingItem) Valid() bool {
	return bi.Kind() != ""
}

// VehicleBookingItem is a purchased transport leg
type VehicleBookingItem struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	VehicleID       uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	BoardingPoint   string     `json:"boarding_point" db:"boarding_point"`
	BoardingTime    time.Time  `json:"boarding_time" db:"boarding_time"`
	DeboardingPoint string     `json:"deboarding_point" db:"deboarding_point"`
	DeboardingTime  time.Time  `json:"deboarding_time" db:"deboarding_time"`
	CoachType       string     `json:"coach_type" db:"coach_type"`
	Price           float64    `json:"price" db:"price"`
	Status          ItemStatus `json:"status" db:"status"`
}

// PassengerSeat is one passenger's seat assignment on a vehicle booking item
type PassengerSeat struct {
	ID            uuid.UUID `json:"id" db:"id"`
	VehicleItemID uuid.UUID `json:"vehicle_item_id" db:"vehicle_item_id"`
	SeatID        uuid.UUID `json:"seat_id" db:"seat_id"`
	Name          string    `json:"name" db:"name"`
	Age           int       `json:"age" db:"age"`
	Gender        string    `json:"gender" db:"gender"`
}

// AccommodationBookingItem is a purchased stay
type AccommodationBookingItem struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	AccommodationID uuid.UUID  `json:"accommodation_id" db:"accommodation_id"`
	CheckInDate     time.Time  `json:"check_in_date" db:"check_in_date"`
	CheckOutDate    time.Time  `json:"check_out_date" db:"check_out_date"`
	ContactName     string     `json:"contact_name" db:"contact_name"`
	ContactPhone    string     `json:"contact_phone" db:"contact_phone"`
	ContactEmail    *string    `json:"contact_email,omitempty" db:"contact_email"`
	Price           float64    `json:"price" db:"price"`
	Status          ItemStatus `json:"status" db:"status"`
}

// RoomAssignment books one physical room instance against a stay. The room
// number stays null until check-in, when a physical room is allocated.
type RoomAssignment struct {
	ID          uuid.UUID `json:"id" db:"id"`
	AccomItemID uuid.UUID `json:"accom_item_id" db:"accom_item_id"`
	RoomID      uuid.UUID `json:"room_id" db:"room_id"`
	RoomNumber  *string   `json:"room_number,omitempty" db:"room_number"`
}

// Payment is the single payment row created with a booking. It starts
// pending/unpaid; an out-of-band processor updates it later.
type Payment struct {
	ID            uuid.UUID     `json:"id" db:"id"`
	BookingID     uuid.UUID     `json:"booking_id" db:"booking_id"`
	Amount        float64       `json:"amount" db:"amount"`
	Paid          bool          `json:"paid" db:"paid"`
	PaymentMethod string        `json:"payment_method" db:"payment_method"`
	Status        PaymentStatus `json:"status" db:"status"`
	TransactionID *string       `json:"transaction_id,omitempty" db:"transaction_id"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

// ============================================================================
// REQUEST / RESPONSE TYPES
// ============================================================================

// PassengerInput is one passenger in a vehicle booking request
type PassengerInput struct {
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Gender string    `json:"gender"`
	SeatID uuid.UUID `json:"seat_id"`
}

// VehicleBookingRequest is the body of POST /{product}/book/:id
type VehicleBookingRequest struct {
	CoachID         string           `json:"coach_id"`
	BoardingPoint   string           `json:"boarding_point"`
	BoardingTime    string           `json:"boarding_time"`
	DeboardingPoint string           `json:"deboarding_point"`
	DeboardingTime  string           `json:"deboarding_time"`
	Passengers      []PassengerInput `json:"passengers"`
	PaymentMethod   string           `json:"payment_method"`
	TripDetails     TripDetails      `json:"trip_details"`
}

// MissingFields returns the names of required fields that are absent.
func (r *VehicleBookingRequest) MissingFields() []string {
	var missing []string
	if r.CoachID == "" {
		missing = append(missing, "coach_id")
	}
	if r.BoardingPoint == "" {
		missing = append(missing, "boarding_point")
	}
	if r.BoardingTime == "" {
		missing = append(missing, "boarding_time")
	}
	if r.DeboardingPoint == "" {
		missing = append(missing, "deboarding_point")
	}
	if r.DeboardingTime == "" {
		missing = append(missing, "deboarding_time")
	}
	if len(r.Passengers) == 0 {
		missing = append(missing, "passengers")
	}
	if r.PaymentMethod == "" {
		missing = append(missing, "payment_method")
	}
	return missing
}

// GuestInfo is the contact for an accommodation booking
type GuestInfo struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// AccommodationBookingRequest is the body of POST /hotel/book/:id
type AccommodationBookingRequest struct {
	RoomID         uuid.UUID   `json:"room_id"`
	CheckInDate    string      `json:"check_in_date"`
	CheckOutDate   string      `json:"check_out_date"`
	NumberOfRooms  int         `json:"number_of_rooms"`
	NumberOfGuests int         `json:"number_of_guests"`
	GuestInfo      GuestInfo   `json:"guest_info"`
	PaymentMethod  string      `json:"payment_method"`
	TripDetails    TripDetails `json:"trip_details"`
}

// MissingFields returns the names of required fields that are absent.
func (r *AccommodationBookingRequest) MissingFields() []string {
	var missing []string
	if r.RoomID == uuid.Nil {
		missing = append(missing, "room_id")
	}
	if r.CheckInDate == "" {
		missing = append(missing, "check_in_date")
	}
	if r.CheckOutDate == "" {
		missing = append(missing, "check_out_date")
	}
	if r.NumberOfRooms <= 0 {
		missing = append(missing, "number_of_rooms")
	}
	if r.NumberOfGuests <= 0 {
		missing = append(missing, "number_of_guests")
	}
	if r.GuestInfo.Name == "" {
		missing = append(missing, "guest_info.name")
	}
	if r.GuestInfo.Phone == "" {
		missing = append(missing, "guest_info.phone")
	}
	if r.PaymentMethod == "" {
		missing = append(missing, "payment_method")
	}
	return missing
}

// BookingConfirmation is returned after a successful booking
type BookingConfirmation struct {
	BookingID        uuid.UUID     `json:"booking_id"`
	BookingReference string        `json:"booking_reference"`
	TotalPrice       float64       `json:"total_price"`
	Status           BookingStatus `json:"status"`
	TripID           *uuid.UUID    `json:"trip_id,omitempty"`
}

// BookingDetails is one row of the booking list read path, a booking expanded
// with its items and first payment.
type BookingDetails struct {
	Booking
	VehicleItems       []VehicleItemDetails       `json:"vehicle_items"`
	AccommodationItems []AccommodationItemDetails `json:"accommodation_items"`
	Payment            *Payment                   `json:"payment,omitempty"`
}

// VehicleItemDetails is a vehicle leg joined with the vehicle's display name
type VehicleItemDetails struct {
	VehicleBookingItem
	VehicleName string      `json:"vehicle_name" db:"vehicle_name"`
	VehicleKind VehicleKind `json:"vehicle_kind" db:"vehicle_kind"`
}

// AccommodationItemDetails is a stay joined with the accommodation's name
type AccommodationItemDetails struct {
	AccommodationBookingItem
	AccommodationName string            `json:"accommodation_name" db:"accommodation_name"`
	AccommodationType AccommodationType `json:"accommodation_type" db:"accommodation_type"`
}
