package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tripweaver/booking-backend/internal/models"
)

// ErrBookingNotFound is returned when a booking does not exist for the user
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository handles booking database operations
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository creates a new BookingRepository
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// ============================================================================
// WRITE PATH
// ============================================================================

// CreateVehicleBooking creates a booking with its vehicle leg, passenger seat
// assignments, seat counter decrement and pending payment in one transaction.
// A newly requested trip is inserted on the same transaction so it rolls back
// with the booking. Any failure rolls the whole set back.
func (r *BookingRepository) CreateVehicleBooking(
	booking *models.Booking,
	newTrip *models.Trip,
	item *models.VehicleBookingItem,
	passengers []models.PassengerSeat,
	coachID string,
	payment *models.Payment,
) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Insert the requested trip, if any, and point the booking at it
	if newTrip != nil {
		if err := insertTrip(tx, newTrip); err != nil {
			return err
		}
		booking.TripID = &newTrip.ID
	}

	// 2. Insert booking root
	bookingQuery := `
		INSERT INTO bookings (user_id, trip_id, booking_reference, total_price, status, device_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowx(bookingQuery,
		booking.UserID, booking.TripID, booking.BookingReference,
		booking.TotalPrice, booking.Status, booking.DeviceInfo,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	// 3. Insert vehicle booking item
	itemQuery := `
		INSERT INTO vehicle_booking_items (
			vehicle_id, boarding_point, boarding_time,
			deboarding_point, deboarding_time, coach_type, price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRowx(itemQuery,
		item.VehicleID, item.BoardingPoint, item.BoardingTime,
		item.DeboardingPoint, item.DeboardingTime, item.CoachType,
		item.Price, item.Status,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create vehicle booking item: %w", err)
	}

	// 4. Link item to booking
	if err := insertBookingItem(tx, booking.ID, &item.ID, nil); err != nil {
		return err
	}

	// 5. Insert one passenger seat row per passenger
	for i := range passengers {
		passengers[i].VehicleItemID = item.ID

		seatQuery := `
			INSERT INTO passenger_seats (vehicle_item_id, seat_id, name, age, gender)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`

		err = tx.QueryRowx(seatQuery,
			passengers[i].VehicleItemID, passengers[i].SeatID,
			passengers[i].Name, passengers[i].Age, passengers[i].Gender,
		).Scan(&passengers[i].ID)
		if err != nil {
			return fmt.Errorf("failed to create passenger seat for %s: %w", passengers[i].Name, err)
		}
	}

	// 6. Decrement the coach seat counter atomically
	_, err = tx.Exec(`
		UPDATE coaches
		SET seats_available = seats_available - $1
		WHERE vehicle_id = $2 AND coach_id = $3`,
		len(passengers), item.VehicleID, coachID)
	if err != nil {
		return fmt.Errorf("failed to update seat availability: %w", err)
	}

	// 7. Insert pending payment
	if err := insertPayment(tx, booking.ID, payment); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CreateAccommodationBooking creates a booking with its stay, room assignments
// and pending payment in one transaction, inserting a newly requested trip on
// the same transaction. Room availability is always derived, so no counter is
// decremented here.
func (r *BookingRepository) CreateAccommodationBooking(
	booking *models.Booking,
	newTrip *models.Trip,
	item *models.AccommodationBookingItem,
	roomID uuid.UUID,
	numberOfRooms int,
	payment *models.Payment,
) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 1. Insert the requested trip, if any, and point the booking at it
	if newTrip != nil {
		if err := insertTrip(tx, newTrip); err != nil {
			return err
		}
		booking.TripID = &newTrip.ID
	}

	// 2. Insert booking root
	bookingQuery := `
		INSERT INTO bookings (user_id, trip_id, booking_reference, total_price, status, device_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err = tx.QueryRowx(bookingQuery,
		booking.UserID, booking.TripID, booking.BookingReference,
		booking.TotalPrice, booking.Status, booking.DeviceInfo,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	// 3. Insert accommodation booking item
	itemQuery := `
		INSERT INTO accommodation_booking_items (
			accommodation_id, check_in_date, check_out_date,
			contact_name, contact_phone, contact_email, price, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err = tx.QueryRowx(itemQuery,
		item.AccommodationID, item.CheckInDate, item.CheckOutDate,
		item.ContactName, item.ContactPhone, item.ContactEmail,
		item.Price, item.Status,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("failed to create accommodation booking item: %w", err)
	}

	// 4. Link item to booking
	if err := insertBookingItem(tx, booking.ID, nil, &item.ID); err != nil {
		return err
	}

	// 5. One assignment row per requested room; physical room numbers are
	// assigned at check-in and stay null here.
	for i := 0; i < numberOfRooms; i++ {
		_, err = tx.Exec(`
			INSERT INTO room_assignments (accom_item_id, room_id, room_number)
			VALUES ($1, $2, NULL)`,
			item.ID, roomID)
		if err != nil {
			return fmt.Errorf("failed to create room assignment: %w", err)
		}
	}

	// 6. Insert pending payment
	if err := insertPayment(tx, booking.ID, payment); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertBookingItem(tx *sqlx.Tx, bookingID uuid.UUID, vehicleItemID, accomItemID *uuid.UUID) error {
	bi := models.BookingItem{
		BookingID:           bookingID,
		VehicleItemID:       vehicleItemID,
		AccommodationItemID: accomItemID,
	}
	if !bi.Valid() {
		return fmt.Errorf("booking item must reference exactly one of vehicle item or accommodation item")
	}

	_, err := tx.Exec(`
		INSERT INTO booking_items (booking_id, vehicle_item_id, accommodation_item_id)
		VALUES ($1, $2, $3)`,
		bi.BookingID, bi.VehicleItemID, bi.AccommodationItemID)
	if err != nil {
		return fmt.Errorf("failed to create booking item: %w", err)
	}
	return nil
}

func insertPayment(tx *sqlx.Tx, bookingID uuid.UUID, payment *models.Payment) error {
	payment.BookingID = bookingID

	query := `
		INSERT INTO payments (booking_id, amount, paid, payment_method, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRowx(query,
		payment.BookingID, payment.Amount, payment.Paid,
		payment.PaymentMethod, payment.Status,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}
	return nil
}

// CancelBooking transitions a booking and its items to cancelled in one
// transaction. The coach seat counter is deliberately not restored; derived
// availability recovers because its queries skip cancelled items.
func (r *BookingRepository) CancelBooking(bookingID, userID uuid.UUID) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE bookings
		SET status = 'cancelled', updated_at = NOW()
		WHERE id = $1 AND user_id = $2`,
		bookingID, userID)
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to cancel booking: %w", err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	_, err = tx.Exec(`
		UPDATE vehicle_booking_items
		SET status = 'cancelled'
		WHERE id IN (SELECT vehicle_item_id FROM booking_items WHERE booking_id = $1 AND vehicle_item_id IS NOT NULL)`,
		bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel vehicle items: %w", err)
	}

	_, err = tx.Exec(`
		UPDATE accommodation_booking_items
		SET status = 'cancelled'
		WHERE id IN (SELECT accommodation_item_id FROM booking_items WHERE booking_id = $1 AND accommodation_item_id IS NOT NULL)`,
		bookingID)
	if err != nil {
		return fmt.Errorf("failed to cancel accommodation items: %w", err)
	}

	return tx.Commit()
}

// ============================================================================
// READ PATH
// ============================================================================

// GetBookingsByUserID retrieves a user's bookings, newest first
func (r *BookingRepository) GetBookingsByUserID(userID uuid.UUID) ([]models.Booking, error) {
	query := `
		SELECT id, user_id, trip_id, booking_reference, total_price, status,
		       device_info, created_at, updated_at
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var bookings []models.Booking
	err := r.db.Select(&bookings, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	return bookings, nil
}

// GetVehicleItemsByBooking retrieves a booking's vehicle legs joined with the
// vehicle display name.
func (r *BookingRepository) GetVehicleItemsByBooking(bookingID uuid.UUID) ([]models.VehicleItemDetails, error) {
	query := `
		SELECT vbi.id, vbi.vehicle_id, vbi.boarding_point, vbi.boarding_time,
		       vbi.deboarding_point, vbi.deboarding_time, vbi.coach_type,
		       vbi.price, vbi.status,
		       v.name AS vehicle_name, v.vehicle_kind
		FROM booking_items bi
		JOIN vehicle_booking_items vbi ON vbi.id = bi.vehicle_item_id
		JOIN vehicles v ON v.id = vbi.vehicle_id
		WHERE bi.booking_id = $1`

	var items []models.VehicleItemDetails
	err := r.db.Select(&items, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle items: %w", err)
	}
	return items, nil
}

// GetAccommodationItemsByBooking retrieves a booking's stays joined with the
// accommodation name.
func (r *BookingRepository) GetAccommodationItemsByBooking(bookingID uuid.UUID) ([]models.AccommodationItemDetails, error) {
	query := `
		SELECT abi.id, abi.accommodation_id, abi.check_in_date, abi.check_out_date,
		       abi.contact_name, abi.contact_phone, abi.contact_email,
		       abi.price, abi.status,
		       a.name AS accommodation_name, a.accommodation_type
		FROM booking_items bi
		JOIN accommodation_booking_items abi ON abi.id = bi.accommodation_item_id
		JOIN accommodations a ON a.id = abi.accommodation_id
		WHERE bi.booking_id = $1`

	var items []models.AccommodationItemDetails
	err := r.db.Select(&items, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accommodation items: %w", err)
	}
	return items, nil
}

// GetFirstPaymentByBooking retrieves the earliest-inserted payment row for a
// booking. Returns (nil, nil) when no payment exists.
func (r *BookingRepository) GetFirstPaymentByBooking(bookingID uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, booking_id, amount, paid, payment_method, status, transaction_id, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
		LIMIT 1`

	err := r.db.Get(payment, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch payment: %w", err)
	}
	return payment, nil
}
