package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tripweaver/booking-backend/internal/models"
)

// AccommodationRepository handles accommodation and room queries
type AccommodationRepository struct {
	db *sqlx.DB
}

// NewAccommodationRepository creates a new AccommodationRepository
func NewAccommodationRepository(db *sqlx.DB) *AccommodationRepository {
	return &AccommodationRepository{db: db}
}

// GetAccommodationByID retrieves an accommodation by id.
// Returns (nil, nil) when no such accommodation exists.
func (r *AccommodationRepository) GetAccommodationByID(id uuid.UUID) (*models.Accommodation, error) {
	accom := &models.Accommodation{}
	query := `
		SELECT id, name, accommodation_type, address, city, created_at
		FROM accommodations
		WHERE id = $1`

	err := r.db.Get(accom, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accommodation: %w", err)
	}
	return accom, nil
}

// GetRoom retrieves a room under an accommodation.
// Returns (nil, nil) when no such room exists.
func (r *AccommodationRepository) GetRoom(accommodationID, roomID uuid.UUID) (*models.Room, error) {
	room := &models.Room{}
	query := `
		SELECT id, accommodation_id, room_type, rooms_available, ppl_accommodated, price
		FROM rooms
		WHERE id = $1 AND accommodation_id = $2`

	err := r.db.Get(room, query, roomID, accommodationID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}
	return room, nil
}

// CountOverlappingAssignments counts distinct room assignments of the room
// whose owning stay is not cancelled and overlaps the requested range.
//
// The overlap test is intentionally the three OR'd range comparisons with
// inclusive bounds: a stay whose check-out equals the requested check-in
// counts as overlapping. Callers rely on that boundary behavior.
func (r *AccommodationRepository) CountOverlappingAssignments(roomID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	var count int
	query := `
		SELECT COUNT(DISTINCT ra.id)
		FROM room_assignments ra
		JOIN accommodation_booking_items abi ON abi.id = ra.accom_item_id
		WHERE ra.room_id = $1
		  AND abi.status != 'cancelled'
		  AND (
			(abi.check_in_date <= $2 AND abi.check_out_date >= $2)
			OR (abi.check_in_date <= $3 AND abi.check_out_date >= $3)
			OR (abi.check_in_date >= $2 AND abi.check_out_date <= $3)
		  )`

	err := r.db.Get(&count, query, roomID, checkIn, checkOut)
	if err != nil {
		return 0, fmt.Errorf("failed to count room assignments: %w", err)
	}
	return count, nil
}

// ListAccommodations retrieves accommodations with their rooms, optionally
// filtered by type.
func (r *AccommodationRepository) ListAccommodations(accomType models.AccommodationType) ([]models.Accommodation, error) {
	query := `
		SELECT id, name, accommodation_type, address, city, created_at
		FROM accommodations`
	args := []interface{}{}
	if accomType != "" {
		query += ` WHERE accommodation_type = $1`
		args = append(args, accomType)
	}
	query += ` ORDER BY name`

	var accoms []models.Accommodation
	err := r.db.Select(&accoms, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list accommodations: %w", err)
	}

	for i := range accoms {
		rooms, err := r.GetRoomsByAccommodation(accoms[i].ID)
		if err != nil {
			return nil, err
		}
		accoms[i].Rooms = rooms
	}
	return accoms, nil
}

// GetRoomsByAccommodation retrieves all rooms of an accommodation
func (r *AccommodationRepository) GetRoomsByAccommodation(accommodationID uuid.UUID) ([]models.Room, error) {
	query := `
		SELECT id, accommodation_id, room_type, rooms_available, ppl_accommodated, price
		FROM rooms
		WHERE accommodation_id = $1
		ORDER BY room_type`

	var rooms []models.Room
	err := r.db.Select(&rooms, query, accommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	return rooms, nil
}
