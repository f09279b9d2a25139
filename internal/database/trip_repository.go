package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/tripweaver/booking-backend/internal/models"
)

// TripRepository handles trip grouping database operations
type TripRepository struct {
	db *sqlx.DB
}

// NewTripRepository creates a new TripRepository
func NewTripRepository(db *sqlx.DB) *TripRepository {
	return &TripRepository{db: db}
}

// insertTrip inserts a new trip on the booking transaction and fills in its
// generated id and timestamp. Trips are only ever created alongside a booking,
// so the insert must roll back with it.
func insertTrip(tx *sqlx.Tx, trip *models.Trip) error {
	query := `
		INSERT INTO trips (user_id, name, status, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := tx.QueryRowx(query,
		trip.UserID, trip.Name, trip.Status, trip.StartDate, trip.EndDate,
	).Scan(&trip.ID, &trip.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}
	return nil
}

// GetTripByIDAndUser retrieves a trip scoped to its owner.
// Returns (nil, nil) when the trip does not exist or belongs to another user;
// callers must not distinguish the two cases.
func (r *TripRepository) GetTripByIDAndUser(tripID, userID uuid.UUID) (*models.Trip, error) {
	trip := &models.Trip{}
	query := `
		SELECT id, user_id, name, status, start_date, end_date, created_at
		FROM trips
		WHERE id = $1 AND user_id = $2`

	err := r.db.Get(trip, query, tripID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trip: %w", err)
	}
	return trip, nil
}
