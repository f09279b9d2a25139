package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/tripweaver/booking-backend/internal/models"
)

// VehicleRepository handles vehicle, coach, seat and stop queries
type VehicleRepository struct {
	db *sqlx.DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// GetVehicleByID retrieves a vehicle by id and expected kind.
// Returns (nil, nil) when no such vehicle exists.
func (r *VehicleRepository) GetVehicleByID(id uuid.UUID, kind models.VehicleKind) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	query := `
		SELECT id, name, vehicle_kind, status, seat_capacity, created_at, updated_at
		FROM vehicles
		WHERE id = $1 AND vehicle_kind = $2`

	err := r.db.Get(vehicle, query, id, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}
	return vehicle, nil
}

// GetCoach retrieves a coach by its composite key.
// Returns (nil, nil) when no such coach exists.
func (r *VehicleRepository) GetCoach(vehicleID uuid.UUID, coachID string) (*models.Coach, error) {
	coach := &models.Coach{}
	query := `
		SELECT vehicle_id, coach_id, coach_type, seats_available, price
		FROM coaches
		WHERE vehicle_id = $1 AND coach_id = $2`

	err := r.db.Get(coach, query, vehicleID, coachID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coach: %w", err)
	}
	return coach, nil
}

// GetCoachesByVehicle retrieves all coaches of a vehicle
func (r *VehicleRepository) GetCoachesByVehicle(vehicleID uuid.UUID) ([]models.Coach, error) {
	query := `
		SELECT vehicle_id, coach_id, coach_type, seats_available, price
		FROM coaches
		WHERE vehicle_id = $1
		ORDER BY coach_id`

	var coaches []models.Coach
	err := r.db.Select(&coaches, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch coaches: %w", err)
	}
	return coaches, nil
}

// CountSeatsInCoach counts how many of the given seat ids exist under the coach
func (r *VehicleRepository) CountSeatsInCoach(vehicleID uuid.UUID, coachID string, seatIDs []uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM seats
		WHERE vehicle_id = $1 AND coach_id = $2 AND id = ANY($3)`

	err := r.db.Get(&count, query, vehicleID, coachID, pq.Array(uuidStrings(seatIDs)))
	if err != nil {
		return 0, fmt.Errorf("failed to count seats: %w", err)
	}
	return count, nil
}

// GetConflictingSeatIDs returns the subset of seat ids that already carry a
// passenger assignment on a non-cancelled vehicle booking item.
func (r *VehicleRepository) GetConflictingSeatIDs(seatIDs []uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT DISTINCT ps.seat_id
		FROM passenger_seats ps
		JOIN vehicle_booking_items vbi ON vbi.id = ps.vehicle_item_id
		WHERE ps.seat_id = ANY($1) AND vbi.status != 'cancelled'`

	var conflicting []uuid.UUID
	err := r.db.Select(&conflicting, query, pq.Array(uuidStrings(seatIDs)))
	if err != nil {
		return nil, fmt.Errorf("failed to check seat assignments: %w", err)
	}
	return conflicting, nil
}

// ListVehicles retrieves active vehicles of a kind with derived
// origin/destination (lowest/highest stop order). When from and to are given,
// only vehicles passing from before to are returned.
func (r *VehicleRepository) ListVehicles(kind models.VehicleKind, from, to string) ([]models.VehicleSummary, error) {
	query := `
		SELECT v.id, v.name, v.vehicle_kind,
		       o.station_name AS origin, d.station_name AS destination,
		       o.departure_time AS departure_time, d.arrival_time AS arrival_time
		FROM vehicles v
		JOIN stops o ON o.vehicle_id = v.id
		  AND o.stop_order = (SELECT MIN(stop_order) FROM stops WHERE vehicle_id = v.id)
		JOIN stops d ON d.vehicle_id = v.id
		  AND d.stop_order = (SELECT MAX(stop_order) FROM stops WHERE vehicle_id = v.id)
		WHERE v.vehicle_kind = $1 AND v.status = 'active'`

	args := []interface{}{kind}
	if from != "" && to != "" {
		query += `
		  AND EXISTS (
			SELECT 1 FROM stops f
			JOIN stops t ON t.vehicle_id = f.vehicle_id
			WHERE f.vehicle_id = v.id
			  AND f.station_name = $2 AND t.station_name = $3
			  AND f.stop_order < t.stop_order
		  )`
		args = append(args, from, to)
	}
	query += `
		ORDER BY o.departure_time`

	var vehicles []models.VehicleSummary
	err := r.db.Select(&vehicles, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	return vehicles, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
