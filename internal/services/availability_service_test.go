package services

import (
	"io"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripweaver/booking-backend/internal/database"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func newAvailabilityService(t *testing.T) (*AvailabilityService, sqlmock.Sqlmock) {
	sqlxDB, mock := newMockDB(t)
	svc := NewAvailabilityService(
		database.NewVehicleRepository(sqlxDB),
		database.NewAccommodationRepository(sqlxDB),
		testLogger(),
	)
	return svc, mock
}

func TestCheckSeatAvailability(t *testing.T) {
	vehicleID := uuid.New()
	seatIDs := []uuid.UUID{uuid.New(), uuid.New()}

	t.Run("All Seats Free", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT DISTINCT ps.seat_id FROM passenger_seats`).
			WillReturnRows(sqlmock.NewRows([]string{"seat_id"}))

		err := svc.CheckSeatAvailability(vehicleID, "C1", seatIDs)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Not In Coach", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := svc.CheckSeatAvailability(vehicleID, "C1", seatIDs)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindSeatNotFound, bErr.Kind)
		assert.Contains(t, bErr.Message, "1 seat(s) not found in coach C1")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Seat Already Booked", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM seats`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT DISTINCT ps.seat_id FROM passenger_seats`).
			WillReturnRows(sqlmock.NewRows([]string{"seat_id"}).AddRow(seatIDs[1]))

		err := svc.CheckSeatAvailability(vehicleID, "C1", seatIDs)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindSeatAlreadyBooked, bErr.Kind)
		assert.Equal(t, []uuid.UUID{seatIDs[1]}, bErr.Detail)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCheckRoomAvailability(t *testing.T) {
	accommodationID := uuid.New()
	roomID := uuid.New()
	checkIn := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 6, 4, 0, 0, 0, 0, time.UTC)

	roomColumns := []string{"id", "accommodation_id", "room_type", "rooms_available", "ppl_accommodated", "price"}

	t.Run("Rooms Remain", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT (.+) FROM rooms`).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(roomID, accommodationID, "deluxe", 5, 2, 100.00))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT ra.id\) FROM room_assignments`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		available, room, err := svc.CheckRoomAvailability(accommodationID, roomID, checkIn, checkOut, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, available)
		assert.Equal(t, 100.00, room.Price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Room Not Found", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT (.+) FROM rooms`).
			WillReturnRows(sqlmock.NewRows(roomColumns))

		_, _, err := svc.CheckRoomAvailability(accommodationID, roomID, checkIn, checkOut, 1, 1)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindRoomNotFound, bErr.Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Guests Exceed Room Capacity", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT (.+) FROM rooms`).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(roomID, accommodationID, "single", 5, 1, 50.00))

		// capacity is rejected before any overlap query runs
		_, _, err := svc.CheckRoomAvailability(accommodationID, roomID, checkIn, checkOut, 1, 3)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindCapacityExceeded, bErr.Kind)
		assert.Contains(t, bErr.Message, "at most 1 guest(s)")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Back To Back Stay Counts As Overlap", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		// A prior stay checks out 2026-06-01, the exact day this request
		// checks in. The inclusive bounds of the overlap predicate count that
		// stay, so the room's last unit reads as taken.
		mock.ExpectQuery(`SELECT (.+) FROM rooms`).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(roomID, accommodationID, "deluxe", 1, 2, 100.00))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT ra.id\) FROM room_assignments`).
			WithArgs(roomID, checkIn, checkOut).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		_, _, err := svc.CheckRoomAvailability(accommodationID, roomID, checkIn, checkOut, 1, 2)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindInsufficientRooms, bErr.Kind)
		assert.Equal(t, "Only 0 room(s) left for the selected dates.", bErr.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insufficient Rooms For Dates", func(t *testing.T) {
		svc, mock := newAvailabilityService(t)

		mock.ExpectQuery(`SELECT (.+) FROM rooms`).
			WillReturnRows(sqlmock.NewRows(roomColumns).
				AddRow(roomID, accommodationID, "deluxe", 5, 2, 100.00))
		mock.ExpectQuery(`SELECT COUNT\(DISTINCT ra.id\) FROM room_assignments`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

		_, _, err := svc.CheckRoomAvailability(accommodationID, roomID, checkIn, checkOut, 2, 2)
		var bErr *BookingError
		require.ErrorAs(t, err, &bErr)
		assert.Equal(t, KindInsufficientRooms, bErr.Kind)
		assert.Equal(t, "Only 1 room(s) left for the selected dates.", bErr.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
