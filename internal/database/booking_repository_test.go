package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripweaver/booking-backend/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestCreateVehicleBooking(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookingRepository(sqlxDB)

	t.Run("Success", func(t *testing.T) {
		bookingID := uuid.New()
		itemID := uuid.New()
		now := time.Now()

		booking := &models.Booking{
			UserID:           uuid.New(),
			BookingReference: "AB12CD34",
			TotalPrice:       250.00,
			Status:           models.BookingStatusPending,
		}
		item := &models.VehicleBookingItem{
			VehicleID:       uuid.New(),
			BoardingPoint:   "Colombo Fort",
			BoardingTime:    now,
			DeboardingPoint: "Kandy",
			DeboardingTime:  now.Add(3 * time.Hour),
			CoachType:       "first_class",
			Price:           250.00,
			Status:          models.ItemStatusPending,
		}
		passengers := []models.PassengerSeat{
			{SeatID: uuid.New(), Name: "John Doe", Age: 30, Gender: "male"},
			{SeatID: uuid.New(), Name: "Jane Doe", Age: 28, Gender: "female"},
		}
		payment := &models.Payment{
			Amount:        250.00,
			Paid:          false,
			PaymentMethod: "card",
			Status:        models.PaymentStatusPending,
		}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WithArgs(booking.UserID, booking.TripID, booking.BookingReference,
				booking.TotalPrice, booking.Status, booking.DeviceInfo).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(bookingID, now, now))
		mock.ExpectQuery(`INSERT INTO vehicle_booking_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(itemID))
		mock.ExpectExec(`INSERT INTO booking_items`).
			WithArgs(bookingID, itemID, nil).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO passenger_seats`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectQuery(`INSERT INTO passenger_seats`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectExec(`UPDATE coaches`).
			WithArgs(2, item.VehicleID, "C1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO payments`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), now))
		mock.ExpectCommit()

		err := repo.CreateVehicleBooking(booking, nil, item, passengers, "C1", payment)
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, itemID, passengers[0].VehicleItemID)
		assert.Equal(t, bookingID, payment.BookingID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Passenger Insert Fails Rolls Back", func(t *testing.T) {
		booking := &models.Booking{UserID: uuid.New(), BookingReference: "XY99ZZ11", Status: models.BookingStatusPending}
		item := &models.VehicleBookingItem{VehicleID: uuid.New(), Status: models.ItemStatusPending}
		passengers := []models.PassengerSeat{{SeatID: uuid.New(), Name: "John Doe", Age: 30, Gender: "male"}}
		payment := &models.Payment{PaymentMethod: "card", Status: models.PaymentStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(uuid.New(), time.Now(), time.Now()))
		mock.ExpectQuery(`INSERT INTO vehicle_booking_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New()))
		mock.ExpectExec(`INSERT INTO booking_items`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO passenger_seats`).
			WillReturnError(fmt.Errorf("seat constraint violation"))
		mock.ExpectRollback()

		err := repo.CreateVehicleBooking(booking, nil, item, passengers, "C1", payment)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create passenger seat")

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("New Trip Rolls Back With Booking", func(t *testing.T) {
		userID := uuid.New()
		booking := &models.Booking{UserID: userID, BookingReference: "QR44ST88", Status: models.BookingStatusPending}
		newTrip := &models.Trip{
			UserID:    userID,
			Name:      "Hill Country Loop",
			Status:    models.TripStatusPlanning,
			StartDate: time.Now(),
			EndDate:   time.Now().Add(6 * time.Hour),
		}
		item := &models.VehicleBookingItem{VehicleID: uuid.New(), Status: models.ItemStatusPending}
		passengers := []models.PassengerSeat{{SeatID: uuid.New(), Name: "John Doe", Age: 30, Gender: "male"}}
		payment := &models.Payment{PaymentMethod: "card", Status: models.PaymentStatusPending}

		// the trip insert happens after Begin so the rollback covers it
		tripID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO trips`).
			WithArgs(userID, "Hill Country Loop", models.TripStatusPlanning, newTrip.StartDate, newTrip.EndDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(tripID, time.Now()))
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnError(fmt.Errorf("deadlock detected"))
		mock.ExpectRollback()

		err := repo.CreateVehicleBooking(booking, newTrip, item, passengers, "C1", payment)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create booking")

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreateAccommodationBooking(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookingRepository(sqlxDB)

	t.Run("Success Creates One Assignment Per Room", func(t *testing.T) {
		bookingID := uuid.New()
		itemID := uuid.New()
		roomID := uuid.New()
		now := time.Now()

		booking := &models.Booking{
			UserID:           uuid.New(),
			BookingReference: "HT56LM78",
			TotalPrice:       600.00,
			Status:           models.BookingStatusPending,
		}
		item := &models.AccommodationBookingItem{
			AccommodationID: uuid.New(),
			CheckInDate:     now,
			CheckOutDate:    now.AddDate(0, 0, 2),
			ContactName:     "Jane Doe",
			ContactPhone:    "+94771234567",
			Price:           600.00,
			Status:          models.ItemStatusPending,
		}
		payment := &models.Payment{Amount: 600.00, PaymentMethod: "card", Status: models.PaymentStatusPending}

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO bookings`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
				AddRow(bookingID, now, now))
		mock.ExpectQuery(`INSERT INTO accommodation_booking_items`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(itemID))
		mock.ExpectExec(`INSERT INTO booking_items`).
			WithArgs(bookingID, nil, itemID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO room_assignments`).
			WithArgs(itemID, roomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO room_assignments`).
			WithArgs(itemID, roomID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO payments`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), now))
		mock.ExpectCommit()

		err := repo.CreateAccommodationBooking(booking, nil, item, roomID, 2, payment)
		require.NoError(t, err)
		assert.Equal(t, bookingID, booking.ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCancelBooking(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookingRepository(sqlxDB)

	bookingID := uuid.New()
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE vehicle_booking_items`).
			WithArgs(bookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE accommodation_booking_items`).
			WithArgs(bookingID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.CancelBooking(bookingID, userID)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found For User", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE bookings`).
			WithArgs(bookingID, userID).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.CancelBooking(bookingID, userID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGetFirstPaymentByBooking(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	repo := NewBookingRepository(sqlxDB)

	bookingID := uuid.New()

	t.Run("Returns Earliest Payment", func(t *testing.T) {
		paymentID := uuid.New()
		mock.ExpectQuery(`SELECT (.+) FROM payments`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "booking_id", "amount", "paid", "payment_method", "status", "transaction_id", "created_at",
			}).AddRow(paymentID, bookingID, 100.00, false, "card", "pending", nil, time.Now()))

		payment, err := repo.GetFirstPaymentByBooking(bookingID)
		require.NoError(t, err)
		require.NotNil(t, payment)
		assert.Equal(t, paymentID, payment.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No Payment Returns Nil", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM payments`).
			WithArgs(bookingID).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		payment, err := repo.GetFirstPaymentByBooking(bookingID)
		require.NoError(t, err)
		assert.Nil(t, payment)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
