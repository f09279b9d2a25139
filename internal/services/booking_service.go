package services

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
	"github.com/tripweaver/booking-backend/internal/models"
	"github.com/tripweaver/booking-backend/pkg/reference"
)

const dateLayout = "2006-01-02"

// kindLabel renders a vehicle kind for user-facing messages ("Flight", "Train").
func kindLabel(kind models.VehicleKind) string {
	s := string(kind)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// BookingService runs the end-to-end booking workflow: validation,
// availability assertion, trip resolution and the transactional write.
// Flight, train and cruise bookings share one parameterized vehicle path.
type BookingService struct {
	vehicleRepo  *database.VehicleRepository
	bookingRepo  *database.BookingRepository
	availability *AvailabilityService
	tripResolver *TripResolver
	logger       *logrus.Logger
}

// NewBookingService creates a new BookingService
func NewBookingService(
	vehicleRepo *database.VehicleRepository,
	bookingRepo *database.BookingRepository,
	availability *AvailabilityService,
	tripResolver *TripResolver,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		vehicleRepo:  vehicleRepo,
		bookingRepo:  bookingRepo,
		availability: availability,
		tripResolver: tripResolver,
		logger:       logger,
	}
}

// ============================================================================
// VEHICLE BOOKING (flight / train / cruise)
// ============================================================================

// BookVehicle books seats on a vehicle of the given kind. Bus and cab booking
// entry points exist on the HTTP surface but are not implemented.
func (s *BookingService) BookVehicle(
	userID uuid.UUID,
	kind models.VehicleKind,
	vehicleID uuid.UUID,
	req *models.VehicleBookingRequest,
	deviceInfo *string,
) (*models.BookingConfirmation, error) {
	if !kind.Valid() {
		return nil, NewBookingError(KindValidationError, "Unknown vehicle kind: "+string(kind))
	}
	if kind == models.VehicleKindBus || kind == models.VehicleKindCab {
		return nil, NewBookingError(KindNotImplemented,
			fmt.Sprintf("%s booking is not implemented", kind))
	}

	// 1. Required fields
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, NewBookingError(KindValidationError,
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	// 2. Timestamps
	boardingTime, err := time.Parse(time.RFC3339, req.BoardingTime)
	if err != nil {
		return nil, NewBookingError(KindInvalidDateFormat, "Invalid boarding time format")
	}
	deboardingTime, err := time.Parse(time.RFC3339, req.DeboardingTime)
	if err != nil {
		return nil, NewBookingError(KindInvalidDateFormat, "Invalid deboarding time format")
	}
	boardingTime = boardingTime.UTC()
	deboardingTime = deboardingTime.UTC()

	// 3. Vehicle
	vehicle, err := s.vehicleRepo.GetVehicleByID(vehicleID, kind)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, NewBookingError(KindVehicleNotFound,
			fmt.Sprintf("%s not found", kindLabel(kind)))
	}
	if vehicle.Status != models.VehicleStatusActive {
		return nil, NewBookingError(KindVehicleUnavailable,
			fmt.Sprintf("%s is not available for booking", kindLabel(kind)))
	}

	// 4. Coach and headcount
	coach, err := s.vehicleRepo.GetCoach(vehicleID, req.CoachID)
	if err != nil {
		return nil, err
	}
	if coach == nil {
		return nil, NewBookingError(KindCoachNotFound,
			fmt.Sprintf("Coach %s not found", req.CoachID))
	}
	passengerCount := len(req.Passengers)
	if coach.SeatsAvailable < passengerCount {
		return nil, NewBookingError(KindInsufficientSeats,
			fmt.Sprintf("Only %d seat(s) left.", coach.SeatsAvailable))
	}

	// 5. Seat availability
	seatIDs := make([]uuid.UUID, passengerCount)
	for i, p := range req.Passengers {
		seatIDs[i] = p.SeatID
	}
	if err := s.availability.CheckSeatAvailability(vehicleID, req.CoachID, seatIDs); err != nil {
		return nil, err
	}

	// 6. Trip resolution; a new trip is inserted inside the booking transaction
	tripID, newTrip, err := s.tripResolver.ResolveTrip(userID, req.TripDetails, boardingTime, deboardingTime)
	if err != nil {
		return nil, err
	}

	// 7. Pricing
	totalPrice := coach.Price * float64(passengerCount)

	// 8. Transactional write
	booking := &models.Booking{
		UserID:           userID,
		TripID:           tripID,
		BookingReference: reference.New(),
		TotalPrice:       totalPrice,
		Status:           models.BookingStatusPending,
		DeviceInfo:       deviceInfo,
	}
	item := &models.VehicleBookingItem{
		VehicleID:       vehicleID,
		BoardingPoint:   req.BoardingPoint,
		BoardingTime:    boardingTime,
		DeboardingPoint: req.DeboardingPoint,
		DeboardingTime:  deboardingTime,
		CoachType:       coach.CoachType,
		Price:           totalPrice,
		Status:          models.ItemStatusPending,
	}
	passengers := make([]models.PassengerSeat, passengerCount)
	for i, p := range req.Passengers {
		passengers[i] = models.PassengerSeat{
			SeatID: p.SeatID,
			Name:   p.Name,
			Age:    p.Age,
			Gender: p.Gender,
		}
	}
	payment := &models.Payment{
		Amount:        totalPrice,
		Paid:          false,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPending,
	}

	if err := s.bookingRepo.CreateVehicleBooking(booking, newTrip, item, passengers, req.CoachID, payment); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":    userID,
			"vehicle_id": vehicleID,
			"kind":       kind,
		}).Error("Vehicle booking transaction failed")
		return nil, NewTransactionFailure(err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"reference":   booking.BookingReference,
		"user_id":     userID,
		"kind":        kind,
		"passengers":  passengerCount,
		"total_price": totalPrice,
	}).Info("Vehicle booking created")

	return &models.BookingConfirmation{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		TotalPrice:       totalPrice,
		Status:           booking.Status,
		TripID:           booking.TripID,
	}, nil
}

// ============================================================================
// ACCOMMODATION BOOKING (hotel / airbnb)
// ============================================================================

// BookAccommodation books rooms for a stay. Guest contact fields are validated
// before any database access.
func (s *BookingService) BookAccommodation(
	userID uuid.UUID,
	accommodationID uuid.UUID,
	req *models.AccommodationBookingRequest,
	deviceInfo *string,
) (*models.BookingConfirmation, error) {
	// 1. Required fields, including guest contact, before touching the store
	if missing := req.MissingFields(); len(missing) > 0 {
		return nil, NewBookingError(KindValidationError,
			"Missing required fields: "+strings.Join(missing, ", "))
	}

	// 2. Dates
	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, NewBookingError(KindInvalidDateFormat, "Invalid check-in date format")
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return nil, NewBookingError(KindInvalidDateFormat, "Invalid check-out date format")
	}

	// 3. Room availability for the range
	_, room, err := s.availability.CheckRoomAvailability(
		accommodationID, req.RoomID, checkIn, checkOut, req.NumberOfRooms, req.NumberOfGuests)
	if err != nil {
		return nil, err
	}

	// 4. Trip resolution; a new trip is inserted inside the booking transaction
	tripID, newTrip, err := s.tripResolver.ResolveTrip(userID, req.TripDetails, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	// 5. Pricing: nights is the ceiling of the stay length in days, minimum 1
	nights := int(math.Ceil(math.Abs(checkOut.Sub(checkIn).Hours()) / 24))
	if nights < 1 {
		nights = 1
	}
	totalPrice := room.Price * float64(nights) * float64(req.NumberOfRooms)

	// 6. Transactional write
	booking := &models.Booking{
		UserID:           userID,
		TripID:           tripID,
		BookingReference: reference.New(),
		TotalPrice:       totalPrice,
		Status:           models.BookingStatusPending,
		DeviceInfo:       deviceInfo,
	}
	item := &models.AccommodationBookingItem{
		AccommodationID: accommodationID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		ContactName:     req.GuestInfo.Name,
		ContactPhone:    req.GuestInfo.Phone,
		ContactEmail:    req.GuestInfo.Email,
		Price:           totalPrice,
		Status:          models.ItemStatusPending,
	}
	payment := &models.Payment{
		Amount:        totalPrice,
		Paid:          false,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentStatusPending,
	}

	if err := s.bookingRepo.CreateAccommodationBooking(booking, newTrip, item, req.RoomID, req.NumberOfRooms, payment); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"user_id":          userID,
			"accommodation_id": accommodationID,
		}).Error("Accommodation booking transaction failed")
		return nil, NewTransactionFailure(err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"reference":   booking.BookingReference,
		"user_id":     userID,
		"nights":      nights,
		"rooms":       req.NumberOfRooms,
		"total_price": totalPrice,
	}).Info("Accommodation booking created")

	return &models.BookingConfirmation{
		BookingID:        booking.ID,
		BookingReference: booking.BookingReference,
		TotalPrice:       totalPrice,
		Status:           booking.Status,
		TripID:           booking.TripID,
	}, nil
}

// ============================================================================
// CANCELLATION
// ============================================================================

// CancelBooking transitions a booking and its items to cancelled. The coach
// seat counter is not restored on cancellation.
func (s *BookingService) CancelBooking(userID, bookingID uuid.UUID) error {
	err := s.bookingRepo.CancelBooking(bookingID, userID)
	if err == database.ErrBookingNotFound {
		return NewBookingError(KindBookingNotFound, "Booking not found")
	}
	if err != nil {
		s.logger.WithError(err).WithField("booking_id", bookingID).Error("Cancel booking failed")
		return NewTransactionFailure(err)
	}

	s.logger.WithFields(logrus.Fields{
		"booking_id": bookingID,
		"user_id":    userID,
	}).Info("Booking cancelled")
	return nil
}
