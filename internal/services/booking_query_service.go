package services

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
	"github.com/tripweaver/booking-backend/internal/models"
)

// BookingQueryService serves the booking read paths. It is separate from the
// write workflow so the list endpoint never touches availability or pricing.
type BookingQueryService struct {
	bookingRepo *database.BookingRepository
	logger      *logrus.Logger
}

// NewBookingQueryService creates a new BookingQueryService
func NewBookingQueryService(bookingRepo *database.BookingRepository, logger *logrus.Logger) *BookingQueryService {
	return &BookingQueryService{bookingRepo: bookingRepo, logger: logger}
}

// ListBookings returns the user's bookings, newest first, each expanded with
// its vehicle legs, accommodation stays and first payment. A booking with no
// payment row keeps a nil Payment rather than failing the listing.
func (s *BookingQueryService) ListBookings(userID uuid.UUID) ([]models.BookingDetails, error) {
	bookings, err := s.bookingRepo.GetBookingsByUserID(userID)
	if err != nil {
		return nil, err
	}

	details := make([]models.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		vehicleItems, err := s.bookingRepo.GetVehicleItemsByBooking(b.ID)
		if err != nil {
			return nil, err
		}
		accomItems, err := s.bookingRepo.GetAccommodationItemsByBooking(b.ID)
		if err != nil {
			return nil, err
		}
		payment, err := s.bookingRepo.GetFirstPaymentByBooking(b.ID)
		if err != nil {
			return nil, err
		}

		details = append(details, models.BookingDetails{
			Booking:            b,
			VehicleItems:       vehicleItems,
			AccommodationItems: accomItems,
			Payment:            payment,
		})
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"bookings": len(details),
	}).Debug("Listed bookings")

	return details, nil
}
