package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
	"github.com/tripweaver/booking-backend/internal/models"
)

// AvailabilityService answers seat and room capacity questions. It only reads;
// there is no locking between a check and the subsequent insert, so two
// concurrent bookings can both pass the same check.
type AvailabilityService struct {
	vehicleRepo *database.VehicleRepository
	accomRepo   *database.AccommodationRepository
	logger      *logrus.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	vehicleRepo *database.VehicleRepository,
	accomRepo *database.AccommodationRepository,
	logger *logrus.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		vehicleRepo: vehicleRepo,
		accomRepo:   accomRepo,
		logger:      logger,
	}
}

// CheckSeatAvailability verifies that every requested seat exists under the
// coach and that none carries a non-cancelled passenger assignment.
func (s *AvailabilityService) CheckSeatAvailability(vehicleID uuid.UUID, coachID string, seatIDs []uuid.UUID) error {
	existing, err := s.vehicleRepo.CountSeatsInCoach(vehicleID, coachID, seatIDs)
	if err != nil {
		return err
	}
	if existing != len(seatIDs) {
		missing := len(seatIDs) - existing
		return NewBookingError(KindSeatNotFound,
			fmt.Sprintf("%d seat(s) not found in coach %s", missing, coachID))
	}

	conflicting, err := s.vehicleRepo.GetConflictingSeatIDs(seatIDs)
	if err != nil {
		return err
	}
	if len(conflicting) > 0 {
		s.logger.WithFields(logrus.Fields{
			"vehicle_id": vehicleID,
			"coach_id":   coachID,
			"conflicts":  len(conflicting),
		}).Warn("Seat availability check failed")

		bErr := NewBookingError(KindSeatAlreadyBooked,
			fmt.Sprintf("%d seat(s) already booked", len(conflicting)))
		bErr.Detail = conflicting
		return bErr
	}

	return nil
}

// CheckRoomAvailability loads the room and computes how many instances remain
// free for the date range. Availability is derived per request; nothing is
// cached or decremented for rooms.
func (s *AvailabilityService) CheckRoomAvailability(
	accommodationID, roomID uuid.UUID,
	checkIn, checkOut time.Time,
	requestedRooms, requestedGuests int,
) (int, *models.Room, error) {
	room, err := s.accomRepo.GetRoom(accommodationID, roomID)
	if err != nil {
		return 0, nil, err
	}
	if room == nil {
		return 0, nil, NewBookingError(KindRoomNotFound, "Room not found")
	}

	if requestedGuests > room.PplAccommodated {
		return 0, nil, NewBookingError(KindCapacityExceeded,
			fmt.Sprintf("Room accommodates at most %d guest(s)", room.PplAccommodated))
	}

	occupied, err := s.accomRepo.CountOverlappingAssignments(roomID, checkIn, checkOut)
	if err != nil {
		return 0, nil, err
	}

	available := room.RoomsAvailable - occupied
	if available < requestedRooms {
		if available < 0 {
			available = 0
		}
		return available, room, NewBookingError(KindInsufficientRooms,
			fmt.Sprintf("Only %d room(s) left for the selected dates.", available))
	}

	return available, room, nil
}
