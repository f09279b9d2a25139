package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
	"github.com/tripweaver/booking-backend/internal/models"
)

// TripResolver attaches bookings to user trip groupings: it creates a new trip
// on request, validates ownership of an existing one, or yields no trip.
type TripResolver struct {
	tripRepo *database.TripRepository
	logger   *logrus.Logger
}

// NewTripResolver creates a new TripResolver
func NewTripResolver(tripRepo *database.TripRepository, logger *logrus.Logger) *TripResolver {
	return &TripResolver{tripRepo: tripRepo, logger: logger}
}

// ResolveTrip returns the id of the existing trip the booking should
// reference, or a new trip row for the booking transaction to insert, or
// neither when no trip association was requested. A missing trip and a trip
// owned by another user produce the same TripNotFound error.
func (r *TripResolver) ResolveTrip(
	userID uuid.UUID,
	details models.TripDetails,
	windowStart, windowEnd time.Time,
) (*uuid.UUID, *models.Trip, error) {
	if details.CreateNewTrip && details.NewTripName != "" {
		trip := &models.Trip{
			UserID:    userID,
			Name:      details.NewTripName,
			Status:    models.TripStatusPlanning,
			StartDate: windowStart,
			EndDate:   windowEnd,
		}

		r.logger.WithFields(logrus.Fields{
			"trip_name": trip.Name,
			"user_id":   userID,
		}).Debug("New trip requested for booking")
		return nil, trip, nil
	}

	if details.TripID != nil {
		trip, err := r.tripRepo.GetTripByIDAndUser(*details.TripID, userID)
		if err != nil {
			return nil, nil, err
		}
		if trip == nil {
			return nil, nil, NewBookingError(KindTripNotFound, "Trip not found")
		}
		return &trip.ID, nil, nil
	}

	return nil, nil, nil
}
