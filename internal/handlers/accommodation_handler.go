package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
)

// AccommodationHandler handles accommodation search HTTP requests
type AccommodationHandler struct {
	accomRepo     *database.AccommodationRepository
	exposeDetails bool
	logger        *logrus.Logger
}

// NewAccommodationHandler creates a new accommodation handler
func NewAccommodationHandler(accomRepo *database.AccommodationRepository, exposeDetails bool, logger *logrus.Logger) *AccommodationHandler {
	return &AccommodationHandler{accomRepo: accomRepo, exposeDetails: exposeDetails, logger: logger}
}

// List handles GET /api/v1/:product/list for hotel and airbnb
func (h *AccommodationHandler) List(c *gin.Context) {
	accomType, ok := accommodationTypes[c.Param("product")]
	if !ok {
		respondValidation(c, "Unknown product: "+c.Param("product"))
		return
	}

	accommodations, err := h.accomRepo.ListAccommodations(accomType)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "", accommodations)
}

// Rooms handles GET /api/v1/:product/rooms/:id
func (h *AccommodationHandler) Rooms(c *gin.Context) {
	if _, ok := accommodationTypes[c.Param("product")]; !ok {
		respondValidation(c, "Unknown product: "+c.Param("product"))
		return
	}

	accommodationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid id format")
		return
	}

	accom, err := h.accomRepo.GetAccommodationByID(accommodationID)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}
	if accom == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Success: false,
			Error:   "AccommodationNotFound",
			Message: "Accommodation not found",
		})
		return
	}

	rooms, err := h.accomRepo.GetRoomsByAccommodation(accommodationID)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "", rooms)
}
