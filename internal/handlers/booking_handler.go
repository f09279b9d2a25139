package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/middleware"
	"github.com/tripweaver/booking-backend/internal/models"
	"github.com/tripweaver/booking-backend/internal/services"
	"github.com/tripweaver/booking-backend/internal/utils"
)

// BookingHandler handles booking-related HTTP requests. One handler serves
// every product vertical; the :product path segment selects the workflow.
type BookingHandler struct {
	bookingService *services.BookingService
	queryService   *services.BookingQueryService
	exposeDetails  bool
	logger         *logrus.Logger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(
	bookingService *services.BookingService,
	queryService *services.BookingQueryService,
	exposeDetails bool,
	logger *logrus.Logger,
) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		queryService:   queryService,
		exposeDetails:  exposeDetails,
		logger:         logger,
	}
}

// vehicleKinds maps the :product path segment to a vehicle kind.
var vehicleKinds = map[string]models.VehicleKind{
	"flight": models.VehicleKindFlight,
	"train":  models.VehicleKindTrain,
	"bus":    models.VehicleKindBus,
	"cab":    models.VehicleKindCab,
	"cruise": models.VehicleKindCruise,
}

// accommodationTypes maps the :product path segment to an accommodation type.
var accommodationTypes = map[string]models.AccommodationType{
	"hotel":  models.AccommodationTypeHotel,
	"airbnb": models.AccommodationTypeAirbnb,
}

// Book handles POST /api/v1/:product/book/:id
func (h *BookingHandler) Book(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		respondUnauthorized(c)
		return
	}

	product := c.Param("product")
	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid id format")
		return
	}

	deviceInfo := utils.DeviceSummary(c.GetHeader("User-Agent"))

	if kind, ok := vehicleKinds[product]; ok {
		var req models.VehicleBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		confirmation, err := h.bookingService.BookVehicle(userCtx.UserID, kind, targetID, &req, deviceInfo)
		if err != nil {
			respondError(c, h.logger, h.exposeDetails, err)
			return
		}
		respondCreated(c, "Booking created", confirmation)
		return
	}

	if _, ok := accommodationTypes[product]; ok {
		var req models.AccommodationBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, "Invalid request body: "+err.Error())
			return
		}

		confirmation, err := h.bookingService.BookAccommodation(userCtx.UserID, targetID, &req, deviceInfo)
		if err != nil {
			respondError(c, h.logger, h.exposeDetails, err)
			return
		}
		respondCreated(c, "Booking created", confirmation)
		return
	}

	respondValidation(c, "Unknown product: "+product)
}

// Cancel handles POST /api/v1/booking/cancel/:id
func (h *BookingHandler) Cancel(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		respondUnauthorized(c)
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid booking id format")
		return
	}

	if err := h.bookingService.CancelBooking(userCtx.UserID, bookingID); err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "Booking cancelled", nil)
}

// List handles GET /api/v1/booking/list
func (h *BookingHandler) List(c *gin.Context) {
	userCtx, exists := middleware.GetUserContext(c)
	if !exists {
		respondUnauthorized(c)
		return
	}

	bookings, err := h.queryService.ListBookings(userCtx.UserID)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "", bookings)
}
