package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tripweaver/booking-backend/internal/database"
)

// VehicleHandler handles vehicle search HTTP requests
type VehicleHandler struct {
	vehicleRepo   *database.VehicleRepository
	exposeDetails bool
	logger        *logrus.Logger
}

// NewVehicleHandler creates a new vehicle handler
func NewVehicleHandler(vehicleRepo *database.VehicleRepository, exposeDetails bool, logger *logrus.Logger) *VehicleHandler {
	return &VehicleHandler{vehicleRepo: vehicleRepo, exposeDetails: exposeDetails, logger: logger}
}

// List handles GET /api/v1/:product/list with optional from/to filters
func (h *VehicleHandler) List(c *gin.Context) {
	product := c.Param("product")
	kind, ok := vehicleKinds[product]
	if !ok {
		respondValidation(c, "Unknown product: "+product)
		return
	}

	from := c.Query("from")
	to := c.Query("to")

	vehicles, err := h.vehicleRepo.ListVehicles(kind, from, to)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "", vehicles)
}

// Coaches handles GET /api/v1/:product/coaches/:id
func (h *VehicleHandler) Coaches(c *gin.Context) {
	if _, ok := vehicleKinds[c.Param("product")]; !ok {
		respondValidation(c, "Unknown product: "+c.Param("product"))
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondValidation(c, "Invalid id format")
		return
	}

	coaches, err := h.vehicleRepo.GetCoachesByVehicle(vehicleID)
	if err != nil {
		respondError(c, h.logger, h.exposeDetails, err)
		return
	}

	respondOK(c, "", coaches)
}
