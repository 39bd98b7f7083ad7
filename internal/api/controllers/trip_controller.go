package controllers

import (
	"github.com/gin-gonic/gin"

	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// GetActiveTrip godoc
// @Summary Get the active trip for a group
// @Tags Trips
// @Produce json
// @Param group_id path string true "Group ID"
// @Success 200 {object} utils.APIResponse
// @Router /groups/{group_id}/trip [get]
func (t *TripController) GetActiveTrip(c *gin.Context) {
	trip, err := t.tripService.GetActiveTrip(c.Request.Context(), c.Param("group_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip retrieved successfully")
}

// GetTripDetail godoc
// @Summary Get a trip with its flights, hotels and itinerary
// @Tags Trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Router /trips/{id} [get]
func (t *TripController) GetTripDetail(c *gin.Context) {
	detail, err := t.tripService.GetTripDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, detail, "Trip detail retrieved successfully")
}
