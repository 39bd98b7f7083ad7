package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type VoteController struct {
	voteService services.VoteServiceInterface
}

func NewVoteController(voteService services.VoteServiceInterface) *VoteController {
	return &VoteController{
		voteService: voteService,
	}
}

// CastVote godoc
// @Summary Cast or change a vote on a trip
// @Tags Votes
// @Accept json
// @Produce json
// @Param request body request_models.CastVoteRequest true "Vote payload"
// @Success 200 {object} utils.APIResponse
// @Router /votes [post]
func (v *VoteController) CastVote(c *gin.Context) {
	var req request_models.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")
	if err := v.voteService.CastVote(c.Request.Context(), accountID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Vote recorded successfully")
}

// GetResults godoc
// @Summary Get vote tallies for a trip
// @Tags Votes
// @Produce json
// @Param trip_id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Router /votes/{trip_id} [get]
func (v *VoteController) GetResults(c *gin.Context) {
	counts, err := v.voteService.GetResults(c.Request.Context(), c.Param("trip_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, counts, "Vote results retrieved successfully")
}
