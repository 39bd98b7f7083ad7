package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type AgentController struct {
	agentService services.AgentServiceInterface
}

func NewAgentController(agentService services.AgentServiceInterface) *AgentController {
	return &AgentController{
		agentService: agentService,
	}
}

// GenerateItinerary godoc
// @Summary Generate an itinerary for a group
// @Description Runs the planning agent over the group's preferences and chat history and persists the resulting trip
// @Tags Agent
// @Accept json
// @Produce json
// @Param request body request_models.GenerateItineraryRequest true "Generation payload"
// @Success 200 {object} utils.APIResponse
// @Router /agent/itinerary [post]
func (a *AgentController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	resp := a.agentService.GenerateItinerary(c.Request.Context(), req.GroupID, req.Requirements)
	if resp.Error != "" {
		utils.RespondError(c, http.StatusUnprocessableEntity, resp.Error)
		return
	}

	utils.RespondSuccess(c, resp, "Itinerary generated successfully")
}

// SendMessage godoc
// @Summary Chat with the planning agent
// @Description Conversational variant that does not persist any trip data
// @Tags Agent
// @Accept json
// @Produce json
// @Param request body request_models.AgentMessageRequest true "Message payload"
// @Success 200 {object} utils.APIResponse
// @Router /agent/message [post]
func (a *AgentController) SendMessage(c *gin.Context) {
	var req request_models.AgentMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	text, err := a.agentService.ProcessMessage(c.Request.Context(), req.GroupID, req.Message)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, gin.H{"response": text}, "Message processed successfully")
}
