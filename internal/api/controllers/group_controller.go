package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripmate/internal/models/request_models"
	"tripmate/internal/services"
	"tripmate/pkg/utils"
)

type GroupController struct {
	groupService services.GroupServiceInterface
}

func NewGroupController(groupService services.GroupServiceInterface) *GroupController {
	return &GroupController{
		groupService: groupService,
	}
}

// CreateGroup godoc
// @Summary Create a travel group
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body request_models.CreateGroupRequest true "Group payload"
// @Success 200 {object} utils.APIResponse
// @Router /groups [post]
func (g *GroupController) CreateGroup(c *gin.Context) {
	var req request_models.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	hostID := c.GetString("user_id")
	group, err := g.groupService.CreateGroup(c.Request.Context(), hostID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, group, "Group created successfully")
}

// GetGroup godoc
// @Summary Get a group with its members
// @Tags Groups
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} utils.APIResponse
// @Router /groups/{id} [get]
func (g *GroupController) GetGroup(c *gin.Context) {
	group, err := g.groupService.GetGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, group, "Group retrieved successfully")
}

// AddMember godoc
// @Summary Add a member to a group
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body request_models.AddMemberRequest true "Membership payload"
// @Success 200 {object} utils.APIResponse
// @Router /groups/members [post]
func (g *GroupController) AddMember(c *gin.Context) {
	var req request_models.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := g.groupService.AddMember(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Member added successfully")
}

// SetPreferences godoc
// @Summary Replace the caller's preferences in one category
// @Tags Groups
// @Accept json
// @Produce json
// @Param request body request_models.SetPreferencesRequest true "Preferences payload"
// @Success 200 {object} utils.APIResponse
// @Router /preferences [put]
func (g *GroupController) SetPreferences(c *gin.Context) {
	var req request_models.SetPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	accountID := c.GetString("user_id")
	if err := g.groupService.SetPreferences(c.Request.Context(), accountID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Preferences updated successfully")
}
