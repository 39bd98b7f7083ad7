package request_models

type GenerateItineraryRequest struct {
	GroupID      string `json:"group_id" binding:"required"`
	Requirements string `json:"requirements"`
}

type AgentMessageRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	Message string `json:"message" binding:"required,max=2000"`
}
