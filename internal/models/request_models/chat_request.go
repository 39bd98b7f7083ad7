package request_models

type PostMessageRequest struct {
	GroupID string `json:"group_id" binding:"required"`
	Message string `json:"message" binding:"required,max=2000"`
}
