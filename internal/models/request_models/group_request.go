package request_models

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}

type AddMemberRequest struct {
	GroupID   string `json:"group_id" binding:"required"`
	AccountID string `json:"account_id" binding:"required"`
}

type SetPreferencesRequest struct {
	Category string   `json:"category" binding:"required"`
	Values   []string `json:"values" binding:"required"`
}
