package response_models

type ChatMessageResponse struct {
	ID        string `json:"id"`
	GroupID   string `json:"group_id"`
	AccountID string `json:"account_id"`
	Author    string `json:"author,omitempty"`
	Message   string `json:"message"`
	SentAt    int64  `json:"sent_at"`
}

type GroupResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	HostID  string   `json:"host_id"`
	Members []string `json:"members,omitempty"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
