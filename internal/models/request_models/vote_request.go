package request_models

type CastVoteRequest struct {
	TripID string `json:"trip_id" binding:"required"`
	Choice string `json:"choice" binding:"required,max=200"`
}
