package dto

import "time"

type LikeRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message,omitempty"`
}

type IncomingLikeResponse struct {
	UserID    int64     `json:"user_id"`
	FirstName string    `json:"first_name"`
	Age       int       `json:"age"`
	Message   string    `json:"message,omitempty"`
	LikedAt   time.Time `json:"liked_at"`
}

type LikesIncomingResponse struct {
	Items []IncomingLikeResponse `json:"items"`
}

type LikeRespondRequest struct {
	UserID int64  `json:"user_id"`
	Action string `json:"action"`
}

type LikeRespondResponse struct {
	Matched bool `json:"matched"`
}
