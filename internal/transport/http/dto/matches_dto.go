package dto

import "time"

type MatchResponse struct {
	MatchID   int64     `json:"match_id"`
	UserID    int64     `json:"user_id"`
	FirstName string    `json:"first_name"`
	Age       int       `json:"age"`
	MatchedAt time.Time `json:"matched_at"`
}

type MatchesListResponse struct {
	Items []MatchResponse `json:"items"`
}

type UnmatchRequest struct {
	UserID int64 `json:"user_id"`
}

type BlockRequest struct {
	UserID int64 `json:"user_id"`
}

type BlockedUserResponse struct {
	UserID    int64     `json:"user_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BlockedAt time.Time `json:"blocked_at"`
}

type BlockedListResponse struct {
	Items []BlockedUserResponse `json:"items"`
}
