package dto

type SessionOpenRequest struct {
	UserID int64 `json:"user_id"`
}

type SessionOpenResponse struct {
	Token        string `json:"token"`
	SID          string `json:"sid"`
	ExpiresInSec int64  `json:"expires_in_sec"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
