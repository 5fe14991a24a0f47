package model

import "time"

// Match is an unordered pair stored canonically with UserAID < UserBID, so
// the pair is unique regardless of which side triggered it.
type Match struct {
	ID        int64     `json:"id"`
	UserAID   int64     `json:"user_a_id"`
	UserBID   int64     `json:"user_b_id"`
	CreatedAt time.Time `json:"created_at"`
}

// OtherUser returns the match participant that is not userID.
func (m Match) OtherUser(userID int64) int64 {
	if m.UserAID == userID {
		return m.UserBID
	}
	return m.UserAID
}
