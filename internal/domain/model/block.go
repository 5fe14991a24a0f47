package model

import "time"

// Block is directed, but discovery and messaging treat a block in either
// direction between two users as mutually exclusive.
type Block struct {
	BlockerID int64     `json:"blocker_id"`
	BlockedID int64     `json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
