package model

import "time"

// Like is a directed edge; at most one per ordered (liker, liked) pair.
type Like struct {
	ID        int64     `json:"id"`
	LikerID   int64     `json:"liker_id"`
	LikedID   int64     `json:"liked_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
