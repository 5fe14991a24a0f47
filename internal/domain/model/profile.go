package model

import (
	"time"

	"github.com/jordanhale/emberline/internal/domain/enums"
)

// Profile is the directory's read model of a user. Age is never persisted:
// it is derived from Birthdate at query time so it stays correct without
// migrations.
type Profile struct {
	UserID      int64             `json:"user_id"`
	FirstName   string            `json:"first_name"`
	LastName    string            `json:"last_name"`
	Bio         string            `json:"bio"`
	Gender      enums.Gender      `json:"gender"`
	Orientation enums.Orientation `json:"orientation"`
	Birthdate   time.Time         `json:"birthdate"`
	Interests   string            `json:"interests"`
	Banned      bool              `json:"banned"`
	CreatedAt   time.Time         `json:"created_at"`
}
