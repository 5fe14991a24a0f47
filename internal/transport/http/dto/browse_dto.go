package dto

type BrowseCandidateResponse struct {
	UserID    int64    `json:"user_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio"`
	Age       int      `json:"age"`
	Interests string   `json:"interests"`
	Score     int      `json:"score"`
	PhotoURLs []string `json:"photo_urls,omitempty"`
}

type BrowseNextResponse struct {
	Exhausted bool                     `json:"exhausted"`
	Candidate *BrowseCandidateResponse `json:"candidate,omitempty"`
}

type BrowsePassRequest struct {
	UserID int64 `json:"user_id"`
}
