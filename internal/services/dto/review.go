package dto

type CreateReviewRequest struct {
	SchoolID string `json:"school_id" validate:"required,uuid"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	Comment  string `json:"comment" validate:"omitempty,max=2000"`
}

type SchoolRatingResponse struct {
	SchoolID    string  `json:"school_id"`
	Average     float64 `json:"average"`
	ReviewCount int64   `json:"review_count"`
}
