package dto

// CreateReviewRequest captures a review submission.
type CreateReviewRequest struct {
	Rating  int     `json:"rating"`
	Comment *string `json:"comment,omitempty"`
}
