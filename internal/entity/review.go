package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a user rating attached to a single business.
type Review struct {
	ID         uuid.UUID  `json:"id"`
	BusinessID uuid.UUID  `json:"business_id"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	UserName   *string    `json:"user_name,omitempty"`
	Rating     int        `json:"rating"`
	Comment    *string    `json:"comment,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
