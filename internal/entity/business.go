package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Listing statuses. Transitions are driven by administrator action only.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// ValidStatus reports whether s is one of the known listing statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DayHours describes opening hours for a single weekday.
type DayHours struct {
	Open   string `json:"open"`
	Close  string `json:"close"`
	Closed bool   `json:"closed"`
}

// Hours maps lowercase weekday names (monday..sunday) to their opening hours.
type Hours map[string]DayHours

// Business represents a directory listing.
//
// Category holds the canonical category label where known; LegacyCategoryName
// carries the historical category_name column from migrated data and Raw keeps
// the original imported document. Records coming out of storage are passed
// through listing.Normalize before they reach any aggregation logic.
type Business struct {
	ID                 uuid.UUID       `json:"id"`
	OwnerID            *uuid.UUID      `json:"owner_id,omitempty"`
	OwnerName          *string         `json:"owner_name,omitempty"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	Category           *string         `json:"category,omitempty"`
	LegacyCategoryName *string         `json:"category_name,omitempty"`
	Status             string          `json:"status"`
	Address            *string         `json:"address,omitempty"`
	Phone              *string         `json:"phone,omitempty"`
	Email              *string         `json:"email,omitempty"`
	Website            *string         `json:"website,omitempty"`
	Latitude           *float64        `json:"latitude,omitempty"`
	Longitude          *float64        `json:"longitude,omitempty"`
	Hours              Hours           `json:"business_hours,omitempty"`
	Products           []string        `json:"products,omitempty"`
	Photos             []string        `json:"photos,omitempty"`
	Raw                json.RawMessage `json:"-"`
	CreatedAt          *time.Time      `json:"created_at,omitempty"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
