package dto

import "github.com/chapashop/api/internal/entity"

// ListQuery contains query parameters for business listing endpoints.
type ListQuery struct {
	Search    string
	Category  string
	Status    string
	DateRange string
	Sort      string
	Page      int
	PerPage   int
}

// CreateBusinessRequest captures the payload for registering a listing.
type CreateBusinessRequest struct {
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Address     *string      `json:"address,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Email       *string      `json:"email,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Latitude    *float64     `json:"latitude,omitempty"`
	Longitude   *float64     `json:"longitude,omitempty"`
	Hours       entity.Hours `json:"business_hours,omitempty"`
	Products    []string     `json:"products,omitempty"`
}

// UpdateBusinessRequest captures owner-triggered partial updates. Status is
// deliberately absent: only administrators change it.
type UpdateBusinessRequest struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Category    *string       `json:"category,omitempty"`
	Address     *string       `json:"address,omitempty"`
	Phone       *string       `json:"phone,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Website     *string       `json:"website,omitempty"`
	Latitude    *float64      `json:"latitude,omitempty"`
	Longitude   *float64      `json:"longitude,omitempty"`
	Hours       *entity.Hours `json:"business_hours,omitempty"`
	Products    *[]string     `json:"products,omitempty"`
}

// SetStatusRequest is the admin approve/reject payload.
type SetStatusRequest struct {
	Status string `json:"status"`
}
