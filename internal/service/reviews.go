package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/chapashop/api/internal/entity"
	"github.com/chapashop/api/internal/repository"
)

// ErrInvalidRating is returned when a rating falls outside the 1..5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService records and lists reviews for businesses.
type ReviewService struct {
	reviews    repository.ReviewsRepository
	businesses repository.BusinessesRepository
}

// NewReviewService builds a new ReviewService instance.
func NewReviewService(reviews repository.ReviewsRepository, businesses repository.BusinessesRepository) *ReviewService {
	return &ReviewService{reviews: reviews, businesses: businesses}
}

// Create records a review against an existing business.
func (s *ReviewService) Create(ctx context.Context, businessID uuid.UUID, userID *uuid.UUID, rating int, comment *string) (*entity.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	if _, err := s.businesses.Get(ctx, businessID); err != nil {
		return nil, err
	}

	if comment != nil {
		trimmed := strings.TrimSpace(*comment)
		if trimmed == "" {
			comment = nil
		} else {
			comment = &trimmed
		}
	}

	review := &entity.Review{
		BusinessID: businessID,
		UserID:     userID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForBusiness returns the reviews of one business.
func (s *ReviewService) ListForBusiness(ctx context.Context, businessID uuid.UUID) ([]entity.Review, error) {
	if _, err := s.businesses.Get(ctx, businessID); err != nil {
		return nil, err
	}
	return s.reviews.ListByBusiness(ctx, businessID)
}
