package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapashop/api/internal/entity"
)

// ReviewsRepository describes persistence operations for reviews.
type ReviewsRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entity.Review, error)
	ListAll(ctx context.Context) ([]entity.Review, error)
}

// PGXReviewsRepository implements ReviewsRepository using pgx.
type PGXReviewsRepository struct {
	pool pgxPool
}

// NewPGXReviewsRepository instantiates a reviews repository.
func NewPGXReviewsRepository(pool *pgxpool.Pool) *PGXReviewsRepository {
	return &PGXReviewsRepository{pool: pool}
}

const reviewSelect = `
        SELECT r.id, r.business_id, r.user_id, u.display_name, r.rating, r.comment, r.created_at
        FROM reviews r
        LEFT JOIN users u ON u.id = r.user_id
`

// Create inserts a review row, filling in the generated fields.
func (r *PGXReviewsRepository) Create(ctx context.Context, review *entity.Review) error {
	if review == nil {
		return fmt.Errorf("review payload is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO reviews (business_id, user_id, rating, comment)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at
    `, review.BusinessID, review.UserID, review.Rating, review.Comment)

	if err := row.Scan(&review.ID, &review.CreatedAt); err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

// ListByBusiness returns the reviews for one listing, newest first.
func (r *PGXReviewsRepository) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+` WHERE r.business_id = $1 ORDER BY r.created_at DESC`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

// ListAll returns every review; the aggregation core groups them in memory.
func (r *PGXReviewsRepository) ListAll(ctx context.Context) ([]entity.Review, error) {
	rows, err := r.pool.Query(ctx, reviewSelect+` ORDER BY r.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list all reviews: %w", err)
	}
	defer rows.Close()

	return scanReviews(rows)
}

func scanReviews(rows pgx.Rows) ([]entity.Review, error) {
	var reviews []entity.Review
	for rows.Next() {
		var (
			review   entity.Review
			userID   *uuid.UUID
			userName sql.NullString
			comment  sql.NullString
		)
		if err := rows.Scan(&review.ID, &review.BusinessID, &userID, &userName, &review.Rating, &comment, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		review.UserID = userID
		review.UserName = nullStringToPtr(userName)
		review.Comment = nullStringToPtr(comment)
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return reviews, nil
}
