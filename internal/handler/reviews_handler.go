package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chapashop/api/internal/dto"
	"github.com/chapashop/api/internal/repository"
	"github.com/chapashop/api/internal/service"
)

// ReviewsHandler exposes review endpoints for businesses.
type ReviewsHandler struct {
	service *service.ReviewService
}

// NewReviewsHandler constructs a handler instance.
func NewReviewsHandler(service *service.ReviewService) *ReviewsHandler {
	return &ReviewsHandler{service: service}
}

// Create handles POST /businesses/:id/reviews requests.
func (h *ReviewsHandler) Create(c echo.Context) error {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	viewer := viewerFromContext(c)
	review, err := h.service.Create(c.Request().Context(), businessID, viewer.UserID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			return Error(c, http.StatusBadRequest, "rating must be between 1 and 5")
		case errors.Is(err, repository.ErrBusinessNotFound):
			return Error(c, http.StatusNotFound, "business not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to create review")
		}
	}

	return Success(c, http.StatusCreated, "review created", review)
}

// List handles GET /businesses/:id/reviews requests.
func (h *ReviewsHandler) List(c echo.Context) error {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	reviews, err := h.service.ListForBusiness(c.Request().Context(), businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return Error(c, http.StatusNotFound, "business not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to list reviews")
	}

	return Success(c, http.StatusOK, "reviews retrieved", reviews)
}
