package handler

import (
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chapashop/api/internal/dto"
	"github.com/chapashop/api/internal/listing"
	"github.com/chapashop/api/internal/middleware"
	"github.com/chapashop/api/internal/repository"
	"github.com/chapashop/api/internal/service"
)

// BusinessesHandler exposes the business catalogue endpoints.
type BusinessesHandler struct {
	service *service.BusinessService
}

// NewBusinessesHandler creates a new handler instance.
func NewBusinessesHandler(service *service.BusinessService) *BusinessesHandler {
	return &BusinessesHandler{service: service}
}

// List handles GET /businesses requests.
func (h *BusinessesHandler) List(c echo.Context) error {
	return h.listInternal(c, service.ScopePublic)
}

// ListOwner handles GET /my/businesses requests.
func (h *BusinessesHandler) ListOwner(c echo.Context) error {
	return h.listInternal(c, service.ScopeOwner)
}

// ListAdmin handles GET /admin/businesses requests.
func (h *BusinessesHandler) ListAdmin(c echo.Context) error {
	return h.listInternal(c, service.ScopeAdmin)
}

func (h *BusinessesHandler) listInternal(c echo.Context, scope service.ListScope) error {
	query := dto.ListQuery{
		Search:    strings.TrimSpace(c.QueryParam("search")),
		Category:  strings.TrimSpace(c.QueryParam("category")),
		Status:    strings.TrimSpace(c.QueryParam("status")),
		DateRange: strings.TrimSpace(c.QueryParam("date_range")),
		Sort:      strings.TrimSpace(c.QueryParam("sort")),
		Page:      parseIntDefault(c.QueryParam("page"), 1),
		PerPage:   parseIntDefault(c.QueryParam("per_page"), 20),
	}

	result, err := h.service.List(c.Request().Context(), query, scope, viewerFromContext(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list businesses")
	}

	return Success(c, http.StatusOK, "businesses retrieved", result)
}

// TopRated handles GET /businesses/top-rated requests.
func (h *BusinessesHandler) TopRated(c echo.Context) error {
	limit := parseIntDefault(c.QueryParam("limit"), 0)

	views, err := h.service.TopRated(c.Request().Context(), limit)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list top rated businesses")
	}

	return Success(c, http.StatusOK, "top rated businesses retrieved", views)
}

// Get handles GET /businesses/:id requests.
func (h *BusinessesHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	view, err := h.service.Get(c.Request().Context(), id, viewerFromContext(c))
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return Error(c, http.StatusNotFound, "business not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch business")
	}

	return Success(c, http.StatusOK, "business retrieved", view)
}

// Categories handles GET /categories requests.
func (h *BusinessesHandler) Categories(c echo.Context) error {
	return Success(c, http.StatusOK, "categories retrieved", h.service.Categories())
}

// Create handles POST /businesses requests.
func (h *BusinessesHandler) Create(c echo.Context) error {
	viewer := viewerFromContext(c)
	if viewer.UserID == nil {
		return Error(c, http.StatusUnauthorized, "authentication required")
	}

	var req dto.CreateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	business, err := h.service.Create(c.Request().Context(), *viewer.UserID, req)
	if err != nil {
		if contactError(err) {
			return Error(c, http.StatusBadRequest, err.Error())
		}
		if errors.Is(err, service.ErrNameRequired) {
			return Error(c, http.StatusBadRequest, "business name is required")
		}
		return Error(c, http.StatusInternalServerError, "failed to create business")
	}

	return Success(c, http.StatusCreated, "business created", business)
}

// Update handles PUT /businesses/:id requests.
func (h *BusinessesHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	var req dto.UpdateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	business, err := h.service.Update(c.Request().Context(), id, viewerFromContext(c), req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBusinessNotFound):
			return Error(c, http.StatusNotFound, "business not found")
		case errors.Is(err, service.ErrNotOwner):
			return Error(c, http.StatusForbidden, "business belongs to another owner")
		case errors.Is(err, service.ErrNameRequired) || contactError(err):
			return Error(c, http.StatusBadRequest, err.Error())
		default:
			return Error(c, http.StatusInternalServerError, "failed to update business")
		}
	}

	return Success(c, http.StatusOK, "business updated", business)
}

// Delete handles DELETE /businesses/:id requests.
func (h *BusinessesHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	if err := h.service.Delete(c.Request().Context(), id, viewerFromContext(c)); err != nil {
		switch {
		case errors.Is(err, repository.ErrBusinessNotFound):
			return Error(c, http.StatusNotFound, "business not found")
		case errors.Is(err, service.ErrNotOwner):
			return Error(c, http.StatusForbidden, "business belongs to another owner")
		default:
			return Error(c, http.StatusInternalServerError, "failed to delete business")
		}
	}

	return Success(c, http.StatusOK, "business deleted", nil)
}

// SetStatus handles PATCH /admin/businesses/:id/status requests.
func (h *BusinessesHandler) SetStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	var req dto.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.service.SetStatus(c.Request().Context(), id, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			return Error(c, http.StatusBadRequest, "invalid business status")
		case errors.Is(err, repository.ErrBusinessNotFound):
			return Error(c, http.StatusNotFound, "business not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update status")
		}
	}

	return Success(c, http.StatusOK, "status updated", nil)
}

// Export handles GET /admin/businesses/export requests, streaming a CSV file.
func (h *BusinessesHandler) Export(c echo.Context) error {
	rows, err := h.service.ExportRows(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to export businesses")
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	res.Header().Set(echo.HeaderContentDisposition, `attachment; filename="businesses.csv"`)
	res.WriteHeader(http.StatusOK)

	writer := csv.NewWriter(res)
	if err := writer.Write(listing.ExportColumns()); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// UploadPhoto handles POST /businesses/:id/photos requests.
func (h *BusinessesHandler) UploadPhoto(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid business id")
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing photo file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	url, err := h.service.AttachPhoto(c.Request().Context(), id, viewerFromContext(c), fileHeader.Filename, mimeType, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotosUnavailable):
			return Error(c, http.StatusServiceUnavailable, "photo storage is not configured")
		case errors.Is(err, repository.ErrBusinessNotFound):
			return Error(c, http.StatusNotFound, "business not found")
		case errors.Is(err, service.ErrNotOwner):
			return Error(c, http.StatusForbidden, "business belongs to another owner")
		default:
			return Error(c, http.StatusInternalServerError, "failed to upload photo")
		}
	}

	return Success(c, http.StatusCreated, "photo uploaded", map[string]string{"url": url})
}

func contactError(err error) bool {
	return errors.Is(err, service.ErrInvalidPhone) ||
		errors.Is(err, service.ErrInvalidEmail) ||
		errors.Is(err, service.ErrInvalidWebsite)
}

func viewerFromContext(c echo.Context) service.Viewer {
	viewer := service.Viewer{}
	if raw, ok := c.Get(middleware.ContextKeyUserID).(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			viewer.UserID = &id
		}
	}
	if role, ok := c.Get(middleware.ContextKeyUserRole).(string); ok {
		viewer.Admin = role == "admin"
	}
	return viewer
}

func parseIntDefault(input string, fallback int) int {
	if input == "" {
		return fallback
	}
	if value, err := strconv.Atoi(input); err == nil {
		return value
	}
	return fallback
}
