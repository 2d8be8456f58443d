package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chapashop/api/internal/dto"
	"github.com/chapashop/api/internal/entity"
	"github.com/chapashop/api/internal/listing"
	"github.com/chapashop/api/internal/repository"
	"github.com/chapashop/api/internal/storage"
)

// Business service errors surfaced to handlers.
var (
	ErrNameRequired      = errors.New("business name is required")
	ErrNotOwner          = errors.New("business belongs to another owner")
	ErrInvalidStatus     = errors.New("invalid business status")
	ErrPhotosUnavailable = errors.New("photo storage is not configured")
)

// Viewer identifies who is asking, so access rules can be applied.
type Viewer struct {
	UserID *uuid.UUID
	Admin  bool
}

func (v Viewer) owns(b *entity.Business) bool {
	return v.UserID != nil && b.OwnerID != nil && *v.UserID == *b.OwnerID
}

// ListScope selects which slice of the catalogue a listing call covers.
type ListScope int

const (
	// ScopePublic returns approved listings only.
	ScopePublic ListScope = iota
	// ScopeOwner returns the caller's own listings in any status.
	ScopeOwner
	// ScopeAdmin returns everything and searches owner names too.
	ScopeAdmin
)

// ListResult is one page of enriched listings.
type ListResult struct {
	Items   []listing.View `json:"items"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// CSVValidationError indicates that the provided CSV payload is invalid.
type CSVValidationError struct {
	Message string
}

// Error implements the error interface.
func (e CSVValidationError) Error() string {
	return e.Message
}

// UploadSummary reports how many rows were inserted or updated during import.
type UploadSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Total    int `json:"total"`
}

// BusinessService exposes read/write operations for the business catalogue.
type BusinessService struct {
	businesses    repository.BusinessesRepository
	reviews       repository.ReviewsRepository
	photos        storage.PhotoStore
	categories    listing.Catalog
	contacts      *ContactValidator
	topRatedLimit int
	now           func() time.Time
}

// NewBusinessService creates a new instance of BusinessService. The photos
// store may be nil when photo storage is not configured.
func NewBusinessService(
	businesses repository.BusinessesRepository,
	reviews repository.ReviewsRepository,
	photos storage.PhotoStore,
	contacts *ContactValidator,
	topRatedLimit int,
) *BusinessService {
	if topRatedLimit <= 0 {
		topRatedLimit = 10
	}
	return &BusinessService{
		businesses:    businesses,
		reviews:       reviews,
		photos:        photos,
		categories:    listing.DefaultCatalog(),
		contacts:      contacts,
		topRatedLimit: topRatedLimit,
		now:           time.Now,
	}
}

// Categories returns the category catalogue served to clients.
func (s *BusinessService) Categories() listing.Catalog {
	return s.categories
}

// List returns one page of enriched listings for the requested scope.
func (s *BusinessService) List(ctx context.Context, q dto.ListQuery, scope ListScope, viewer Viewer) (ListResult, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = 20
	}
	if q.PerPage > 100 {
		q.PerPage = 100
	}

	var (
		businesses []entity.Business
		err        error
	)
	switch scope {
	case ScopeOwner:
		if viewer.UserID == nil {
			return ListResult{}, errors.New("owner scope requires an authenticated user")
		}
		businesses, err = s.businesses.ListByOwner(ctx, *viewer.UserID)
	default:
		businesses, err = s.businesses.List(ctx)
	}
	if err != nil {
		return ListResult{}, err
	}

	views, err := s.enrich(ctx, businesses)
	if err != nil {
		return ListResult{}, err
	}

	crit := listing.Criteria{
		Search:    q.Search,
		Status:    q.Status,
		Category:  q.Category,
		DateRange: q.DateRange,
		Now:       s.now(),
	}
	switch scope {
	case ScopePublic:
		crit.Status = entity.StatusApproved
	case ScopeAdmin:
		crit.MatchOwner = true
	}

	filtered := listing.Filter(views, crit)
	sorted := listing.Sorted(filtered, listing.ParseOrder(q.Sort))

	total := len(sorted)
	start := (q.Page - 1) * q.PerPage
	if start > total {
		start = total
	}
	end := start + q.PerPage
	if end > total {
		end = total
	}

	return ListResult{Items: sorted[start:end], Total: total, Page: q.Page, PerPage: q.PerPage}, nil
}

// TopRated returns the best rated approved listings, at most limit entries.
func (s *BusinessService) TopRated(ctx context.Context, limit int) ([]listing.View, error) {
	if limit <= 0 || limit > s.topRatedLimit {
		limit = s.topRatedLimit
	}

	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, businesses)
	if err != nil {
		return nil, err
	}

	approved := listing.Filter(views, listing.Criteria{Status: entity.StatusApproved, Now: s.now()})
	return listing.TopRated(approved, limit), nil
}

// Get fetches one enriched listing. Listings that are not approved are only
// visible to their owner and to administrators.
func (s *BusinessService) Get(ctx context.Context, id uuid.UUID, viewer Viewer) (*listing.View, error) {
	business, err := s.businesses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if business.Status != entity.StatusApproved && !viewer.Admin && !viewer.owns(business) {
		return nil, repository.ErrBusinessNotFound
	}

	reviews, err := s.reviews.ListByBusiness(ctx, id)
	if err != nil {
		return nil, err
	}

	view := listing.Enrich(listing.Normalize(*business), reviews, s.categories)
	return &view, nil
}

// Create registers a new listing for the owner. It always starts pending.
func (s *BusinessService) Create(ctx context.Context, ownerID uuid.UUID, req dto.CreateBusinessRequest) (*entity.Business, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	business := &entity.Business{
		OwnerID:     &ownerID,
		Name:        name,
		Description: req.Description,
		Category:    req.Category,
		Address:     req.Address,
		Status:      entity.StatusPending,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Hours:       req.Hours,
		Products:    req.Products,
	}

	if err := s.applyContacts(business, req.Phone, req.Email, req.Website); err != nil {
		return nil, err
	}

	if err := s.businesses.Create(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Update applies a partial update to a listing the viewer is allowed to edit.
func (s *BusinessService) Update(ctx context.Context, id uuid.UUID, viewer Viewer, req dto.UpdateBusinessRequest) (*entity.Business, error) {
	business, err := s.businesses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Admin && !viewer.owns(business) {
		return nil, ErrNotOwner
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		business.Name = name
	}
	if req.Description != nil {
		business.Description = req.Description
	}
	if req.Category != nil {
		business.Category = req.Category
	}
	if req.Address != nil {
		business.Address = req.Address
	}
	if req.Latitude != nil {
		business.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		business.Longitude = req.Longitude
	}
	if req.Hours != nil {
		business.Hours = *req.Hours
	}
	if req.Products != nil {
		business.Products = *req.Products
	}

	if err := s.applyContacts(business, req.Phone, req.Email, req.Website); err != nil {
		return nil, err
	}

	if err := s.businesses.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Delete removes a listing the viewer is allowed to delete.
func (s *BusinessService) Delete(ctx context.Context, id uuid.UUID, viewer Viewer) error {
	business, err := s.businesses.Get(ctx, id)
	if err != nil {
		return err
	}
	if !viewer.Admin && !viewer.owns(business) {
		return ErrNotOwner
	}
	return s.businesses.Delete(ctx, id)
}

// SetStatus moves a listing to the requested moderation status.
func (s *BusinessService) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if !entity.ValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.businesses.UpdateStatus(ctx, id, status)
}

// AttachPhoto uploads a photo for the listing and records its URL.
func (s *BusinessService) AttachPhoto(ctx context.Context, id uuid.UUID, viewer Viewer, filename, mimeType string, r io.Reader) (string, error) {
	if s.photos == nil {
		return "", ErrPhotosUnavailable
	}

	business, err := s.businesses.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if !viewer.Admin && !viewer.owns(business) {
		return "", ErrNotOwner
	}

	url, err := s.photos.Upload(ctx, filename, mimeType, r)
	if err != nil {
		return "", err
	}
	if err := s.businesses.AddPhoto(ctx, id, url); err != nil {
		return "", err
	}
	return url, nil
}

// ExportRows produces the tabular export of the whole catalogue, newest first.
func (s *BusinessService) ExportRows(ctx context.Context) ([]listing.ExportRow, error) {
	businesses, err := s.businesses.List(ctx)
	if err != nil {
		return nil, err
	}
	views, err := s.enrich(ctx, businesses)
	if err != nil {
		return nil, err
	}
	return listing.ToExportRows(listing.Sorted(views, listing.OrderRecent)), nil
}

// ImportCSV ingests legacy catalogue data from a CSV reader.
func (s *BusinessService) ImportCSV(ctx context.Context, r io.Reader) (UploadSummary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return UploadSummary{}, CSVValidationError{Message: "csv file is empty"}
		}
		return UploadSummary{}, fmt.Errorf("read csv header: %w", err)
	}

	indexMap, valErr := buildHeaderIndex(header)
	if valErr != nil {
		return UploadSummary{}, valErr
	}

	var (
		records []repository.BulkImportInput
		rowNum  = 1
	)

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return UploadSummary{}, fmt.Errorf("read csv row: %w", err)
		}

		rowNum++

		name := strings.TrimSpace(row[indexMap["name"]])
		address := strings.TrimSpace(row[indexMap["address"]])
		if name == "" || address == "" {
			continue
		}

		status := strings.ToLower(strings.TrimSpace(row[indexMap["status"]]))
		if status == "" {
			status = entity.StatusPending
		}
		if !entity.ValidStatus(status) {
			return UploadSummary{}, CSVValidationError{Message: fmt.Sprintf("invalid status value on row %d", rowNum)}
		}

		records = append(records, repository.BulkImportInput{
			Name:         name,
			Description:  normalizeString(row[indexMap["description"]]),
			Category:     normalizeString(row[indexMap["category"]]),
			CategoryName: normalizeString(row[indexMap["category_name"]]),
			Status:       status,
			Address:      address,
			Phone:        normalizeString(row[indexMap["phone"]]),
			Email:        normalizeString(row[indexMap["email"]]),
			Website:      normalizeString(row[indexMap["website"]]),
		})
	}

	result, err := s.businesses.BulkUpsert(ctx, records)
	if err != nil {
		return UploadSummary{}, err
	}

	return UploadSummary{
		Inserted: result.Inserted,
		Updated:  result.Updated,
		Total:    result.Total,
	}, nil
}

func (s *BusinessService) applyContacts(business *entity.Business, phone, email, website *string) error {
	if phone != nil {
		normalized, err := s.contacts.NormalizePhone(*phone)
		if err != nil {
			return err
		}
		business.Phone = &normalized
	}
	if email != nil {
		normalized, err := s.contacts.NormalizeEmail(*email)
		if err != nil {
			return err
		}
		business.Email = &normalized
	}
	if website != nil {
		normalized, err := s.contacts.NormalizeWebsite(*website)
		if err != nil {
			return err
		}
		business.Website = &normalized
	}
	return nil
}

func (s *BusinessService) enrich(ctx context.Context, businesses []entity.Business) ([]listing.View, error) {
	reviews, err := s.reviews.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return listing.EnrichAll(listing.NormalizeAll(businesses), reviews, s.categories), nil
}

var requiredCSVHeaders = []string{"name", "description", "category", "category_name", "status", "address", "phone", "email", "website"}

func buildHeaderIndex(header []string) (map[string]int, error) {
	index := make(map[string]int)
	for i, col := range header {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}

	missing := make([]string, 0)
	for _, required := range requiredCSVHeaders {
		if _, ok := index[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, CSVValidationError{Message: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}
	return index, nil
}

func normalizeString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
