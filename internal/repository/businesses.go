package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chapashop/api/internal/entity"
)

// ErrBusinessNotFound is returned when no listing matches the lookup.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessesRepository describes persistence operations for listings.
type BusinessesRepository interface {
	List(ctx context.Context) ([]entity.Business, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Business, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Business, error)
	Create(ctx context.Context, business *entity.Business) error
	Update(ctx context.Context, business *entity.Business) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddPhoto(ctx context.Context, id uuid.UUID, url string) error
	BulkUpsert(ctx context.Context, records []BulkImportInput) (BulkImportResult, error)
}

// BulkImportInput represents the fields required for legacy CSV ingestion.
type BulkImportInput struct {
	Name         string
	Description  *string
	Category     *string
	CategoryName *string
	Status       string
	Address      string
	Phone        *string
	Email        *string
	Website      *string
	Raw          json.RawMessage
}

// BulkImportResult summarises the number of rows inserted or updated.
type BulkImportResult struct {
	Inserted int
	Updated  int
	Total    int
}

// PGXBusinessesRepository implements BusinessesRepository using pgx.
type PGXBusinessesRepository struct {
	pool pgxPool
}

// NewPGXBusinessesRepository wires a pgx backed repository.
func NewPGXBusinessesRepository(pool *pgxpool.Pool) *PGXBusinessesRepository {
	return &PGXBusinessesRepository{pool: pool}
}

var _ pgxPool = (*pgxpool.Pool)(nil)

const businessColumns = `
        b.id,
        b.owner_id,
        u.display_name,
        b.name,
        b.description,
        b.category,
        b.category_name,
        b.status,
        b.address,
        b.phone,
        b.email,
        b.website,
        b.latitude,
        b.longitude,
        b.hours,
        b.products,
        b.photos,
        b.raw,
        b.created_at,
        b.updated_at
`

const businessSelect = `SELECT ` + businessColumns + `
        FROM businesses b
        LEFT JOIN users u ON u.id = b.owner_id
`

// List retrieves every listing with its owner display name joined in.
func (r *PGXBusinessesRepository) List(ctx context.Context) ([]entity.Business, error) {
	rows, err := r.pool.Query(ctx, businessSelect+` ORDER BY b.created_at DESC NULLS LAST`)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()

	return scanBusinesses(rows)
}

// ListByOwner retrieves the listings registered by one owner.
func (r *PGXBusinessesRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Business, error) {
	rows, err := r.pool.Query(ctx, businessSelect+` WHERE b.owner_id = $1 ORDER BY b.created_at DESC NULLS LAST`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list businesses by owner: %w", err)
	}
	defer rows.Close()

	return scanBusinesses(rows)
}

// Get fetches a single listing by id.
func (r *PGXBusinessesRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	rows, err := r.pool.Query(ctx, businessSelect+` WHERE b.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}
	defer rows.Close()

	businesses, err := scanBusinesses(rows)
	if err != nil {
		return nil, err
	}
	if len(businesses) == 0 {
		return nil, ErrBusinessNotFound
	}
	return &businesses[0], nil
}

// Create inserts a new listing and fills in the generated fields.
func (r *PGXBusinessesRepository) Create(ctx context.Context, business *entity.Business) error {
	if business == nil {
		return fmt.Errorf("business payload is nil")
	}

	hoursJSON, err := marshalHours(business.Hours)
	if err != nil {
		return err
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO businesses (
            owner_id, name, description, category, status,
            address, phone, email, website, latitude, longitude,
            hours, products, raw
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::jsonb, $13, $14::jsonb)
        RETURNING id, created_at, updated_at
    `,
		business.OwnerID,
		business.Name,
		business.Description,
		business.Category,
		business.Status,
		business.Address,
		business.Phone,
		business.Email,
		business.Website,
		business.Latitude,
		business.Longitude,
		hoursJSON,
		stringSliceOrEmpty(business.Products),
		rawOrEmpty(business.Raw),
	)

	var created sql.NullTime
	if err := row.Scan(&business.ID, &created, &business.UpdatedAt); err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	if created.Valid {
		ts := created.Time
		business.CreatedAt = &ts
	}
	return nil
}

// Update rewrites the owner-editable columns of a listing.
func (r *PGXBusinessesRepository) Update(ctx context.Context, business *entity.Business) error {
	if business == nil {
		return fmt.Errorf("business payload is nil")
	}

	hoursJSON, err := marshalHours(business.Hours)
	if err != nil {
		return err
	}

	cmd, err := r.pool.Exec(ctx, `
        UPDATE businesses SET
            name = $1,
            description = $2,
            category = $3,
            address = $4,
            phone = $5,
            email = $6,
            website = $7,
            latitude = $8,
            longitude = $9,
            hours = $10::jsonb,
            products = $11,
            updated_at = NOW()
        WHERE id = $12
    `,
		business.Name,
		business.Description,
		business.Category,
		business.Address,
		business.Phone,
		business.Email,
		business.Website,
		business.Latitude,
		business.Longitude,
		hoursJSON,
		stringSliceOrEmpty(business.Products),
		business.ID,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// UpdateStatus moves a listing between pending/approved/rejected.
func (r *PGXBusinessesRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE businesses SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update business status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// Delete removes a listing and its reviews (cascaded by the schema).
func (r *PGXBusinessesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

// AddPhoto appends a stored photo link to the listing.
func (r *PGXBusinessesRepository) AddPhoto(ctx context.Context, id uuid.UUID, url string) error {
	cmd, err := r.pool.Exec(ctx, `
        UPDATE businesses
        SET photos = array_append(COALESCE(photos, '{}'), $1), updated_at = NOW()
        WHERE id = $2
    `, url, id)
	if err != nil {
		return fmt.Errorf("add business photo: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrBusinessNotFound
	}
	return nil
}

const bulkImportSQL = `
        INSERT INTO businesses (name, description, category, category_name, status, address, phone, email, website, raw, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::jsonb,NOW())
        ON CONFLICT (name, address) DO UPDATE SET
            description = EXCLUDED.description,
            category = EXCLUDED.category,
            category_name = EXCLUDED.category_name,
            status = EXCLUDED.status,
            phone = EXCLUDED.phone,
            email = EXCLUDED.email,
            website = EXCLUDED.website,
            raw = EXCLUDED.raw,
            updated_at = NOW()
        RETURNING xmax = 0;
    `

// BulkUpsert persists a batch of imported listings with idempotent semantics.
func (r *PGXBusinessesRepository) BulkUpsert(ctx context.Context, records []BulkImportInput) (BulkImportResult, error) {
	var result BulkImportResult
	if len(records) == 0 {
		return result, nil
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return result, fmt.Errorf("start bulk import tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, record := range records {
		status := record.Status
		if !entity.ValidStatus(status) {
			status = entity.StatusPending
		}

		rows, err := tx.Query(ctx, bulkImportSQL,
			record.Name,
			record.Description,
			record.Category,
			record.CategoryName,
			status,
			record.Address,
			record.Phone,
			record.Email,
			record.Website,
			string(rawOrEmpty(record.Raw)),
		)
		if err != nil {
			return result, fmt.Errorf("bulk import business %q: %w", record.Name, err)
		}

		var inserted bool
		if rows.Next() {
			if scanErr := rows.Scan(&inserted); scanErr != nil {
				rows.Close()
				return result, fmt.Errorf("scan bulk import result: %w", scanErr)
			}
		} else {
			err := rows.Err()
			rows.Close()
			if err != nil {
				return result, fmt.Errorf("bulk import business %q: %w", record.Name, err)
			}
			return result, fmt.Errorf("bulk import business %q: no result returned", record.Name)
		}
		rows.Close()

		if inserted {
			result.Inserted++
		} else {
			result.Updated++
		}
		result.Total++
	}

	if err := tx.Commit(ctx); err != nil {
		return result, fmt.Errorf("commit bulk import tx: %w", err)
	}

	return result, nil
}

func scanBusinesses(rows pgx.Rows) ([]entity.Business, error) {
	var businesses []entity.Business
	for rows.Next() {
		var (
			b            entity.Business
			ownerID      *uuid.UUID
			ownerName    sql.NullString
			description  sql.NullString
			category     sql.NullString
			categoryName sql.NullString
			address      sql.NullString
			phone        sql.NullString
			email        sql.NullString
			website      sql.NullString
			latitude     sql.NullFloat64
			longitude    sql.NullFloat64
			hoursJSON    []byte
			products     []string
			photos       []string
			raw          []byte
			createdAt    sql.NullTime
		)

		err := rows.Scan(
			&b.ID,
			&ownerID,
			&ownerName,
			&b.Name,
			&description,
			&category,
			&categoryName,
			&b.Status,
			&address,
			&phone,
			&email,
			&website,
			&latitude,
			&longitude,
			&hoursJSON,
			&products,
			&photos,
			&raw,
			&createdAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan business: %w", err)
		}

		b.OwnerID = ownerID
		b.OwnerName = nullStringToPtr(ownerName)
		b.Description = nullStringToPtr(description)
		b.Category = nullStringToPtr(category)
		b.LegacyCategoryName = nullStringToPtr(categoryName)
		b.Address = nullStringToPtr(address)
		b.Phone = nullStringToPtr(phone)
		b.Email = nullStringToPtr(email)
		b.Website = nullStringToPtr(website)
		if latitude.Valid {
			val := latitude.Float64
			b.Latitude = &val
		}
		if longitude.Valid {
			val := longitude.Float64
			b.Longitude = &val
		}
		if len(hoursJSON) > 0 {
			if err := json.Unmarshal(hoursJSON, &b.Hours); err != nil {
				return nil, fmt.Errorf("unmarshal business hours: %w", err)
			}
		}
		b.Products = products
		b.Photos = photos
		if len(raw) > 0 {
			b.Raw = json.RawMessage(raw)
		}
		if createdAt.Valid {
			ts := createdAt.Time
			b.CreatedAt = &ts
		}

		businesses = append(businesses, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate businesses: %w", err)
	}
	return businesses, nil
}

func marshalHours(hours entity.Hours) ([]byte, error) {
	if hours == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(hours)
	if err != nil {
		return nil, fmt.Errorf("marshal business hours: %w", err)
	}
	return data, nil
}

func rawOrEmpty(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return json.RawMessage("{}")
	}
	return raw
}

func stringSliceOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
