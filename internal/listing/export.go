package listing

import "strconv"

// Placeholder rendered for missing optional fields so exported tables stay
// column-aligned and readable.
const ExportPlaceholder = "N/A"

const exportDateLayout = "02/01/2006"

// ExportRow is a flat, denormalized view of one business. Encoding the rows
// (CSV, TSV, ...) is the caller's concern; this transform only fixes the
// column set, order and formatting.
type ExportRow struct {
	Name        string
	Status      string
	Category    string
	Owner       string
	Phone       string
	Email       string
	Address     string
	AvgRating   string
	ReviewCount string
	Products    string
	CreatedAt   string
}

// ExportColumns returns the column headers in output order.
func ExportColumns() []string {
	return []string{
		"name",
		"status",
		"category",
		"owner",
		"phone",
		"email",
		"address",
		"avg_rating",
		"review_count",
		"products",
		"created_at",
	}
}

// Values returns the row's cells in the same order as ExportColumns.
func (r ExportRow) Values() []string {
	return []string{
		r.Name,
		r.Status,
		r.Category,
		r.Owner,
		r.Phone,
		r.Email,
		r.Address,
		r.AvgRating,
		r.ReviewCount,
		r.Products,
		r.CreatedAt,
	}
}

// ToExportRows maps enriched views to export rows, one per business.
func ToExportRows(views []View) []ExportRow {
	rows := make([]ExportRow, 0, len(views))
	for _, v := range views {
		row := ExportRow{
			Name:        orPlaceholder(v.Name),
			Status:      orPlaceholder(v.Status),
			Category:    orPlaceholder(v.CategoryInfo.Name),
			Owner:       orPlaceholder(deref(v.OwnerName)),
			Phone:       orPlaceholder(deref(v.Phone)),
			Email:       orPlaceholder(deref(v.Email)),
			Address:     orPlaceholder(deref(v.Address)),
			AvgRating:   strconv.FormatFloat(v.AvgRating, 'f', 1, 64),
			ReviewCount: strconv.Itoa(v.ReviewCount),
			Products:    strconv.Itoa(len(v.Products)),
			CreatedAt:   ExportPlaceholder,
		}
		if v.CreatedAt != nil {
			row.CreatedAt = v.CreatedAt.Format(exportDateLayout)
		}
		rows = append(rows, row)
	}
	return rows
}

func orPlaceholder(value string) string {
	if value == "" {
		return ExportPlaceholder
	}
	return value
}
