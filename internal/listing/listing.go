// Package listing implements the pure aggregation core of the directory:
// rating enrichment, filter predicates, sort orders, top-rated ranking,
// category resolution and the tabular export transform. The package performs
// no I/O; callers hand it already-loaded records and an explicit clock.
package listing

import (
	"math"

	"github.com/google/uuid"

	"github.com/chapashop/api/internal/entity"
)

// View is a business enriched with derived rating data and its resolved
// category descriptor. Views are computed fresh on every aggregation pass and
// never persisted.
type View struct {
	entity.Business
	CategoryInfo Descriptor `json:"category_info"`
	AvgRating    float64    `json:"avg_rating"`
	ReviewCount  int        `json:"review_count"`
}

// Enrich attaches the average rating and review count to a business. Reviews
// belonging to other businesses are ignored, so callers may pass the full
// review set. An empty review list yields avg 0 / count 0.
func Enrich(b entity.Business, reviews []entity.Review, categories Catalog) View {
	sum, count := 0, 0
	for _, r := range reviews {
		if r.BusinessID != b.ID {
			continue
		}
		sum += r.Rating
		count++
	}

	avg := 0.0
	if count > 0 {
		// Mean rounded to one decimal place.
		avg = math.Round(float64(sum)/float64(count)*10) / 10
	}

	return View{
		Business:     b,
		CategoryInfo: categories.Resolve(categoryLabel(b)),
		AvgRating:    avg,
		ReviewCount:  count,
	}
}

// EnrichAll enriches every business against the full review set, grouping
// reviews by business id in a single pass. Input slices are not mutated.
func EnrichAll(businesses []entity.Business, reviews []entity.Review, categories Catalog) []View {
	grouped := make(map[uuid.UUID][]entity.Review, len(businesses))
	for _, r := range reviews {
		grouped[r.BusinessID] = append(grouped[r.BusinessID], r)
	}

	views := make([]View, 0, len(businesses))
	for _, b := range businesses {
		views = append(views, Enrich(b, grouped[b.ID], categories))
	}
	return views
}

func categoryLabel(b entity.Business) string {
	if b.Category != nil && *b.Category != "" {
		return *b.Category
	}
	if b.LegacyCategoryName != nil {
		return *b.LegacyCategoryName
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
