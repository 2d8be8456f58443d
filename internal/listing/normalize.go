package listing

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/chapashop/api/internal/entity"
)

// legacyDoc is the subset of the original imported document the normalizer
// cares about. Category labels were stored under three different keys across
// the application's history, creation times under two.
type legacyDoc struct {
	Category         string `json:"category"`
	CategoryName     string `json:"category_name"`
	BusinessCategory string `json:"businessCategory"`
	CreatedAt        string `json:"createdAt"`
	CreatedAtSnake   string `json:"created_at"`
}

// Normalize coalesces legacy field aliases out of the record's raw document
// so filter, sort and export logic only ever reads the canonical fields. It
// returns an updated copy; the input is not mutated.
func Normalize(b entity.Business) entity.Business {
	if len(b.Raw) == 0 {
		return b
	}

	var doc legacyDoc
	if err := json.Unmarshal(b.Raw, &doc); err != nil {
		return b
	}

	if deref(b.Category) == "" {
		if label := firstNonEmpty(doc.Category, doc.CategoryName, doc.BusinessCategory); label != "" {
			b.Category = &label
		}
	}
	if deref(b.LegacyCategoryName) == "" && strings.TrimSpace(doc.CategoryName) != "" {
		name := strings.TrimSpace(doc.CategoryName)
		b.LegacyCategoryName = &name
	}
	if b.CreatedAt == nil {
		if raw := firstNonEmpty(doc.CreatedAt, doc.CreatedAtSnake); raw != "" {
			if ts, err := time.Parse(time.RFC3339, raw); err == nil {
				b.CreatedAt = &ts
			}
		}
	}

	return b
}

// NormalizeAll applies Normalize to every record, returning a new slice.
func NormalizeAll(businesses []entity.Business) []entity.Business {
	out := make([]entity.Business, 0, len(businesses))
	for _, b := range businesses {
		out = append(out, Normalize(b))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
