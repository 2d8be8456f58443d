package listing

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/chapashop/api/internal/entity"
)

func TestNormalize_CoalescesLegacyCategoryKeys(t *testing.T) {
	tests := map[string]struct {
		raw  string
		want string
	}{
		"canonical key":  {`{"category":"cafe"}`, "cafe"},
		"snake case key": {`{"category_name":"Restaurante"}`, "Restaurante"},
		"camel case key": {`{"businessCategory":"tienda"}`, "tienda"},
		"first non-empty wins": {
			`{"category":"", "category_name":"Salud", "businessCategory":"belleza"}`,
			"Salud",
		},
	}

	for name, tc := range tests {
		b := entity.Business{ID: uuid.New(), Name: "X", Raw: json.RawMessage(tc.raw)}
		got := Normalize(b)
		if got.Category == nil || *got.Category != tc.want {
			t.Fatalf("%s: expected category %q, got %v", name, tc.want, got.Category)
		}
	}
}

func TestNormalize_DoesNotOverrideCanonicalFields(t *testing.T) {
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	b := entity.Business{
		ID:        uuid.New(),
		Name:      "X",
		Category:  strPtr("salud"),
		CreatedAt: &ts,
		Raw:       json.RawMessage(`{"category":"cafe","createdAt":"2020-01-01T00:00:00Z"}`),
	}

	got := Normalize(b)
	if *got.Category != "salud" {
		t.Fatalf("expected existing category kept, got %q", *got.Category)
	}
	if !got.CreatedAt.Equal(ts) {
		t.Fatalf("expected existing timestamp kept, got %v", got.CreatedAt)
	}
}

func TestNormalize_ParsesLegacyTimestamps(t *testing.T) {
	b := entity.Business{ID: uuid.New(), Name: "X", Raw: json.RawMessage(`{"created_at":"2023-11-05T08:30:00Z"}`)}
	got := Normalize(b)
	if got.CreatedAt == nil || got.CreatedAt.Year() != 2023 {
		t.Fatalf("expected parsed legacy timestamp, got %v", got.CreatedAt)
	}

	// Unparseable timestamps stay absent instead of failing.
	b.Raw = json.RawMessage(`{"createdAt":"yesterday"}`)
	if got := Normalize(b); got.CreatedAt != nil {
		t.Fatalf("expected nil for unparseable timestamp")
	}
}

func TestNormalize_ToleratesBadDocuments(t *testing.T) {
	b := entity.Business{ID: uuid.New(), Name: "X", Raw: json.RawMessage(`not-json`)}
	got := Normalize(b)
	if got.Name != "X" || got.Category != nil {
		t.Fatalf("expected record passed through on bad raw document")
	}

	b.Raw = nil
	if got := Normalize(b); got.Name != "X" {
		t.Fatalf("expected record passed through on empty raw document")
	}
}

func TestNormalize_PopulatesLegacyCategoryName(t *testing.T) {
	b := entity.Business{
		ID:       uuid.New(),
		Name:     "X",
		Category: strPtr("cafe"),
		Raw:      json.RawMessage(`{"category_name":"Cafetería"}`),
	}
	got := Normalize(b)
	if got.LegacyCategoryName == nil || *got.LegacyCategoryName != "Cafetería" {
		t.Fatalf("expected legacy name carried, got %v", got.LegacyCategoryName)
	}
}
