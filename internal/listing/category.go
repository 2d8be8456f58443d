package listing

import "strings"

// Descriptor is one entry of the fixed category taxonomy. Color is an opaque
// display token carried through to clients, never interpreted here.
type Descriptor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Catalog is the fixed category enumeration, loaded once at startup.
type Catalog []Descriptor

// fallbackDescriptor is returned for unknown, empty or missing labels.
var fallbackDescriptor = Descriptor{ID: "otros", Name: "Otros", Color: "#6B7280"}

// DefaultCatalog returns the built-in taxonomy used by the application.
func DefaultCatalog() Catalog {
	return Catalog{
		{ID: "restaurante", Name: "Restaurante", Color: "#F59E0B"},
		{ID: "cafe", Name: "Café", Color: "#B45309"},
		{ID: "tienda", Name: "Tienda", Color: "#3B82F6"},
		{ID: "servicios", Name: "Servicios", Color: "#10B981"},
		{ID: "salud", Name: "Salud", Color: "#EF4444"},
		{ID: "belleza", Name: "Belleza", Color: "#EC4899"},
		{ID: "educacion", Name: "Educación", Color: "#8B5CF6"},
		{ID: "tecnologia", Name: "Tecnología", Color: "#06B6D4"},
		{ID: "entretenimiento", Name: "Entretenimiento", Color: "#F97316"},
		fallbackDescriptor,
	}
}

// Resolve maps a free-text category label to a descriptor. Resolution is
// total: exact id match, then exact display-name match, then substring
// containment in either direction against known ids, then the fallback.
func (c Catalog) Resolve(label string) Descriptor {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if normalized == "" {
		return c.fallback()
	}

	for _, d := range c {
		if d.ID == normalized {
			return d
		}
	}
	for _, d := range c {
		if strings.EqualFold(d.Name, normalized) {
			return d
		}
	}
	for _, d := range c {
		if strings.Contains(normalized, d.ID) || strings.Contains(d.ID, normalized) {
			return d
		}
	}
	return c.fallback()
}

func (c Catalog) fallback() Descriptor {
	for _, d := range c {
		if d.ID == fallbackDescriptor.ID {
			return d
		}
	}
	return fallbackDescriptor
}
