package domain

import "time"

type Category struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	DisplayOrder int32     `json:"display_order"`
	CreatedOn    time.Time `json:"created_on"`
}

type AttributeKind string

const (
	AttributeKindColor AttributeKind = "color"
	AttributeKindSize  AttributeKind = "size"
)

// Attribute is a color or size option. Value is a slug-like identifier,
// unique per kind.
type Attribute struct {
	ID        int32         `json:"id"`
	Kind      AttributeKind `json:"kind"`
	Label     string        `json:"label"`
	Value     string        `json:"value"`
	CreatedOn time.Time     `json:"created_on"`
}

type Banner struct {
	ID           int32     `json:"id"`
	Title        string    `json:"title"`
	ImagePath    string    `json:"image_path"`
	LinkURL      string    `json:"link_url"`
	DisplayOrder int32     `json:"display_order"`
	IsActive     bool      `json:"is_active"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}
