package domain

import "time"

type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "available"
	ProductStatusRented      ProductStatus = "rented"
	ProductStatusMaintenance ProductStatus = "maintenance"
)

type Product struct {
	ID              int32         `json:"id"`
	Name            string        `json:"name"`
	SKU             string        `json:"sku"`
	BaseSKU         string        `json:"base_sku"`
	ParentProductID *int32        `json:"parent_product_id,omitempty"`
	IsVariant       bool          `json:"is_variant"`
	// Cached field: reflects whether an active rental currently holds the
	// product, except when manually set to maintenance. Corrected by the
	// status reconciler, never trusted blindly.
	Status      ProductStatus `json:"status"`
	Quantity    int32         `json:"quantity"`
	PriceCents  int32         `json:"price_cents"`
	CategoryID  *int32        `json:"category_id,omitempty"`
	SizeValue   string        `json:"size_value"`
	ColorValue  string        `json:"color_value"`
	Description string        `json:"description"`
	Images      []ProductImage `json:"images,omitempty"`
	CreatedOn   time.Time     `json:"created_on"`
	UpdatedOn   time.Time     `json:"updated_on"`
}

type ProductImage struct {
	ID           int32     `json:"id"`
	ProductID    int32     `json:"product_id"`
	FileName     string    `json:"file_name"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	MimeType     string    `json:"mime_type"`
	IsPrimary    bool      `json:"is_primary"`
	DisplayOrder int32     `json:"display_order"`
	CreatedOn    time.Time `json:"created_on"`
}
