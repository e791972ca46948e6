package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry. Price is a pointer because a product
// may be stored without one; a nil price counts as zero in lot aggregation.
type Product struct {
	ID          string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" gorm:"type:decimal(12,2)"`
	Barcode     string           `json:"barcode"`
	Lot         string           `json:"lot" gorm:"index"`
	Quantity    int              `json:"quantity"`
}

// ProductRequest is the create/update payload. Every field is optional;
// pointers keep "absent" distinct from "present but zero", which is what
// separates a full replace from a partial merge.
type ProductRequest struct {
	Description *string          `json:"description" form:"description"`
	Price       *decimal.Decimal `json:"price" form:"price"`
	Barcode     *string          `json:"barcode" form:"barcode"`
	Lot         *string          `json:"lot" form:"lot"`
	Quantity    *int             `json:"quantity" form:"quantity"`
}

// ProductPage is the pagination envelope returned by paged listings.
type ProductPage struct {
	Content       []Product `json:"content"`
	Page          int       `json:"page"`
	TotalPages    int       `json:"total_pages"`
	TotalElements int64     `json:"total_elements"`
}
