// Package models provides data model definitions for ScanBench.
package models

import (
	"database/sql/driver"
	"time"
)

// UUID is a wrapper around string for UUID v4 type safety.
type UUID string

// Value implements driver.Valuer for UUID.
func (u UUID) Value() (driver.Value, error) {
	return string(u), nil
}

// Scan implements sql.Scanner for UUID.
func (u *UUID) Scan(value interface{}) error {
	if value == nil {
		*u = ""
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*u = UUID(v)
	case string:
		*u = UUID(v)
	}
	return nil
}

// String returns the string representation of the UUID.
func (u UUID) String() string {
	return string(u)
}

// Kind identifies the barcode family an item encodes to.
type Kind string

const (
	KindDataMatrix Kind = "datamatrix"
	KindWeight     Kind = "weight"
	KindGS1        Kind = "gs1"
	KindSimple     Kind = "simple"
)

// Format is the rendering hint passed to the display surface.
type Format string

const (
	FormatDataMatrix Format = "datamatrix"
	FormatCode128    Format = "code128"
	FormatEAN13      Format = "ean13"
)

// ProductType distinguishes piece-count goods from weighed goods in GS1
// payloads.
type ProductType string

const (
	ProductPiece  ProductType = "piece"
	ProductWeight ProductType = "weight"
)

// DecimalPosUnset marks a piece item whose decimal position should be derived
// from its quantity rather than taken from the stored value.
const DecimalPosUnset = -1

// Item represents one catalog barcode entry. The payload is always
// recomputable from the remaining fields; items are regenerated rather than
// mutated, except for the Active selection flag.
type Item struct {
	ID          UUID   `db:"id" json:"id"`
	FolderID    UUID   `db:"folder_id" json:"folder_id"`
	Kind        Kind   `db:"kind" json:"kind"`
	Payload     string `db:"payload" json:"payload"`
	SourceValue string `db:"source_value" json:"source_value"`

	// DataMatrix fields
	TemplateID string `db:"template_id" json:"template_id,omitempty"`

	// Weight-barcode fields
	Prefix      string `db:"prefix" json:"prefix,omitempty"`
	WeightGrams int    `db:"weight_grams" json:"weight_grams,omitempty"`

	// GS1 fields
	ProductType ProductType `db:"product_type" json:"product_type,omitempty"`
	Quantity    float64     `db:"quantity" json:"quantity,omitempty"`
	Discount    int         `db:"discount" json:"discount,omitempty"`
	UniqueID    string      `db:"unique_id" json:"unique_id,omitempty"`
	DecimalPos  int         `db:"decimal_pos" json:"decimal_pos,omitempty"`

	Active    bool  `db:"active" json:"active"`
	Position  int   `db:"position" json:"position"`
	CreatedAt int64 `db:"created_at" json:"created_at"`
	UpdatedAt int64 `db:"updated_at" json:"updated_at"`
}

// TableName returns the table name for Item.
func (Item) TableName() string {
	return "items"
}

// CreatedAtTime returns the CreatedAt as time.Time.
func (i *Item) CreatedAtTime() time.Time {
	return time.Unix(i.CreatedAt, 0)
}

// Touch updates the UpdatedAt timestamp.
func (i *Item) Touch() {
	i.UpdatedAt = time.Now().Unix()
}
