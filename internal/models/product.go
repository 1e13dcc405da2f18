package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a row of the products table. Money columns are JSONB.
type Product struct {
	ProductID string              `db:"product_id"`
	UserID    string              `db:"user_id"`
	PackageID *string             `db:"package_id"`
	Position  int                 `db:"position"`
	Category  string              `db:"category"`
	Brand     string              `db:"brand"`
	Name      string              `db:"name"`
	Cost      Money               `db:"cost"`
	Shipping  *Money              `db:"shipping"`
	Fee       *Money              `db:"fee"`
	SalePrice decimal.NullDecimal `db:"sale_price"`
	Profit    decimal.NullDecimal `db:"profit"`
	SoldAt    *time.Time          `db:"sold_at"`
	AuditFields
}
