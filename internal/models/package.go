package models

import "time"

// Package is a row of the packages table plus its member ids in position order.
type Package struct {
	PackageID  string     `db:"package_id"`
	UserID     string     `db:"user_id"`
	Name       string     `db:"name"`
	Shipping   *Money     `db:"shipping"`
	Fee        *Money     `db:"fee"`
	AddSaleAt  *time.Time `db:"add_sale_at"`
	ProductIDs []string   `db:"product_ids"`
	AuditFields
}
