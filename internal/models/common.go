package models

import "time"

// AuditFields holds the audit columns shared by every table.
type AuditFields struct {
	CreatedAt     time.Time `db:"created_at"`
	CreatedBy     string    `db:"created_by"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
	LastUpdatedBy string    `db:"last_updated_by"`
}

// Money is the JSONB form of an amount and its conversion snapshot.
type Money struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
	Label    string `json:"label"`
	Rate     string `json:"rate"`
	KRW      string `json:"krw"`
}
