package services

import (
	"context"
	"io"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/dto"
)

// DashboardSvc aggregates a month of products.
type DashboardSvc interface {
	// GetDashboard summarizes the period in view. Breakdowns are only filled for pro users.
	GetDashboard(ctx context.Context, userID string, period domain.Period, view domain.CurrencyCode) (*dto.DashboardResponse, error)
}

// ExportSvc writes product data for offline use.
type ExportSvc interface {
	// ExportProductsCSV writes the period's products as CSV. Pro only.
	ExportProductsCSV(ctx context.Context, userID string, period domain.Period, w io.Writer) error
}
