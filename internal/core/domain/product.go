package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// ProductState is derived from which lifecycle fields are populated.
type ProductState string

const (
	StateIntake ProductState = "INTAKE"
	StateListed ProductState = "LISTED"
	StateSold   ProductState = "SOLD"
)

// ParseProductState validates a state filter coming from the API.
func ParseProductState(s string) (ProductState, error) {
	switch ProductState(s) {
	case StateIntake, StateListed, StateSold:
		return ProductState(s), nil
	}
	return "", fmt.Errorf("%w: unknown product state '%s'", apperrors.ErrValidation, s)
}

// Product is one piece of inventory.
// Cost, Shipping and Fee are frozen at intake because they embed a point-in-time rate.
type Product struct {
	ProductID string           `json:"productID"`
	UserID    string           `json:"userID"`
	PackageID *string          `json:"packageID,omitempty"`
	Position  int              `json:"position"` // order inside the package
	Category  string           `json:"category"`
	Brand     string           `json:"brand"`
	Name      string           `json:"name"`
	Cost      Money            `json:"cost"`
	Shipping  *Money           `json:"shipping,omitempty"`
	Fee       *Money           `json:"fee,omitempty"`
	SalePrice *decimal.Decimal `json:"salePrice,omitempty"` // KRW
	Profit    *decimal.Decimal `json:"profit,omitempty"`    // KRW, computed when sold
	SoldAt    *time.Time       `json:"soldAt,omitempty"`
	AuditFields
}

// State reports where the product is in its lifecycle.
func (p *Product) State() ProductState {
	switch {
	case p.SoldAt != nil:
		return StateSold
	case p.SalePrice != nil:
		return StateListed
	default:
		return StateIntake
	}
}

// InStock is true until the product is sold.
func (p *Product) InStock() bool {
	return p.SoldAt == nil
}

// CostKRW returns the frozen purchase cost in won.
func (p *Product) CostKRW() decimal.Decimal {
	return p.Cost.KRWValue()
}

// ShippingKRW returns the shipping cost in won, zero when absent.
func (p *Product) ShippingKRW() decimal.Decimal {
	return KRWValueOrZero(p.Shipping)
}

// FeeKRW returns the fee in won, zero when absent.
func (p *Product) FeeKRW() decimal.Decimal {
	return KRWValueOrZero(p.Fee)
}

// Validate checks the intake invariants.
func (p *Product) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: product name is required", apperrors.ErrValidation)
	}
	if err := p.Cost.Validate(); err != nil {
		return fmt.Errorf("cost: %w", err)
	}
	if p.Shipping != nil {
		if err := p.Shipping.Validate(); err != nil {
			return fmt.Errorf("shipping: %w", err)
		}
	}
	if p.Fee != nil {
		if err := p.Fee.Validate(); err != nil {
			return fmt.Errorf("fee: %w", err)
		}
	}
	return nil
}

// AssignSalePrice moves an Intake or Listed product to Listed.
func (p *Product) AssignSalePrice(price decimal.Decimal) error {
	if p.State() == StateSold {
		return fmt.Errorf("%w: sale price cannot change after the product is sold", apperrors.ErrValidation)
	}
	if price.IsNegative() {
		return fmt.Errorf("%w: sale price cannot be negative", apperrors.ErrValidation)
	}
	if price.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: sale price cannot exceed %s", apperrors.ErrValidation, MaxAmount)
	}
	price = price.Round(0)
	p.SalePrice = &price
	return nil
}

// ComputeProfit is salePrice - fee - shipping - cost, all in won.
func (p *Product) ComputeProfit() (decimal.Decimal, error) {
	if p.SalePrice == nil {
		return decimal.Zero, fmt.Errorf("%w: assign a sale price first", apperrors.ErrValidation)
	}
	return p.SalePrice.Sub(p.FeeKRW()).Sub(p.ShippingKRW()).Sub(p.CostKRW()), nil
}

// MarkSold moves a Listed product to Sold and freezes its profit.
// Without a sale price the call fails and SoldAt is left untouched.
func (p *Product) MarkSold(at time.Time) error {
	if p.SoldAt != nil {
		return fmt.Errorf("%w: product is already sold", apperrors.ErrValidation)
	}
	profit, err := p.ComputeProfit()
	if err != nil {
		return err
	}
	p.Profit = &profit
	p.SoldAt = &at
	return nil
}

// UndoSold returns a Sold product to Listed. Cost and profit stay as last computed.
func (p *Product) UndoSold() error {
	if p.SoldAt == nil {
		return fmt.Errorf("%w: product is not sold", apperrors.ErrValidation)
	}
	p.SoldAt = nil
	return nil
}
