package mapping

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/models"
)

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func fromNullDecimal(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// ToModelProduct converts a domain Product to a model Product
func ToModelProduct(d domain.Product) models.Product {
	return models.Product{
		ProductID:   d.ProductID,
		UserID:      d.UserID,
		PackageID:   d.PackageID,
		Position:    d.Position,
		Category:    d.Category,
		Brand:       d.Brand,
		Name:        d.Name,
		Cost:        ToModelMoney(d.Cost),
		Shipping:    ToModelMoneyPtr(d.Shipping),
		Fee:         ToModelMoneyPtr(d.Fee),
		SalePrice:   toNullDecimal(d.SalePrice),
		Profit:      toNullDecimal(d.Profit),
		SoldAt:      d.SoldAt,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainProduct converts a model Product to a domain Product
func ToDomainProduct(m models.Product) (domain.Product, error) {
	cost, err := ToDomainMoney(m.Cost)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s cost: %w", m.ProductID, err)
	}
	shipping, err := ToDomainMoneyPtr(m.Shipping)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s shipping: %w", m.ProductID, err)
	}
	fee, err := ToDomainMoneyPtr(m.Fee)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s fee: %w", m.ProductID, err)
	}
	return domain.Product{
		ProductID:   m.ProductID,
		UserID:      m.UserID,
		PackageID:   m.PackageID,
		Position:    m.Position,
		Category:    m.Category,
		Brand:       m.Brand,
		Name:        m.Name,
		Cost:        cost,
		Shipping:    shipping,
		Fee:         fee,
		SalePrice:   fromNullDecimal(m.SalePrice),
		Profit:      fromNullDecimal(m.Profit),
		SoldAt:      m.SoldAt,
		AuditFields: toDomainAudit(m.AuditFields),
	}, nil
}

// ToDomainProductSlice converts a slice of model Products to domain Products
func ToDomainProductSlice(ms []models.Product) ([]domain.Product, error) {
	ds := make([]domain.Product, len(ms))
	for i, m := range ms {
		d, err := ToDomainProduct(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
