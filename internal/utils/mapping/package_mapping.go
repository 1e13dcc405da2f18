package mapping

import (
	"fmt"

	"github.com/vintagenote/vn_backend/internal/core/domain"
	"github.com/vintagenote/vn_backend/internal/models"
)

// ToModelPackage converts a domain Package to a model Package
func ToModelPackage(d domain.Package) models.Package {
	return models.Package{
		PackageID:   d.PackageID,
		UserID:      d.UserID,
		Name:        d.Name,
		Shipping:    ToModelMoneyPtr(d.Shipping),
		Fee:         ToModelMoneyPtr(d.Fee),
		AddSaleAt:   d.AddSaleAt,
		ProductIDs:  d.ProductIDs,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainPackage converts a model Package to a domain Package
func ToDomainPackage(m models.Package) (domain.Package, error) {
	shipping, err := ToDomainMoneyPtr(m.Shipping)
	if err != nil {
		return domain.Package{}, fmt.Errorf("package %s shipping: %w", m.PackageID, err)
	}
	fee, err := ToDomainMoneyPtr(m.Fee)
	if err != nil {
		return domain.Package{}, fmt.Errorf("package %s fee: %w", m.PackageID, err)
	}
	productIDs := m.ProductIDs
	if productIDs == nil {
		productIDs = []string{}
	}
	return domain.Package{
		PackageID:   m.PackageID,
		UserID:      m.UserID,
		Name:        m.Name,
		Shipping:    shipping,
		Fee:         fee,
		ProductIDs:  productIDs,
		AddSaleAt:   m.AddSaleAt,
		AuditFields: toDomainAudit(m.AuditFields),
	}, nil
}
