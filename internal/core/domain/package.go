package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vintagenote/vn_backend/internal/apperrors"
)

// Package groups products that arrived in one shipment and share its shipping and fee.
type Package struct {
	PackageID  string     `json:"packageID"`
	UserID     string     `json:"userID"`
	Name       string     `json:"name"`
	Shipping   *Money     `json:"shipping,omitempty"`
	Fee        *Money     `json:"fee,omitempty"`
	ProductIDs []string   `json:"productIDs"`
	AddSaleAt  *time.Time `json:"addSaleAt,omitempty"`
	AuditFields
}

// IsBundled is true once several products share the package.
func (p *Package) IsBundled() bool {
	return len(p.ProductIDs) > 1
}

// IsSaleRegistered is true once the members were released for sale.
func (p *Package) IsSaleRegistered() bool {
	return p.AddSaleAt != nil
}

// EnsureMutable fails for sale registered packages.
func (p *Package) EnsureMutable() error {
	if p.IsSaleRegistered() {
		return fmt.Errorf("%w: package %s is registered for sale and can no longer change", apperrors.ErrValidation, p.PackageID)
	}
	return nil
}

// MergePackages builds a new package holding the members of pkgs in input order.
// Shipping and fee become won amounts summing every input's won value.
func MergePackages(packageID, userID, name string, pkgs []Package, at time.Time) (*Package, error) {
	if len(pkgs) < 2 {
		return nil, fmt.Errorf("%w: at least two packages are required to merge", apperrors.ErrValidation)
	}

	var (
		productIDs          []string
		shipping, fee       decimal.Decimal
		hasShipping, hasFee bool
		krwPerUSD           decimal.Decimal
	)
	for _, p := range pkgs {
		if p.UserID != userID {
			return nil, fmt.Errorf("%w: package %s belongs to another user", apperrors.ErrForbidden, p.PackageID)
		}
		if err := p.EnsureMutable(); err != nil {
			return nil, err
		}
		for _, m := range []*Money{p.Shipping, p.Fee} {
			if m == nil {
				continue
			}
			if err := m.Validate(); err != nil {
				return nil, fmt.Errorf("package %s: %w", p.PackageID, err)
			}
			if krwPerUSD.IsZero() {
				krwPerUSD = m.Exchange.KRWPerUSD()
			}
		}
		if p.Shipping != nil {
			shipping = shipping.Add(p.Shipping.KRWValue())
			hasShipping = true
		}
		if p.Fee != nil {
			fee = fee.Add(p.Fee.KRWValue())
			hasFee = true
		}
		productIDs = append(productIDs, p.ProductIDs...)
	}

	if name == "" {
		name = pkgs[0].Name
	}
	merged := &Package{
		PackageID:   packageID,
		UserID:      userID,
		Name:        name,
		ProductIDs:  productIDs,
		AuditFields: NewAuditFields(userID, at),
	}
	if hasShipping {
		merged.Shipping = &Money{Amount: shipping, Exchange: KRWCurrency(krwPerUSD)}
	}
	if hasFee {
		merged.Fee = &Money{Amount: fee, Exchange: KRWCurrency(krwPerUSD)}
	}
	return merged, nil
}

// RegisterSale releases the members for sale.
func (p *Package) RegisterSale(at time.Time) error {
	if err := p.EnsureMutable(); err != nil {
		return err
	}
	if len(p.ProductIDs) == 0 {
		return fmt.Errorf("%w: package has no products", apperrors.ErrValidation)
	}
	p.AddSaleAt = &at
	return nil
}

// Allocation is the share of package level costs assigned to one member.
type Allocation struct {
	ProductID string
	Shipping  *Money
	Fee       *Money
}

// Allocate distributes the package shipping and fee across members in whole won.
// A nil package amount leaves the members' own values in place (nil in the result).
func (p *Package) Allocate() []Allocation {
	n := len(p.ProductIDs)
	out := make([]Allocation, n)
	shipping := splitMoney(p.Shipping, n)
	fee := splitMoney(p.Fee, n)
	for i, id := range p.ProductIDs {
		out[i] = Allocation{ProductID: id}
		if shipping != nil {
			out[i].Shipping = &shipping[i]
		}
		if fee != nil {
			out[i].Fee = &fee[i]
		}
	}
	return out
}

func splitMoney(m *Money, n int) []Money {
	if m == nil || n == 0 {
		return nil
	}
	exchange := KRWCurrency(m.Exchange.KRWPerUSD())
	shares := SplitEvenly(m.KRWValue(), n)
	out := make([]Money, n)
	for i, s := range shares {
		out[i] = Money{Amount: s, Exchange: exchange}
	}
	return out
}

// SplitEvenly divides a whole-won total into n whole-won shares; the remainder goes to
// the first shares so the parts always add up to total.
func SplitEvenly(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).Floor()
	remainder := total.Sub(base.Mul(count)).IntPart()

	shares := make([]decimal.Decimal, n)
	one := decimal.NewFromInt(1)
	for i := range shares {
		shares[i] = base
		if int64(i) < remainder {
			shares[i] = base.Add(one)
		}
	}
	return shares
}
