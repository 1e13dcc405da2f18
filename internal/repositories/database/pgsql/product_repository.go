package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	"github.com/vintagenote/vn_backend/internal/models"
	"github.com/vintagenote/vn_backend/internal/utils/mapping"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryFacade {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryFacade
var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

const productColumns = `product_id, user_id, package_id, position, category, brand, name, cost, shipping, fee,
	sale_price, profit, sold_at, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.CollectableRow) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.UserID,
		&m.PackageID,
		&m.Position,
		&m.Category,
		&m.Brand,
		&m.Name,
		&m.Cost,
		&m.Shipping,
		&m.Fee,
		&m.SalePrice,
		&m.Profit,
		&m.SoldAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]domain.Product, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	modelProducts, err := pgx.CollectRows(rows, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to scan product rows: %w", err)
	}
	return mapping.ToDomainProductSlice(modelProducts)
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, userID, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 AND product_id = $2;`
	products, err := r.queryProducts(ctx, query, userID, productID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &products[0], nil
}

func (r *PgxProductRepository) FindProductsByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at, product_id;`
	return r.queryProducts(ctx, query, userID, period.Start, period.End)
}

func (r *PgxProductRepository) FindProductsByPackage(ctx context.Context, userID, packageID string) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE user_id = $1 AND package_id = $2
		ORDER BY position, created_at;`
	return r.queryProducts(ctx, query, userID, packageID)
}

// stateCondition renders the column test for a derived lifecycle state.
func stateCondition(state domain.ProductState) string {
	switch state {
	case domain.StateSold:
		return "sold_at IS NOT NULL"
	case domain.StateListed:
		return "sold_at IS NULL AND sale_price IS NOT NULL"
	default:
		return "sold_at IS NULL AND sale_price IS NULL"
	}
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, q portsrepo.ProductQuery) ([]domain.Product, error) {
	var sb strings.Builder
	args := []any{q.UserID}
	sb.WriteString(`SELECT ` + productColumns + ` FROM products WHERE user_id = $1`)

	if !q.Period.Start.IsZero() {
		args = append(args, q.Period.Start, q.Period.End)
		fmt.Fprintf(&sb, " AND created_at >= $%d AND created_at < $%d", len(args)-1, len(args))
	}
	if q.State != nil {
		sb.WriteString(" AND " + stateCondition(*q.State))
	}
	if q.AfterCreatedAt != nil {
		args = append(args, *q.AfterCreatedAt, q.AfterID)
		fmt.Fprintf(&sb, " AND (created_at, product_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	args = append(args, q.Limit)
	fmt.Fprintf(&sb, " ORDER BY created_at DESC, product_id DESC LIMIT $%d;", len(args))

	return r.queryProducts(ctx, sb.String(), args...)
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET category = $1, brand = $2, name = $3, sale_price = $4, profit = $5, sold_at = $6,
			last_updated_at = $7, last_updated_by = $8
		WHERE user_id = $9 AND product_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Category,
		m.Brand,
		m.Name,
		m.SalePrice,
		m.Profit,
		m.SoldAt,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UserID,
		m.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %s: %w", m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProduct removes the product and drops its package once it has no members left.
func (r *PgxProductRepository) DeleteProduct(ctx context.Context, userID, productID string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var packageID *string
		err := tx.QueryRow(ctx,
			`DELETE FROM products WHERE user_id = $1 AND product_id = $2 RETURNING package_id;`,
			userID, productID,
		).Scan(&packageID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("failed to delete product %s: %w", productID, err)
		}
		if packageID == nil {
			return nil
		}

		_, err = tx.Exec(ctx, `
			DELETE FROM packages p
			WHERE p.package_id = $1 AND p.user_id = $2
				AND NOT EXISTS (SELECT 1 FROM products WHERE package_id = $1);`,
			*packageID, userID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete empty package %s: %w", *packageID, err)
		}
		return nil
	})
}
