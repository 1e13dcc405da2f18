package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vintagenote/vn_backend/internal/apperrors"
	"github.com/vintagenote/vn_backend/internal/core/domain"
	portsrepo "github.com/vintagenote/vn_backend/internal/core/ports/repositories"
	"github.com/vintagenote/vn_backend/internal/models"
	"github.com/vintagenote/vn_backend/internal/utils/mapping"
)

type PgxPackageRepository struct {
	BaseRepository
}

func newPgxPackageRepository(pool *pgxpool.Pool) portsrepo.PackageRepositoryWithTx {
	return &PgxPackageRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPackageRepository implements portsrepo.PackageRepositoryWithTx
var _ portsrepo.PackageRepositoryWithTx = (*PgxPackageRepository)(nil)

// packageSelect loads packages with their member ids in position order.
const packageSelect = `
	SELECT pk.package_id, pk.user_id, pk.name, pk.shipping, pk.fee, pk.add_sale_at,
		COALESCE(
			(SELECT array_agg(pr.product_id ORDER BY pr.position, pr.created_at)
			 FROM products pr WHERE pr.package_id = pk.package_id),
			'{}'::text[]
		) AS product_ids,
		pk.created_at, pk.created_by, pk.last_updated_at, pk.last_updated_by
	FROM packages pk`

func scanPackage(row pgx.CollectableRow) (models.Package, error) {
	var m models.Package
	err := row.Scan(
		&m.PackageID,
		&m.UserID,
		&m.Name,
		&m.Shipping,
		&m.Fee,
		&m.AddSaleAt,
		&m.ProductIDs,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxPackageRepository) queryPackages(ctx context.Context, query string, args ...any) ([]domain.Package, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	modelPackages, err := pgx.CollectRows(rows, scanPackage)
	if err != nil {
		return nil, fmt.Errorf("failed to scan package rows: %w", err)
	}
	out := make([]domain.Package, len(modelPackages))
	for i, m := range modelPackages {
		if out[i], err = mapping.ToDomainPackage(m); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *PgxPackageRepository) FindPackageByID(ctx context.Context, userID, packageID string) (*domain.Package, error) {
	pkgs, err := r.queryPackages(ctx, packageSelect+` WHERE pk.user_id = $1 AND pk.package_id = $2;`, userID, packageID)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &pkgs[0], nil
}

func (r *PgxPackageRepository) FindPackagesByIDs(ctx context.Context, userID string, ids []string) ([]domain.Package, error) {
	pkgs, err := r.queryPackages(ctx, packageSelect+` WHERE pk.user_id = $1 AND pk.package_id = ANY($2);`, userID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Package, len(pkgs))
	for _, p := range pkgs {
		byID[p.PackageID] = p
	}
	ordered := make([]domain.Package, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("package %s: %w", id, apperrors.ErrNotFound)
		}
		ordered = append(ordered, p)
	}
	return ordered, nil
}

func (r *PgxPackageRepository) FindPackagesByPeriod(ctx context.Context, userID string, period domain.Period) ([]domain.Package, error) {
	return r.queryPackages(ctx,
		packageSelect+` WHERE pk.user_id = $1 AND pk.created_at >= $2 AND pk.created_at < $3
		ORDER BY pk.created_at DESC, pk.package_id DESC;`,
		userID, period.Start, period.End,
	)
}

func insertPackage(ctx context.Context, tx pgx.Tx, pkg domain.Package) error {
	m := mapping.ToModelPackage(pkg)
	_, err := tx.Exec(ctx, `
		INSERT INTO packages (package_id, user_id, name, shipping, fee, add_sale_at,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`,
		m.PackageID,
		m.UserID,
		m.Name,
		m.Shipping,
		m.Fee,
		m.AddSaleAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: package %s", apperrors.ErrDuplicate, m.PackageID)
		}
		return fmt.Errorf("failed to insert package %s: %w", m.PackageID, err)
	}
	return nil
}

// CreatePackage inserts the package and its members in one transaction.
func (r *PgxPackageRepository) CreatePackage(ctx context.Context, pkg domain.Package, products []domain.Product) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertPackage(ctx, tx, pkg); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		productQuery := `
			INSERT INTO products (product_id, user_id, package_id, position, category, brand, name, cost, shipping, fee,
				sale_price, profit, sold_at, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
		`
		for _, p := range products {
			m := mapping.ToModelProduct(p)
			batch.Queue(productQuery,
				m.ProductID,
				m.UserID,
				m.PackageID,
				m.Position,
				m.Category,
				m.Brand,
				m.Name,
				m.Cost,
				m.Shipping,
				m.Fee,
				m.SalePrice,
				m.Profit,
				m.SoldAt,
				m.CreatedAt,
				m.CreatedBy,
				m.LastUpdatedAt,
				m.LastUpdatedBy,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert products of package %s: %w", pkg.PackageID, err)
		}
		return nil
	})
}

// DeletePackage removes the package; members go with it through the foreign key cascade.
func (r *PgxPackageRepository) DeletePackage(ctx context.Context, userID, packageID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM packages WHERE user_id = $1 AND package_id = $2;`, userID, packageID)
	if err != nil {
		return fmt.Errorf("failed to delete package %s: %w", packageID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MergePackages inserts merged, re-parents every member in merged.ProductIDs order and
// deletes the source packages.
func (r *PgxPackageRepository) MergePackages(ctx context.Context, merged domain.Package, sourceIDs []string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertPackage(ctx, tx, merged); err != nil {
			return err
		}

		batch := &pgx.Batch{}
		for i, productID := range merged.ProductIDs {
			batch.Queue(`
				UPDATE products
				SET package_id = $1, position = $2, last_updated_at = $3, last_updated_by = $4
				WHERE user_id = $5 AND product_id = $6;`,
				merged.PackageID, i, merged.LastUpdatedAt, merged.LastUpdatedBy, merged.UserID, productID,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to move products into package %s: %w", merged.PackageID, err)
		}

		cmdTag, err := tx.Exec(ctx,
			`DELETE FROM packages WHERE user_id = $1 AND package_id = ANY($2) AND add_sale_at IS NULL;`,
			merged.UserID, sourceIDs,
		)
		if err != nil {
			return fmt.Errorf("failed to delete merged packages: %w", err)
		}
		if cmdTag.RowsAffected() != int64(len(sourceIDs)) {
			return fmt.Errorf("%w: packages changed while merging", apperrors.ErrValidation)
		}
		return nil
	})
}

// RegisterPackageSale stamps add_sale_at and writes each member's share of shipping and
// fee. A nil share keeps the member's own value.
func (r *PgxPackageRepository) RegisterPackageSale(ctx context.Context, pkg domain.Package, allocations []domain.Allocation) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, `
			UPDATE packages
			SET add_sale_at = $1, last_updated_at = $2, last_updated_by = $3
			WHERE user_id = $4 AND package_id = $5 AND add_sale_at IS NULL;`,
			pkg.AddSaleAt, pkg.LastUpdatedAt, pkg.LastUpdatedBy, pkg.UserID, pkg.PackageID,
		)
		if err != nil {
			return fmt.Errorf("failed to register sale of package %s: %w", pkg.PackageID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: package %s is already registered for sale", apperrors.ErrValidation, pkg.PackageID)
		}

		batch := &pgx.Batch{}
		for _, a := range allocations {
			batch.Queue(`
				UPDATE products
				SET shipping = COALESCE($1::jsonb, shipping), fee = COALESCE($2::jsonb, fee),
					last_updated_at = $3, last_updated_by = $4
				WHERE user_id = $5 AND product_id = $6;`,
				mapping.ToModelMoneyPtr(a.Shipping), mapping.ToModelMoneyPtr(a.Fee),
				pkg.LastUpdatedAt, pkg.LastUpdatedBy, pkg.UserID, a.ProductID,
			)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to allocate costs of package %s: %w", pkg.PackageID, err)
		}
		return nil
	})
}
