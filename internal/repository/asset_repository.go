package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// AssetRepository encapsulates asset persistence. Both mutations are single
// atomic writes; disposal is terminal so neither touches a DISPOSED row.
type AssetRepository interface {
	Create(ctx context.Context, asset *domain.Asset) error
	Update(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
	ListByBranch(ctx context.Context, branchID string) ([]domain.Asset, error)
	ListAll(ctx context.Context) ([]domain.Asset, error)
	SetStatus(ctx context.Context, id string, status domain.AssetStatus) error
	IncrementRepairCount(ctx context.Context, id string) error
}

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository instantiates repository.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

const assetColumns = `id, code, brand, model, device_type, serial_number, purchase_date, warranty_expiry,
               status, repair_count, branch_id, created_at, updated_at`

func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	const query = `
        INSERT INTO assets (code, brand, model, device_type, serial_number, purchase_date, warranty_expiry, status, repair_count, branch_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		asset.Code,
		asset.Brand,
		asset.Model,
		asset.DeviceType,
		asset.SerialNumber,
		asset.PurchaseDate,
		asset.WarrantyExpiry,
		asset.Status,
		asset.RepairCount,
		asset.BranchID,
	).Scan(&asset.ID, &asset.CreatedAt, &asset.UpdatedAt)
}

func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	const query = `
        UPDATE assets SET code=$1, brand=$2, model=$3, device_type=$4, serial_number=$5,
            purchase_date=$6, warranty_expiry=$7, branch_id=$8, updated_at=NOW()
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		asset.Code,
		asset.Brand,
		asset.Model,
		asset.DeviceType,
		asset.SerialNumber,
		asset.PurchaseDate,
		asset.WarrantyExpiry,
		asset.BranchID,
		asset.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	var asset domain.Asset
	if err := r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id=$1`, id).Scan(
		&asset.ID,
		&asset.Code,
		&asset.Brand,
		&asset.Model,
		&asset.DeviceType,
		&asset.SerialNumber,
		&asset.PurchaseDate,
		&asset.WarrantyExpiry,
		&asset.Status,
		&asset.RepairCount,
		&asset.BranchID,
		&asset.CreatedAt,
		&asset.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) ListByBranch(ctx context.Context, branchID string) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE branch_id=$1 ORDER BY code`, branchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func (r *assetRepository) ListAll(ctx context.Context) ([]domain.Asset, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAssets(rows)
}

func (r *assetRepository) SetStatus(ctx context.Context, id string, status domain.AssetStatus) error {
	const query = `
        UPDATE assets SET status=$1, updated_at=NOW()
        WHERE id=$2 AND status <> $3`
	cmd, err := r.pool.Exec(ctx, query, status, id, domain.AssetStatusDisposed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *assetRepository) IncrementRepairCount(ctx context.Context, id string) error {
	const query = `
        UPDATE assets SET repair_count=repair_count+1, updated_at=NOW()
        WHERE id=$1 AND status <> $2`
	cmd, err := r.pool.Exec(ctx, query, id, domain.AssetStatusDisposed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAssets(rows pgx.Rows) ([]domain.Asset, error) {
	var result []domain.Asset
	for rows.Next() {
		var asset domain.Asset
		if err := rows.Scan(
			&asset.ID,
			&asset.Code,
			&asset.Brand,
			&asset.Model,
			&asset.DeviceType,
			&asset.SerialNumber,
			&asset.PurchaseDate,
			&asset.WarrantyExpiry,
			&asset.Status,
			&asset.RepairCount,
			&asset.BranchID,
			&asset.CreatedAt,
			&asset.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, asset)
	}
	return result, rows.Err()
}
