package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// RepairRecordRepository is the append-only repair ledger. Records are never
// updated or deleted; uniqueness per ticket is the caller's responsibility.
type RepairRecordRepository interface {
	Record(ctx context.Context, record *domain.RepairRecord) error
	ListByAsset(ctx context.Context, assetID string) ([]domain.RepairRecord, error)
	GetByTicket(ctx context.Context, ticketID string) (*domain.RepairRecord, error)
}

type repairRecordRepository struct {
	pool *pgxpool.Pool
}

// NewRepairRecordRepository instantiates repository.
func NewRepairRecordRepository(pool *pgxpool.Pool) RepairRecordRepository {
	return &repairRecordRepository{pool: pool}
}

func (r *repairRecordRepository) Record(ctx context.Context, record *domain.RepairRecord) error {
	const query = `
        INSERT INTO repair_records (asset_id, ticket_id, action_taken, repair_date, cost)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		record.AssetID,
		record.TicketID,
		record.ActionTaken,
		record.RepairDate,
		record.Cost,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *repairRecordRepository) ListByAsset(ctx context.Context, assetID string) ([]domain.RepairRecord, error) {
	const query = `
        SELECT id, asset_id, ticket_id, action_taken, repair_date, cost, created_at
        FROM repair_records WHERE asset_id=$1 ORDER BY repair_date DESC, created_at DESC`
	rows, err := r.pool.Query(ctx, query, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.RepairRecord
	for rows.Next() {
		var record domain.RepairRecord
		if err := rows.Scan(
			&record.ID,
			&record.AssetID,
			&record.TicketID,
			&record.ActionTaken,
			&record.RepairDate,
			&record.Cost,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

func (r *repairRecordRepository) GetByTicket(ctx context.Context, ticketID string) (*domain.RepairRecord, error) {
	const query = `
        SELECT id, asset_id, ticket_id, action_taken, repair_date, cost, created_at
        FROM repair_records WHERE ticket_id=$1`
	var record domain.RepairRecord
	if err := r.pool.QueryRow(ctx, query, ticketID).Scan(
		&record.ID,
		&record.AssetID,
		&record.TicketID,
		&record.ActionTaken,
		&record.RepairDate,
		&record.Cost,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}
