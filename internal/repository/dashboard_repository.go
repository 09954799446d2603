package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// BranchLoad is the number of not-yet-terminal tickets per branch.
type BranchLoad struct {
	BranchID   string
	BranchName string
	OpenCount  int
}

// ModelReliability aggregates repair pressure per device model.
type ModelReliability struct {
	Model      string
	TotalUnits int
	InTrouble  int
}

// DashboardRepository serves read-side projections. Nothing here mutates
// state or participates in the ticket state machine.
type DashboardRepository interface {
	CountTicketsByStatus(ctx context.Context) (map[domain.TicketStatus]int, error)
	OpenLoadByBranch(ctx context.Context) ([]BranchLoad, error)
	AssetReliability(ctx context.Context) ([]ModelReliability, error)
}

type dashboardRepository struct {
	pool *pgxpool.Pool
}

// NewDashboardRepository instantiates repository.
func NewDashboardRepository(pool *pgxpool.Pool) DashboardRepository {
	return &dashboardRepository{pool: pool}
}

func (r *dashboardRepository) CountTicketsByStatus(ctx context.Context) (map[domain.TicketStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM tickets GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.TicketStatus]int)
	for rows.Next() {
		var status domain.TicketStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *dashboardRepository) OpenLoadByBranch(ctx context.Context) ([]BranchLoad, error) {
	const query = `
        SELECT b.id, b.name, COUNT(t.id)
        FROM branches b
        LEFT JOIN tickets t ON t.branch_id = b.id AND t.status IN ($1,$2)
        GROUP BY b.id, b.name
        ORDER BY b.name`
	rows, err := r.pool.Query(ctx, query, domain.TicketStatusOpen, domain.TicketStatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []BranchLoad
	for rows.Next() {
		var load BranchLoad
		if err := rows.Scan(&load.BranchID, &load.BranchName, &load.OpenCount); err != nil {
			return nil, err
		}
		result = append(result, load)
	}
	return result, rows.Err()
}

func (r *dashboardRepository) AssetReliability(ctx context.Context) ([]ModelReliability, error) {
	const query = `
        SELECT model, COUNT(*),
               SUM(CASE WHEN status IN ($1,$2) THEN 1 ELSE 0 END)
        FROM assets
        GROUP BY model
        ORDER BY model`
	rows, err := r.pool.Query(ctx, query, domain.AssetStatusRepair, domain.AssetStatusDisposed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ModelReliability
	for rows.Next() {
		var rel ModelReliability
		if err := rows.Scan(&rel.Model, &rel.TotalUnits, &rel.InTrouble); err != nil {
			return nil, err
		}
		result = append(result, rel)
	}
	return result, rows.Err()
}
