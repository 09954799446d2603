package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// BranchRepository provides branch master data.
type BranchRepository interface {
	Create(ctx context.Context, branch *domain.Branch) error
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	ListAll(ctx context.Context) ([]domain.Branch, error)
}

type branchRepository struct {
	pool *pgxpool.Pool
}

// NewBranchRepository instantiates repository.
func NewBranchRepository(pool *pgxpool.Pool) BranchRepository {
	return &branchRepository{pool: pool}
}

func (r *branchRepository) Create(ctx context.Context, branch *domain.Branch) error {
	const query = `
        INSERT INTO branches (name, code, contact_number, location)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		branch.Name,
		branch.Code,
		branch.ContactNumber,
		branch.Location,
	).Scan(&branch.ID, &branch.CreatedAt)
}

func (r *branchRepository) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	var branch domain.Branch
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, code, contact_number, location, created_at FROM branches WHERE id=$1`,
		id).Scan(
		&branch.ID,
		&branch.Name,
		&branch.Code,
		&branch.ContactNumber,
		&branch.Location,
		&branch.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ListAll(ctx context.Context) ([]domain.Branch, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, code, contact_number, location, created_at FROM branches ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Branch
	for rows.Next() {
		var branch domain.Branch
		if err := rows.Scan(
			&branch.ID,
			&branch.Name,
			&branch.Code,
			&branch.ContactNumber,
			&branch.Location,
			&branch.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, branch)
	}
	return result, rows.Err()
}
