package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// CatalogRepository resolves error categories and types used on tickets.
type CatalogRepository interface {
	GetCategory(ctx context.Context, id string) (*domain.ErrorCategory, error)
	GetType(ctx context.Context, id string) (*domain.ErrorType, error)
	ListCategories(ctx context.Context) ([]domain.ErrorCategory, error)
	ListTypesByCategory(ctx context.Context, categoryID string) ([]domain.ErrorType, error)
}

type catalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository instantiates repository.
func NewCatalogRepository(pool *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{pool: pool}
}

func (r *catalogRepository) GetCategory(ctx context.Context, id string) (*domain.ErrorCategory, error) {
	var cat domain.ErrorCategory
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM error_categories WHERE id=$1`, id).Scan(&cat.ID, &cat.Name); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *catalogRepository) GetType(ctx context.Context, id string) (*domain.ErrorType, error) {
	var typ domain.ErrorType
	if err := r.pool.QueryRow(ctx,
		`SELECT id, name, category_id FROM error_types WHERE id=$1`, id).Scan(
		&typ.ID, &typ.Name, &typ.CategoryID); err != nil {
		return nil, err
	}
	return &typ, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.ErrorCategory, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM error_categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ErrorCategory
	for rows.Next() {
		var cat domain.ErrorCategory
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			return nil, err
		}
		result = append(result, cat)
	}
	return result, rows.Err()
}

func (r *catalogRepository) ListTypesByCategory(ctx context.Context, categoryID string) ([]domain.ErrorType, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, category_id FROM error_types WHERE category_id=$1 ORDER BY name`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ErrorType
	for rows.Next() {
		var typ domain.ErrorType
		if err := rows.Scan(&typ.ID, &typ.Name, &typ.CategoryID); err != nil {
			return nil, err
		}
		result = append(result, typ)
	}
	return result, rows.Err()
}
