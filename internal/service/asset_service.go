package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

// AssetService handles asset administration. Ticket-driven status changes do
// not go through here; the ticket service talks to the repository directly.
type AssetService struct {
	assets  repository.AssetRepository
	repairs repository.RepairRecordRepository
}

// NewAssetService constructs the service.
func NewAssetService(assets repository.AssetRepository, repairs repository.RepairRecordRepository) *AssetService {
	return &AssetService{assets: assets, repairs: repairs}
}

// AssetInput describes asset create/update payloads.
type AssetInput struct {
	Code           string
	Brand          string
	Model          string
	DeviceType     string
	SerialNumber   string
	PurchaseDate   *string
	WarrantyExpiry *string
	BranchID       string
}

// CreateAsset registers a new asset as ACTIVE.
func (s *AssetService) CreateAsset(ctx context.Context, input AssetInput) (*domain.Asset, error) {
	if strings.TrimSpace(input.Code) == "" || strings.TrimSpace(input.BranchID) == "" {
		return nil, apperrors.NewValidationError("code and branch_id required", nil)
	}

	asset := &domain.Asset{
		Code:         strings.TrimSpace(input.Code),
		Brand:        input.Brand,
		Model:        input.Model,
		DeviceType:   input.DeviceType,
		SerialNumber: input.SerialNumber,
		Status:       domain.AssetStatusActive,
		BranchID:     input.BranchID,
	}
	var err error
	if asset.PurchaseDate, err = parseDate(input.PurchaseDate); err != nil {
		return nil, apperrors.NewValidationError("invalid purchase_date", nil)
	}
	if asset.WarrantyExpiry, err = parseDate(input.WarrantyExpiry); err != nil {
		return nil, apperrors.NewValidationError("invalid warranty_expiry", nil)
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		return nil, apperrors.MapError(err)
	}
	return asset, nil
}

// GetAsset returns an asset with its repair history.
func (s *AssetService) GetAsset(ctx context.Context, id string) (*domain.Asset, []domain.RepairRecord, error) {
	asset, err := s.assets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("asset", map[string]any{"asset_id": id})
		}
		return nil, nil, apperrors.MapError(err)
	}
	history, err := s.repairs.ListByAsset(ctx, asset.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return asset, history, nil
}

// ListByBranch returns a branch's assets.
func (s *AssetService) ListByBranch(ctx context.Context, branchID string) ([]domain.Asset, error) {
	assets, err := s.assets.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

// ListAll returns every registered asset.
func (s *AssetService) ListAll(ctx context.Context) ([]domain.Asset, error) {
	assets, err := s.assets.ListAll(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assets, nil
}

func parseDate(val *string) (*time.Time, error) {
	if val == nil || strings.TrimSpace(*val) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", strings.TrimSpace(*val))
	if err != nil {
		return nil, err
	}
	return &t, nil
}
