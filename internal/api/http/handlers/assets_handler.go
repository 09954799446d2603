package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/util"
)

// AssetsHandler manages the equipment registry endpoints.
type AssetsHandler struct {
	assets *service.AssetService
}

// NewAssetsHandler constructs handler.
func NewAssetsHandler(assets *service.AssetService) *AssetsHandler {
	return &AssetsHandler{assets: assets}
}

// CreateAsset POST /admin/assets.
func (h *AssetsHandler) CreateAsset(c *fiber.Ctx) error {
	var req dto.CreateAssetRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Code == "" || req.BranchID == "" {
		return util.NewValidationError("code and branch_id required", nil)
	}

	asset, err := h.assets.CreateAsset(c.Context(), service.AssetInput{
		Code:           req.Code,
		Brand:          req.Brand,
		Model:          req.Model,
		DeviceType:     req.DeviceType,
		SerialNumber:   req.SerialNumber,
		PurchaseDate:   req.PurchaseDate,
		WarrantyExpiry: req.WarrantyExpiry,
		BranchID:       req.BranchID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAssetResponse(asset)})
}

// GetAsset GET /assets/:id. Returns the asset with its repair history.
func (h *AssetsHandler) GetAsset(c *fiber.Ctx) error {
	asset, repairs, err := h.assets.GetAsset(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	history := make([]dto.RepairRecordResponse, 0, len(repairs))
	for i := range repairs {
		history = append(history, dto.NewRepairRecordResponse(&repairs[i]))
	}
	return c.JSON(fiber.Map{"data": dto.AssetDetailResponse{
		Asset:   dto.NewAssetResponse(asset),
		Repairs: history,
	}})
}

// ListAssets GET /assets. Admins see everything; branch users see their
// branch's registry.
func (h *AssetsHandler) ListAssets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}

	var (
		assets []domain.Asset
		err    error
	)
	if principal.User.Role == domain.RoleAdmin {
		if branchID := c.Query("branch_id"); branchID != "" {
			assets, err = h.assets.ListByBranch(c.Context(), branchID)
		} else {
			assets, err = h.assets.ListAll(c.Context())
		}
	} else {
		if principal.User.BranchID == nil {
			return util.NewValidationError("account has no branch", nil)
		}
		assets, err = h.assets.ListByBranch(c.Context(), *principal.User.BranchID)
	}
	if err != nil {
		return err
	}

	items := make([]dto.AssetResponse, 0, len(assets))
	for i := range assets {
		items = append(items, dto.NewAssetResponse(&assets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
