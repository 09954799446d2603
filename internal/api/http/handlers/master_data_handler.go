package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/pkg/util"
)

// MasterDataHandler serves branches and the error catalog. These are thin
// lookups over reference data, so the handler talks to repositories directly.
type MasterDataHandler struct {
	branches repository.BranchRepository
	catalog  repository.CatalogRepository
}

// NewMasterDataHandler constructs handler.
func NewMasterDataHandler(branches repository.BranchRepository, catalog repository.CatalogRepository) *MasterDataHandler {
	return &MasterDataHandler{branches: branches, catalog: catalog}
}

// CreateBranch POST /admin/branches.
func (h *MasterDataHandler) CreateBranch(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Code == "" {
		return util.NewValidationError("name and code required", nil)
	}

	branch := &domain.Branch{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Code:          req.Code,
		ContactNumber: req.ContactNumber,
		Location:      req.Location,
	}
	if err := h.branches.Create(c.Context(), branch); err != nil {
		return util.MapError(err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBranchResponse(branch)})
}

// ListBranches GET /branches.
func (h *MasterDataHandler) ListBranches(c *fiber.Ctx) error {
	branches, err := h.branches.ListAll(c.Context())
	if err != nil {
		return util.MapError(err)
	}
	items := make([]dto.BranchResponse, 0, len(branches))
	for i := range branches {
		items = append(items, dto.NewBranchResponse(&branches[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListCategories GET /catalog/categories.
func (h *MasterDataHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.catalog.ListCategories(c.Context())
	if err != nil {
		return util.MapError(err)
	}
	items := make([]dto.ErrorCategoryResponse, 0, len(categories))
	for _, cat := range categories {
		items = append(items, dto.ErrorCategoryResponse{ID: cat.ID, Name: cat.Name})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListTypes GET /catalog/categories/:id/types.
func (h *MasterDataHandler) ListTypes(c *fiber.Ctx) error {
	types, err := h.catalog.ListTypesByCategory(c.Context(), c.Params("id"))
	if err != nil {
		return util.MapError(err)
	}
	items := make([]dto.ErrorTypeResponse, 0, len(types))
	for _, t := range types {
		items = append(items, dto.ErrorTypeResponse{ID: t.ID, Name: t.Name, CategoryID: t.CategoryID})
	}
	return c.JSON(fiber.Map{"data": items})
}
