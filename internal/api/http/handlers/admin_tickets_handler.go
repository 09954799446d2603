package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/repository"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/util"
)

// AdminTicketsHandler manages the admin side of the ticket lifecycle.
type AdminTicketsHandler struct {
	tickets *service.TicketService
}

// NewAdminTicketsHandler constructs handler.
func NewAdminTicketsHandler(tickets *service.TicketService) *AdminTicketsHandler {
	return &AdminTicketsHandler{tickets: tickets}
}

// ListTickets GET /admin/tickets.
func (h *AdminTicketsHandler) ListTickets(c *fiber.Ctx) error {
	filter := parseAdminTicketQuery(c)
	tickets, err := h.tickets.ListAll(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// ListAssigned GET /admin/tickets/assigned.
func (h *AdminTicketsHandler) ListAssigned(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	limit, offset := parsePage(c)
	tickets, err := h.tickets.ListAssigned(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// StartTicket POST /admin/tickets/:id/start. First caller wins the claim;
// everyone else gets a conflict.
func (h *AdminTicketsHandler) StartTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.Start(c.Context(), c.Params("id"), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(ticket)})
}

// CloseTicket POST /admin/tickets/:id/close.
func (h *AdminTicketsHandler) CloseTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CloseTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	input := service.TicketCloseInput{
		Resolution:   req.Resolution,
		DisposeAsset: req.DisposeAsset,
		Cost:         req.Cost,
	}
	ticket, err := h.tickets.Close(c.Context(), c.Params("id"), principal.User, input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(ticket)})
}

// UpdateStatus PATCH /admin/tickets/:id/status.
func (h *AdminTicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateTicketStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(ticket)})
}

func parseAdminTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	filter.Statuses = splitStatuses(c.Query("status"))
	if branchID := c.Query("branch_id"); branchID != "" {
		filter.BranchID = &branchID
	}
	if assetID := c.Query("asset_id"); assetID != "" {
		filter.AssetID = &assetID
	}
	if from := parseRFC3339(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseRFC3339(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	filter.Limit, filter.Offset = parsePage(c)
	return filter
}

func parseRFC3339(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}
