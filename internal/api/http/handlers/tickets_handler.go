package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-desk/internal/api/dto"
	"github.com/spec-kit/support-desk/internal/auth"
	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/service"
	"github.com/spec-kit/support-desk/pkg/util"
)

// TicketsHandler manages branch-user ticket endpoints.
type TicketsHandler struct {
	tickets  *service.TicketService
	comments *service.CommentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(tickets *service.TicketService, comments *service.CommentService) *TicketsHandler {
	return &TicketsHandler{tickets: tickets, comments: comments}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.CategoryID == "" || req.TypeID == "" {
		return util.NewValidationError("category_id and type_id required", nil)
	}

	input := service.TicketCreateInput{
		CategoryID:  req.CategoryID,
		TypeID:      req.TypeID,
		Priority:    req.Priority,
		Description: req.Description,
		AssetID:     req.AssetID,
		Images:      req.Images,
	}
	ticket, err := h.tickets.Create(c.Context(), principal.User, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketSummary(ticket)})
}

// ListTickets GET /tickets. Branch users see their own tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	limit, offset := parsePage(c)
	tickets, err := h.tickets.ListByCreator(c.Context(), principal.User.ID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// ListBranchTickets GET /tickets/branch. Everything in the caller's branch
// except cancelled tickets.
func (h *TicketsHandler) ListBranchTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if principal.User.BranchID == nil {
		return util.NewValidationError("account has no branch", nil)
	}
	limit, offset := parsePage(c)
	tickets, err := h.tickets.ListByBranch(c.Context(), *principal.User.BranchID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticket, images, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := canViewTicket(principal.User, ticket); err != nil {
		return err
	}
	data := make([]string, 0, len(images))
	for i := range images {
		data = append(data, images[i].Data)
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetail(ticket, data)})
}

// CancelTicket POST /tickets/:id/cancel. Creator only.
func (h *TicketsHandler) CancelTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticket, err := h.tickets.Cancel(c.Context(), c.Params("id"), principal.User)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketSummary(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	comment, err := h.comments.AddComment(c.Context(), principal.User, c.Params("id"), req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCommentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *TicketsHandler) ListComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	ticket, _, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	if err := canViewTicket(principal.User, ticket); err != nil {
		return err
	}
	comments, err := h.comments.ListByTicket(c.Context(), ticket.ID)
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, dto.NewCommentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// canViewTicket admits admins and anyone from the ticket's branch.
func canViewTicket(user *domain.User, ticket *domain.Ticket) error {
	if user.Role == domain.RoleAdmin {
		return nil
	}
	if ticket.CreatorID == user.ID {
		return nil
	}
	if user.BranchID != nil && *user.BranchID == ticket.BranchID {
		return nil
	}
	return util.NewForbidden("ticket belongs to another branch")
}

func ticketSummaries(tickets []domain.Ticket) []dto.TicketSummary {
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketSummary(&tickets[i]))
	}
	return items
}

func parsePage(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func splitStatuses(raw string) []domain.TicketStatus {
	if raw == "" {
		return nil
	}
	var statuses []domain.TicketStatus
	for _, part := range strings.Split(raw, ",") {
		statuses = append(statuses, domain.TicketStatus(strings.ToUpper(strings.TrimSpace(part))))
	}
	return statuses
}
