package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/internal/repository"
	apperrors "github.com/spec-kit/support-desk/pkg/util"
)

const maxTicketImages = 5

// TicketService owns the ticket lifecycle state machine and keeps linked
// asset state and the repair ledger in sync with ticket transitions.
type TicketService struct {
	tickets    repository.TicketRepository
	assets     repository.AssetRepository
	repairs    repository.RepairRecordRepository
	catalog    repository.CatalogRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	AssetRepo  repository.AssetRepository
	RepairRepo repository.RepairRecordRepository
	Catalog    repository.CatalogRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	CategoryID  string
	TypeID      string
	Priority    domain.TicketPriority
	Description string
	AssetID     *string
	Images      []string
}

// TicketCloseInput describes the close payload. Cost arrives as the raw
// string from the request; a malformed value is logged and treated as zero.
type TicketCloseInput struct {
	Resolution   string
	DisposeAsset bool
	Cost         string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		assets:     deps.AssetRepo,
		repairs:    deps.RepairRepo,
		catalog:    deps.Catalog,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Create opens a new ticket for the creator. The branch is taken from the
// linked asset when one is given, otherwise from the creator. All admins are
// notified out-of-band.
func (s *TicketService) Create(ctx context.Context, creator *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	if creator == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}
	if len(input.Images) > maxTicketImages {
		return nil, apperrors.NewValidationError("too many images", map[string]any{"max": maxTicketImages})
	}

	category, err := s.catalog.GetCategory(ctx, input.CategoryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown error category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}
	errType, err := s.catalog.GetType(ctx, input.TypeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("unknown error type", map[string]any{"type_id": input.TypeID})
		}
		return nil, apperrors.MapError(err)
	}

	branchID := ""
	if input.AssetID != nil {
		asset, err := s.assets.GetByID(ctx, *input.AssetID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewValidationError("unknown asset", map[string]any{"asset_id": *input.AssetID})
			}
			return nil, apperrors.MapError(err)
		}
		branchID = asset.BranchID
	} else {
		if creator.BranchID == nil {
			return nil, apperrors.NewValidationError("creator has no branch and no asset was given", nil)
		}
		branchID = *creator.BranchID
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	id := uuid.NewString()
	ticket := &domain.Ticket{
		ID:          id,
		Code:        ticketCodeFromID(id),
		Subject:     category.Name + " - " + errType.Name,
		Description: strings.TrimSpace(input.Description),
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
		CreatorID:   creator.ID,
		BranchID:    branchID,
		CategoryID:  category.ID,
		TypeID:      errType.ID,
		AssetID:     input.AssetID,
	}

	if err := s.tickets.Create(ctx, ticket, input.Images); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  creator.ID,
		Payload: events.TicketCreatedPayload{
			TicketCode:  ticket.Code,
			Subject:     ticket.Subject,
			Priority:    ticket.Priority,
			BranchID:    ticket.BranchID,
			CreatorID:   creator.ID,
			CreatorName: creator.FullName,
		},
	})
	return ticket, nil
}

// Start claims an OPEN ticket for the acting admin. The claim is a single
// conditional write keyed on the OPEN status, so under concurrent starts
// exactly one admin wins; everyone else gets a conflict.
func (s *TicketService) Start(ctx context.Context, ticketID string, admin *domain.User) (*domain.Ticket, error) {
	if admin == nil {
		return nil, apperrors.NewUnauthorized("admin required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if ticket.Status != domain.TicketStatusOpen {
		return nil, apperrors.NewConflict("ticket already taken", map[string]any{"status": ticket.Status})
	}

	claimed, err := s.tickets.ClaimOpen(ctx, ticket.ID, admin.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !claimed {
		return nil, apperrors.NewConflict("ticket already taken", nil)
	}

	ticket.Status = domain.TicketStatusInProgress
	ticket.AssigneeID = &admin.ID

	// Only the claim winner reaches this point for a given ticket, so the
	// asset write needs no further guard.
	if ticket.AssetID != nil {
		if err := s.assets.SetStatus(ctx, *ticket.AssetID, domain.AssetStatusRepair); err != nil {
			s.logger.Error("failed to mark asset under repair",
				zap.String("ticket_id", ticket.ID),
				zap.String("asset_id", *ticket.AssetID),
				zap.Error(err))
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStarted,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload: events.TicketStartedPayload{
			TicketCode: ticket.Code,
			CreatorID:  ticket.CreatorID,
			AdminID:    admin.ID,
			AdminName:  admin.FullName,
		},
	})
	return ticket, nil
}

// Close resolves an IN_PROGRESS ticket. When the ticket has a linked asset
// the asset state is synchronized and a repair record may be appended: a
// disposal always writes a record, a plain repair only when the resolution
// text is non-empty.
func (s *TicketService) Close(ctx context.Context, ticketID string, admin *domain.User, input TicketCloseInput) (*domain.Ticket, error) {
	if admin == nil {
		return nil, apperrors.NewUnauthorized("admin required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if !isValidTransition(ticket.Status, domain.TicketStatusResolved) {
		return nil, apperrors.NewConflict("ticket cannot be resolved in current status", map[string]any{"status": ticket.Status})
	}

	resolution := strings.TrimSpace(input.Resolution)
	cost := s.parseCost(ticket.ID, input.Cost)

	now := time.Now()
	prev := ticket.Status
	ticket.Status = domain.TicketStatusResolved
	ticket.ResolvedAt = &now
	if err := s.tickets.UpdateStatus(ctx, ticket, prev); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}

	// The ticket is resolved at this point; asset-sync failures are logged
	// and swallowed, matching the claim path.
	if ticket.AssetID != nil {
		if err := s.syncAssetOnClose(ctx, ticket, resolution, input.DisposeAsset, cost, now); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				s.logger.Warn("linked asset already disposed, skipping asset sync",
					zap.String("ticket_id", ticket.ID),
					zap.String("asset_id", *ticket.AssetID))
			} else {
				s.logger.Error("asset sync failed after ticket resolution",
					zap.String("ticket_id", ticket.ID),
					zap.String("asset_id", *ticket.AssetID),
					zap.Error(err))
			}
		}
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketResolved,
		TicketID: ticket.ID,
		ActorID:  admin.ID,
		Payload: events.TicketResolvedPayload{
			TicketCode: ticket.Code,
			CreatorID:  ticket.CreatorID,
			Resolution: resolution,
		},
	})
	return ticket, nil
}

// Cancel voids a ticket. Only the creator may cancel, and only before the
// ticket reaches a terminal state. No asset state is touched.
func (s *TicketService) Cancel(ctx context.Context, ticketID string, actor *domain.User) (*domain.Ticket, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("user required")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if ticket.CreatorID != actor.ID {
		return nil, apperrors.NewForbidden("only the ticket creator may cancel it")
	}
	if !isValidTransition(ticket.Status, domain.TicketStatusCancelled) {
		return nil, apperrors.NewConflict("cannot cancel a completed ticket", map[string]any{"status": ticket.Status})
	}

	now := time.Now()
	prev := ticket.Status
	ticket.Status = domain.TicketStatusCancelled
	ticket.ClosedAt = &now
	if err := s.tickets.UpdateStatus(ctx, ticket, prev); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCancelled,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCancelledPayload{
			TicketCode: ticket.Code,
			CreatorID:  ticket.CreatorID,
			AssigneeID: ticket.AssigneeID,
		},
	})
	return ticket, nil
}

// UpdateStatus is the administrative escape hatch: it may move a ticket to
// any status without walking the intermediate states, but it never moves a
// ticket out of a terminal state.
func (s *TicketService) UpdateStatus(ctx context.Context, ticketID string, newStatus domain.TicketStatus) (*domain.Ticket, error) {
	switch newStatus {
	case domain.TicketStatusOpen, domain.TicketStatusInProgress,
		domain.TicketStatusResolved, domain.TicketStatusClosed, domain.TicketStatusCancelled:
	default:
		return nil, apperrors.NewValidationError("unknown ticket status", map[string]any{"status": newStatus})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	if ticket.Status.IsTerminal() {
		return nil, apperrors.NewConflict("ticket is in a terminal state", map[string]any{"status": ticket.Status})
	}
	if ticket.Status == domain.TicketStatusResolved && newStatus != domain.TicketStatusClosed {
		return nil, apperrors.NewConflict("a resolved ticket can only be closed", map[string]any{"status": ticket.Status})
	}

	now := time.Now()
	prev := ticket.Status
	ticket.Status = newStatus
	if newStatus == domain.TicketStatusResolved {
		ticket.ResolvedAt = &now
	}
	if newStatus.IsTerminal() {
		ticket.ClosedAt = &now
	}
	if err := s.tickets.UpdateStatus(ctx, ticket, prev); err != nil {
		return nil, s.mapTicketErr(err, ticketID)
	}
	return ticket, nil
}

// GetTicket fetches a single ticket with its images.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*domain.Ticket, []domain.TicketImage, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, nil, s.mapTicketErr(err, ticketID)
	}
	images, err := s.tickets.ListImages(ctx, ticket.ID)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return ticket, images, nil
}

// ListAll returns tickets for the admin overview.
func (s *TicketService) ListAll(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, filter)
}

// ListByBranch returns a branch's tickets, hiding cancelled ones.
func (s *TicketService) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]domain.Ticket, error) {
	cancelled := domain.TicketStatusCancelled
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		BranchID:      &branchID,
		ExcludeStatus: &cancelled,
		Limit:         limit,
		Offset:        offset,
	})
}

// ListByCreator returns the tickets a user reported.
func (s *TicketService) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		CreatorID: &creatorID,
		Limit:     limit,
		Offset:    offset,
	})
}

// ListAssigned returns the tickets an admin has claimed.
func (s *TicketService) ListAssigned(ctx context.Context, adminID string, limit, offset int) ([]domain.Ticket, error) {
	return s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		AssigneeID: &adminID,
		Limit:      limit,
		Offset:     offset,
	})
}

func (s *TicketService) syncAssetOnClose(ctx context.Context, ticket *domain.Ticket, resolution string, dispose bool, cost decimal.Decimal, now time.Time) error {
	assetID := *ticket.AssetID

	if dispose {
		if err := s.assets.SetStatus(ctx, assetID, domain.AssetStatusDisposed); err != nil {
			return err
		}
		return s.repairs.Record(ctx, &domain.RepairRecord{
			AssetID:     assetID,
			TicketID:    &ticket.ID,
			ActionTaken: "ASSET DISPOSED: " + resolution,
			RepairDate:  now,
			Cost:        cost,
		})
	}

	if err := s.assets.SetStatus(ctx, assetID, domain.AssetStatusActive); err != nil {
		return err
	}
	if resolution == "" {
		// Nothing was actually repaired; no ledger entry, no count bump.
		return nil
	}
	if err := s.assets.IncrementRepairCount(ctx, assetID); err != nil {
		return err
	}
	return s.repairs.Record(ctx, &domain.RepairRecord{
		AssetID:     assetID,
		TicketID:    &ticket.ID,
		ActionTaken: resolution,
		RepairDate:  now,
		Cost:        cost,
	})
}

func (s *TicketService) parseCost(ticketID, raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	cost, err := decimal.NewFromString(raw)
	if err != nil {
		s.logger.Warn("malformed repair cost, treating as zero",
			zap.String("ticket_id", ticketID),
			zap.String("cost", raw))
		return decimal.Zero
	}
	if cost.IsNegative() {
		s.logger.Warn("negative repair cost, treating as zero",
			zap.String("ticket_id", ticketID),
			zap.String("cost", raw))
		return decimal.Zero
	}
	return cost
}

func (s *TicketService) mapTicketErr(err error, ticketID string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	if errors.Is(err, repository.ErrStaleTicket) {
		return apperrors.NewConflict("ticket changed concurrently", map[string]any{"ticket_id": ticketID})
	}
	return apperrors.MapError(err)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func ticketCodeFromID(id string) string {
	return "TKT-" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:8])
}

var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusCancelled},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved, domain.TicketStatusCancelled},
	domain.TicketStatusResolved:   {domain.TicketStatusClosed},
	domain.TicketStatusClosed:     {},
	domain.TicketStatusCancelled:  {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
