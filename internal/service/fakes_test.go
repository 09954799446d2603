package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/repository"
)

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
	images  map[string][]domain.TicketImage
	// nextGet is served (once) by the next GetByID, letting tests hand a
	// caller an outdated snapshot.
	nextGet *domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets: make(map[string]*domain.Ticket),
		images:  make(map[string][]domain.TicketImage),
	}
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket, images []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *ticket
	f.tickets[ticket.ID] = &copied
	for _, data := range images {
		f.images[ticket.ID] = append(f.images[ticket.ID], domain.TicketImage{
			ID:       uuid.NewString(),
			TicketID: ticket.ID,
			Data:     data,
		})
	}
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.nextGet != nil && f.nextGet.ID == id {
		stale := *f.nextGet
		f.nextGet = nil
		return &stale, nil
	}
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) GetByCode(_ context.Context, code string) (*domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ticket := range f.tickets {
		if ticket.Code == code {
			copied := *ticket
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if filter.CreatorID != nil && ticket.CreatorID != *filter.CreatorID {
			continue
		}
		if filter.AssigneeID != nil && (ticket.AssigneeID == nil || *ticket.AssigneeID != *filter.AssigneeID) {
			continue
		}
		if filter.BranchID != nil && ticket.BranchID != *filter.BranchID {
			continue
		}
		if filter.ExcludeStatus != nil && ticket.Status == *filter.ExcludeStatus {
			continue
		}
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) ClaimOpen(_ context.Context, ticketID, adminID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ticket, ok := f.tickets[ticketID]
	if !ok || ticket.Status != domain.TicketStatusOpen {
		return false, nil
	}
	ticket.Status = domain.TicketStatusInProgress
	ticket.AssigneeID = &adminID
	return true, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, ticket *domain.Ticket, expected domain.TicketStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.tickets[ticket.ID]
	if !ok || stored.Status != expected {
		return repository.ErrStaleTicket
	}
	stored.Status = ticket.Status
	stored.ResolvedAt = ticket.ResolvedAt
	stored.ClosedAt = ticket.ClosedAt
	return nil
}

func (f *fakeTicketRepo) ListImages(_ context.Context, ticketID string) ([]domain.TicketImage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.TicketImage{}, f.images[ticketID]...), nil
}

type fakeAssetRepo struct {
	mu     sync.Mutex
	assets map[string]*domain.Asset
}

func newFakeAssetRepo() *fakeAssetRepo {
	return &fakeAssetRepo{assets: make(map[string]*domain.Asset)}
}

func (f *fakeAssetRepo) put(asset *domain.Asset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *asset
	f.assets[asset.ID] = &copied
}

func (f *fakeAssetRepo) Create(_ context.Context, asset *domain.Asset) error {
	if asset.ID == "" {
		asset.ID = uuid.NewString()
	}
	f.put(asset)
	return nil
}

func (f *fakeAssetRepo) Update(_ context.Context, asset *domain.Asset) error {
	f.put(asset)
	return nil
}

func (f *fakeAssetRepo) GetByID(_ context.Context, id string) (*domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *asset
	return &copied, nil
}

func (f *fakeAssetRepo) ListByBranch(_ context.Context, branchID string) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Asset
	for _, asset := range f.assets {
		if asset.BranchID == branchID {
			result = append(result, *asset)
		}
	}
	return result, nil
}

func (f *fakeAssetRepo) ListAll(_ context.Context) ([]domain.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Asset
	for _, asset := range f.assets {
		result = append(result, *asset)
	}
	return result, nil
}

func (f *fakeAssetRepo) SetStatus(_ context.Context, id string, status domain.AssetStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok || asset.Status == domain.AssetStatusDisposed {
		return pgx.ErrNoRows
	}
	asset.Status = status
	return nil
}

func (f *fakeAssetRepo) IncrementRepairCount(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	asset, ok := f.assets[id]
	if !ok || asset.Status == domain.AssetStatusDisposed {
		return pgx.ErrNoRows
	}
	asset.RepairCount++
	return nil
}

type fakeRepairRepo struct {
	mu      sync.Mutex
	records []domain.RepairRecord
}

func (f *fakeRepairRepo) Record(_ context.Context, record *domain.RepairRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeRepairRepo) ListByAsset(_ context.Context, assetID string) ([]domain.RepairRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.RepairRecord
	for _, record := range f.records {
		if record.AssetID == assetID {
			result = append(result, record)
		}
	}
	return result, nil
}

func (f *fakeRepairRepo) GetByTicket(_ context.Context, ticketID string) (*domain.RepairRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, record := range f.records {
		if record.TicketID != nil && *record.TicketID == ticketID {
			copied := record
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type fakeCatalogRepo struct {
	categories map[string]*domain.ErrorCategory
	types      map[string]*domain.ErrorType
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		categories: make(map[string]*domain.ErrorCategory),
		types:      make(map[string]*domain.ErrorType),
	}
}

func (f *fakeCatalogRepo) GetCategory(_ context.Context, id string) (*domain.ErrorCategory, error) {
	cat, ok := f.categories[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cat, nil
}

func (f *fakeCatalogRepo) GetType(_ context.Context, id string) (*domain.ErrorType, error) {
	t, ok := f.types[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return t, nil
}

func (f *fakeCatalogRepo) ListCategories(_ context.Context) ([]domain.ErrorCategory, error) {
	var result []domain.ErrorCategory
	for _, cat := range f.categories {
		result = append(result, *cat)
	}
	return result, nil
}

func (f *fakeCatalogRepo) ListTypesByCategory(_ context.Context, categoryID string) ([]domain.ErrorType, error) {
	var result []domain.ErrorType
	for _, t := range f.types {
		if t.CategoryID == categoryID {
			result = append(result, *t)
		}
	}
	return result, nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments []domain.Comment
	failNext bool
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNext {
		f.failNext = false
		return errors.New("insert failed")
	}
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Comment
	for _, comment := range f.comments {
		if comment.TicketID == ticketID {
			result = append(result, comment)
		}
	}
	return result, nil
}

type fakeNotificationRepo struct {
	mu         sync.Mutex
	stored     []domain.Notification
	createErr  error
	markedRead []string
	deleted    []string
}

func (f *fakeNotificationRepo) Create(_ context.Context, n *domain.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	f.stored = append(f.stored, *n)
	return nil
}

func (f *fakeNotificationRepo) ListByRecipient(_ context.Context, recipientID string, _, _ int) ([]domain.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Notification
	for _, n := range f.stored {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationRepo) CountUnread(_ context.Context, recipientID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, n := range f.stored {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stored {
		if f.stored[i].ID == id && f.stored[i].RecipientID == recipientID {
			f.stored[i].Read = true
			f.markedRead = append(f.markedRead, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationRepo) Delete(_ context.Context, id, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.stored {
		if f.stored[i].ID == id && f.stored[i].RecipientID == recipientID {
			f.stored = append(f.stored[:i], f.stored[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeNotificationRepo) byRecipient(recipientID string) []domain.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.Notification
	for _, n := range f.stored {
		if n.RecipientID == recipientID {
			result = append(result, n)
		}
	}
	return result
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.User
	for _, user := range f.users {
		if user.Role == role && user.Active {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) ListByBranch(_ context.Context, branchID string) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []domain.User
	for _, user := range f.users {
		if user.BranchID != nil && *user.BranchID == branchID {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []string
	err    error
}

func (f *fakePusher) Push(_ context.Context, recipientID, _, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, recipientID)
	return nil
}
