package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spec-kit/support-desk/internal/domain"
	"github.com/spec-kit/support-desk/internal/events"
	"github.com/spec-kit/support-desk/pkg/util"
)

type ticketFixture struct {
	service  *TicketService
	tickets  *fakeTicketRepo
	assets   *fakeAssetRepo
	repairs  *fakeRepairRepo
	catalog  *fakeCatalogRepo
	recorded *recordingDispatcher
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) byType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var result []events.Event
	for _, e := range d.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

func newTicketFixture() *ticketFixture {
	tickets := newFakeTicketRepo()
	assets := newFakeAssetRepo()
	repairs := &fakeRepairRepo{}
	catalog := newFakeCatalogRepo()
	dispatcher := &recordingDispatcher{}

	catalog.categories["cat-1"] = &domain.ErrorCategory{ID: "cat-1", Name: "Hardware"}
	catalog.types["type-1"] = &domain.ErrorType{ID: "type-1", Name: "Broken Screen", CategoryID: "cat-1"}

	return &ticketFixture{
		service: NewTicketService(TicketDependencies{
			TicketRepo: tickets,
			AssetRepo:  assets,
			RepairRepo: repairs,
			Catalog:    catalog,
			Dispatcher: dispatcher,
			Logger:     zap.NewNop(),
		}),
		tickets:  tickets,
		assets:   assets,
		repairs:  repairs,
		catalog:  catalog,
		recorded: dispatcher,
	}
}

func branchUser(id, branchID string) *domain.User {
	return &domain.User{ID: id, FullName: "User " + id, Role: domain.RoleBranchUser, BranchID: &branchID, Active: true}
}

func adminUser(id string) *domain.User {
	return &domain.User{ID: id, FullName: "Admin " + id, Role: domain.RoleAdmin, Active: true}
}

func TestCreateTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("branch from creator and derived subject", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")

		ticket, err := fx.service.Create(ctx, creator, TicketCreateInput{
			CategoryID:  "cat-1",
			TypeID:      "type-1",
			Description: "screen flickers",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticket.Subject != "Hardware - Broken Screen" {
			t.Errorf("subject = %q", ticket.Subject)
		}
		if ticket.BranchID != "branch-1" {
			t.Errorf("branch = %q, want branch-1", ticket.BranchID)
		}
		if ticket.Status != domain.TicketStatusOpen {
			t.Errorf("status = %q, want OPEN", ticket.Status)
		}
		if ticket.Priority != domain.TicketPriorityMedium {
			t.Errorf("priority = %q, want MEDIUM", ticket.Priority)
		}
		if !strings.HasPrefix(ticket.Code, "TKT-") || len(ticket.Code) != 12 {
			t.Errorf("code = %q", ticket.Code)
		}
		if created := fx.recorded.byType(events.EventTicketCreated); len(created) != 1 {
			t.Errorf("created events = %d, want 1", len(created))
		}
	})

	t.Run("branch follows linked asset", func(t *testing.T) {
		fx := newTicketFixture()
		fx.assets.put(&domain.Asset{ID: "asset-1", BranchID: "branch-9", Status: domain.AssetStatusActive})
		creator := branchUser("user-1", "branch-1")
		assetID := "asset-1"

		ticket, err := fx.service.Create(ctx, creator, TicketCreateInput{
			CategoryID: "cat-1",
			TypeID:     "type-1",
			AssetID:    &assetID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ticket.BranchID != "branch-9" {
			t.Errorf("branch = %q, want asset's branch-9", ticket.BranchID)
		}
	})

	t.Run("rejects too many images", func(t *testing.T) {
		fx := newTicketFixture()
		_, err := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "cat-1",
			TypeID:     "type-1",
			Images:     []string{"a", "b", "c", "d", "e", "f"},
		})
		if !util.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("err = %v, want VALIDATION_FAILED", err)
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		fx := newTicketFixture()
		_, err := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "nope",
			TypeID:     "type-1",
		})
		if !util.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("err = %v, want VALIDATION_FAILED", err)
		}
	})

	t.Run("rejects creator without branch or asset", func(t *testing.T) {
		fx := newTicketFixture()
		creator := &domain.User{ID: "user-1", Role: domain.RoleBranchUser, Active: true}
		_, err := fx.service.Create(ctx, creator, TicketCreateInput{
			CategoryID: "cat-1",
			TypeID:     "type-1",
		})
		if !util.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("err = %v, want VALIDATION_FAILED", err)
		}
	})
}

func TestStartTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("claims open ticket and marks asset under repair", func(t *testing.T) {
		fx := newTicketFixture()
		fx.assets.put(&domain.Asset{ID: "asset-1", BranchID: "branch-1", Status: domain.AssetStatusActive})
		assetID := "asset-1"
		ticket, err := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "cat-1", TypeID: "type-1", AssetID: &assetID,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		admin := adminUser("admin-1")
		started, err := fx.service.Start(ctx, ticket.ID, admin)
		if err != nil {
			t.Fatalf("start: %v", err)
		}
		if started.Status != domain.TicketStatusInProgress {
			t.Errorf("status = %q, want IN_PROGRESS", started.Status)
		}
		if started.AssigneeID == nil || *started.AssigneeID != "admin-1" {
			t.Errorf("assignee = %v, want admin-1", started.AssigneeID)
		}
		asset, _ := fx.assets.GetByID(ctx, "asset-1")
		if asset.Status != domain.AssetStatusRepair {
			t.Errorf("asset status = %q, want REPAIR", asset.Status)
		}
	})

	t.Run("second start conflicts", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "cat-1", TypeID: "type-1",
		})
		if _, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-1")); err != nil {
			t.Fatalf("first start: %v", err)
		}
		_, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-2"))
		if !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("concurrent starts have exactly one winner", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "cat-1", TypeID: "type-1",
		})

		const contenders = 16
		var wg sync.WaitGroup
		results := make(chan error, contenders)
		for i := 0; i < contenders; i++ {
			wg.Add(1)
			admin := adminUser("admin-" + string(rune('a'+i)))
			go func() {
				defer wg.Done()
				_, err := fx.service.Start(ctx, ticket.ID, admin)
				results <- err
			}()
		}
		wg.Wait()
		close(results)

		wins := 0
		for err := range results {
			if err == nil {
				wins++
			} else if !util.IsCode(err, "CONFLICT") {
				t.Errorf("loser got %v, want CONFLICT", err)
			}
		}
		if wins != 1 {
			t.Fatalf("winners = %d, want exactly 1", wins)
		}
	})

	t.Run("missing ticket is not found", func(t *testing.T) {
		fx := newTicketFixture()
		_, err := fx.service.Start(ctx, "no-such", adminUser("admin-1"))
		if !util.IsCode(err, "NOT_FOUND") {
			t.Fatalf("err = %v, want NOT_FOUND", err)
		}
	})
}

func TestCloseTicket(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, fx *ticketFixture, withAsset bool) *domain.Ticket {
		t.Helper()
		input := TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"}
		if withAsset {
			fx.assets.put(&domain.Asset{ID: "asset-1", BranchID: "branch-1", Status: domain.AssetStatusActive})
			assetID := "asset-1"
			input.AssetID = &assetID
		}
		ticket, err := fx.service.Create(ctx, branchUser("user-1", "branch-1"), input)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if _, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-1")); err != nil {
			t.Fatalf("start: %v", err)
		}
		return ticket
	}

	t.Run("repair appends ledger entry and restores asset", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)

		closed, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{
			Resolution: "replaced the panel",
			Cost:       "149.99",
		})
		if err != nil {
			t.Fatalf("close: %v", err)
		}
		if closed.Status != domain.TicketStatusResolved {
			t.Errorf("status = %q, want RESOLVED", closed.Status)
		}
		if closed.ResolvedAt == nil {
			t.Error("resolved_at not set")
		}

		asset, _ := fx.assets.GetByID(ctx, "asset-1")
		if asset.Status != domain.AssetStatusActive {
			t.Errorf("asset status = %q, want ACTIVE", asset.Status)
		}
		if asset.RepairCount != 1 {
			t.Errorf("repair count = %d, want 1", asset.RepairCount)
		}

		record, err := fx.repairs.GetByTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("no repair record: %v", err)
		}
		if record.ActionTaken != "replaced the panel" {
			t.Errorf("action = %q", record.ActionTaken)
		}
		if record.Cost.StringFixed(2) != "149.99" {
			t.Errorf("cost = %s, want 149.99", record.Cost)
		}
	})

	t.Run("empty resolution leaves ledger and count untouched", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)

		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{}); err != nil {
			t.Fatalf("close: %v", err)
		}
		asset, _ := fx.assets.GetByID(ctx, "asset-1")
		if asset.Status != domain.AssetStatusActive {
			t.Errorf("asset status = %q, want ACTIVE", asset.Status)
		}
		if asset.RepairCount != 0 {
			t.Errorf("repair count = %d, want 0", asset.RepairCount)
		}
		if len(fx.repairs.records) != 0 {
			t.Errorf("records = %d, want 0", len(fx.repairs.records))
		}
	})

	t.Run("disposal is terminal and always recorded", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)

		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{
			Resolution:   "beyond repair",
			DisposeAsset: true,
		}); err != nil {
			t.Fatalf("close: %v", err)
		}
		asset, _ := fx.assets.GetByID(ctx, "asset-1")
		if asset.Status != domain.AssetStatusDisposed {
			t.Errorf("asset status = %q, want DISPOSED", asset.Status)
		}
		record, err := fx.repairs.GetByTicket(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("no repair record: %v", err)
		}
		if record.ActionTaken != "ASSET DISPOSED: beyond repair" {
			t.Errorf("action = %q", record.ActionTaken)
		}

		if err := fx.assets.SetStatus(ctx, "asset-1", domain.AssetStatusActive); err == nil {
			t.Error("disposed asset accepted a status change")
		}
	})

	t.Run("already disposed asset does not block the close", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)
		if err := fx.assets.SetStatus(ctx, "asset-1", domain.AssetStatusDisposed); err != nil {
			t.Fatalf("dispose: %v", err)
		}

		closed, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{Resolution: "already gone"})
		if err != nil {
			t.Fatalf("close: %v", err)
		}
		if closed.Status != domain.TicketStatusResolved {
			t.Errorf("status = %q, want RESOLVED", closed.Status)
		}
		asset, _ := fx.assets.GetByID(ctx, "asset-1")
		if asset.Status != domain.AssetStatusDisposed || asset.RepairCount != 0 {
			t.Errorf("asset = %q/%d, want DISPOSED/0", asset.Status, asset.RepairCount)
		}
	})

	t.Run("malformed cost becomes zero", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)

		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{
			Resolution: "fixed cable",
			Cost:       "not-a-number",
		}); err != nil {
			t.Fatalf("close: %v", err)
		}
		record, _ := fx.repairs.GetByTicket(ctx, ticket.ID)
		if !record.Cost.IsZero() {
			t.Errorf("cost = %s, want 0", record.Cost)
		}
	})

	t.Run("negative cost becomes zero", func(t *testing.T) {
		fx := newTicketFixture()
		ticket := setup(t, fx, true)

		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{
			Resolution: "fixed cable",
			Cost:       "-10",
		}); err != nil {
			t.Fatalf("close: %v", err)
		}
		record, _ := fx.repairs.GetByTicket(ctx, ticket.ID)
		if !record.Cost.IsZero() {
			t.Errorf("cost = %s, want 0", record.Cost)
		}
	})

	t.Run("cannot close an open ticket", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{
			CategoryID: "cat-1", TypeID: "type-1",
		})
		_, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{})
		if !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}
	})
}

func TestCancelTicket(t *testing.T) {
	ctx := context.Background()

	t.Run("creator cancels open ticket", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})

		cancelled, err := fx.service.Cancel(ctx, ticket.ID, creator)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != domain.TicketStatusCancelled {
			t.Errorf("status = %q, want CANCELLED", cancelled.Status)
		}
		if cancelled.ClosedAt == nil {
			t.Error("closed_at not set")
		}
	})

	t.Run("only the creator may cancel", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})

		_, err := fx.service.Cancel(ctx, ticket.ID, branchUser("user-2", "branch-1"))
		if !util.IsCode(err, "FORBIDDEN") {
			t.Fatalf("err = %v, want FORBIDDEN", err)
		}
	})

	t.Run("second cancel conflicts", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})

		if _, err := fx.service.Cancel(ctx, ticket.ID, creator); err != nil {
			t.Fatalf("first cancel: %v", err)
		}
		_, err := fx.service.Cancel(ctx, ticket.ID, creator)
		if !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("resolved ticket cannot be cancelled", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})
		if _, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-1")); err != nil {
			t.Fatalf("start: %v", err)
		}
		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{}); err != nil {
			t.Fatalf("close: %v", err)
		}
		_, err := fx.service.Cancel(ctx, ticket.ID, creator)
		if !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("cancel racing a close cannot revert the resolved ticket", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})
		if _, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-1")); err != nil {
			t.Fatalf("start: %v", err)
		}

		stale, err := fx.tickets.GetByID(ctx, ticket.ID)
		if err != nil {
			t.Fatalf("snapshot: %v", err)
		}
		if _, err := fx.service.Close(ctx, ticket.ID, adminUser("admin-1"), TicketCloseInput{Resolution: "fixed"}); err != nil {
			t.Fatalf("close: %v", err)
		}

		// The cancel reads the IN_PROGRESS snapshot the close already
		// invalidated; the conditional write must refuse it.
		fx.tickets.nextGet = stale
		if _, err := fx.service.Cancel(ctx, ticket.ID, creator); !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}

		stored, _ := fx.tickets.GetByID(ctx, ticket.ID)
		if stored.Status != domain.TicketStatusResolved {
			t.Errorf("status = %q, want RESOLVED", stored.Status)
		}
		if stored.ResolvedAt == nil {
			t.Error("resolved_at was wiped")
		}
		if cancelled := fx.recorded.byType(events.EventTicketCancelled); len(cancelled) != 0 {
			t.Errorf("cancelled events = %d, want 0", len(cancelled))
		}
	})

	t.Run("cancel emits event with assignee", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})
		if _, err := fx.service.Start(ctx, ticket.ID, adminUser("admin-1")); err != nil {
			t.Fatalf("start: %v", err)
		}
		if _, err := fx.service.Cancel(ctx, ticket.ID, creator); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		cancelledEvents := fx.recorded.byType(events.EventTicketCancelled)
		if len(cancelledEvents) != 1 {
			t.Fatalf("cancelled events = %d, want 1", len(cancelledEvents))
		}
		payload := cancelledEvents[0].Payload.(events.TicketCancelledPayload)
		if payload.AssigneeID == nil || *payload.AssigneeID != "admin-1" {
			t.Errorf("assignee in payload = %v, want admin-1", payload.AssigneeID)
		}
	})
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("jumps over intermediate states", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})

		updated, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusResolved)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Status != domain.TicketStatusResolved || updated.ResolvedAt == nil {
			t.Errorf("status = %q, resolved_at = %v", updated.Status, updated.ResolvedAt)
		}
	})

	t.Run("never leaves a terminal state", func(t *testing.T) {
		fx := newTicketFixture()
		creator := branchUser("user-1", "branch-1")
		ticket, _ := fx.service.Create(ctx, creator, TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})
		if _, err := fx.service.Cancel(ctx, ticket.ID, creator); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		_, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusOpen)
		if !util.IsCode(err, "CONFLICT") {
			t.Fatalf("err = %v, want CONFLICT", err)
		}
	})

	t.Run("resolved only moves to closed", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})
		if _, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusResolved); err != nil {
			t.Fatalf("resolve: %v", err)
		}

		if _, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusOpen); !util.IsCode(err, "CONFLICT") {
			t.Fatalf("reopen err = %v, want CONFLICT", err)
		}
		updated, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed)
		if err != nil {
			t.Fatalf("close: %v", err)
		}
		if updated.ClosedAt == nil {
			t.Error("closed_at not set")
		}
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		fx := newTicketFixture()
		_, err := fx.service.UpdateStatus(ctx, "any", domain.TicketStatus("BOGUS"))
		if !util.IsCode(err, "VALIDATION_FAILED") {
			t.Fatalf("err = %v, want VALIDATION_FAILED", err)
		}
	})

	t.Run("terminal target sets closed_at", func(t *testing.T) {
		fx := newTicketFixture()
		ticket, _ := fx.service.Create(ctx, branchUser("user-1", "branch-1"), TicketCreateInput{CategoryID: "cat-1", TypeID: "type-1"})

		updated, err := fx.service.UpdateStatus(ctx, ticket.ID, domain.TicketStatusClosed)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.ClosedAt == nil {
			t.Error("closed_at not set")
		}
	})
}

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		current domain.TicketStatus
		next    domain.TicketStatus
		want    bool
	}{
		{domain.TicketStatusOpen, domain.TicketStatusInProgress, true},
		{domain.TicketStatusOpen, domain.TicketStatusCancelled, true},
		{domain.TicketStatusOpen, domain.TicketStatusResolved, false},
		{domain.TicketStatusOpen, domain.TicketStatusClosed, false},
		{domain.TicketStatusInProgress, domain.TicketStatusResolved, true},
		{domain.TicketStatusInProgress, domain.TicketStatusCancelled, true},
		{domain.TicketStatusInProgress, domain.TicketStatusClosed, false},
		{domain.TicketStatusResolved, domain.TicketStatusClosed, true},
		{domain.TicketStatusResolved, domain.TicketStatusCancelled, false},
		{domain.TicketStatusResolved, domain.TicketStatusOpen, false},
		{domain.TicketStatusClosed, domain.TicketStatusOpen, false},
		{domain.TicketStatusCancelled, domain.TicketStatusOpen, false},
	}
	for _, tc := range cases {
		if got := isValidTransition(tc.current, tc.next); got != tc.want {
			t.Errorf("%s -> %s = %v, want %v", tc.current, tc.next, got, tc.want)
		}
	}
}

func TestTicketCodeFromID(t *testing.T) {
	code := ticketCodeFromID("2b17c1a4-9a0e-4f6b-8a2d-000000000000")
	if code != "TKT-2B17C1A4" {
		t.Errorf("code = %q, want TKT-2B17C1A4", code)
	}
}
