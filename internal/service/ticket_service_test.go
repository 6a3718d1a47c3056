package service

import (
	"context"
	"testing"

	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
)

func newTicketFixture() (*TicketService, *fakeTicketRepo, *fakeUserRepo, *recordingDispatcher) {
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewTicketService(TicketDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
		Dispatcher: dispatcher,
	})
	return svc, tickets, users, dispatcher
}

func TestCreateTicketDefaults(t *testing.T) {
	svc, _, _, dispatcher := newTicketFixture()

	ticket, err := svc.Create(context.Background(), "user-1", TicketCreateInput{
		Title:       "  Printer on fire  ",
		Description: "smoke everywhere",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if ticket.Status != domain.TicketStatusOpen {
		t.Errorf("expected status open, got %q", ticket.Status)
	}
	if ticket.Priority != domain.TicketPriorityMedium {
		t.Errorf("expected default priority medium, got %q", ticket.Priority)
	}
	if ticket.OwnerID != "user-1" {
		t.Errorf("expected owner from caller, got %q", ticket.OwnerID)
	}
	if ticket.Title != "Printer on fire" {
		t.Errorf("expected trimmed title, got %q", ticket.Title)
	}

	published := dispatcher.byType(events.EventTicketCreated)
	if len(published) != 1 {
		t.Fatalf("expected one ticket.created event, got %d", len(published))
	}
	if published[0].EntityID != ticket.ID {
		t.Errorf("event entity %q does not match ticket %q", published[0].EntityID, ticket.ID)
	}
}

func TestCreateTicketRejectsUnknownPriority(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	_, err := svc.Create(context.Background(), "user-1", TicketCreateInput{
		Title:       "Broken login",
		Description: "cannot sign in",
		Priority:    "critical",
	})
	assertErrorCode(t, err, "VALIDATION_FAILED")
}

func TestGetTicketEnforcesOwnership(t *testing.T) {
	svc, _, users, _ := newTicketFixture()

	owner := &domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
	if err := users.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	ticket, err := svc.Create(context.Background(), owner.ID, TicketCreateInput{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(context.Background(), "someone-else", false, ticket.ID); err == nil {
		t.Fatal("expected forbidden for non-owner")
	} else {
		assertErrorCode(t, err, "FORBIDDEN")
	}

	got, err := svc.Get(context.Background(), "someone-else", true, ticket.ID)
	if err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	if got.Owner == nil || got.Owner.Email != "alice@example.com" {
		t.Errorf("expected owner snapshot, got %+v", got.Owner)
	}

	if _, err := svc.Get(context.Background(), owner.ID, false, ticket.ID); err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
}

func TestGetTicketWithDeletedOwnerHasNilSnapshot(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	ticket, err := svc.Create(context.Background(), "ghost", TicketCreateInput{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := svc.Get(context.Background(), "admin-1", true, ticket.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Owner != nil {
		t.Errorf("expected nil owner snapshot for missing user, got %+v", got.Owner)
	}
}

func TestListAllEnrichesOwners(t *testing.T) {
	svc, _, users, _ := newTicketFixture()

	owner := &domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}
	if err := users.Create(context.Background(), owner); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), owner.ID, TicketCreateInput{Title: "t", Description: "d"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), "missing-user", TicketCreateInput{Title: "t", Description: "d"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tickets, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tickets) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(tickets))
	}
	for _, ticket := range tickets {
		if ticket.OwnerID == owner.ID && (ticket.Owner == nil || ticket.Owner.Name != "Bob") {
			t.Errorf("expected snapshot for %s, got %+v", ticket.ID, ticket.Owner)
		}
		if ticket.OwnerID == "missing-user" && ticket.Owner != nil {
			t.Errorf("expected nil snapshot for orphan ticket, got %+v", ticket.Owner)
		}
	}
}

func TestListForOwnerIsIsolated(t *testing.T) {
	svc, _, _, _ := newTicketFixture()

	if _, err := svc.Create(context.Background(), "user-a", TicketCreateInput{Title: "a", Description: "d"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-b", TicketCreateInput{Title: "b", Description: "d"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	tickets, err := svc.ListForOwner(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(tickets) != 1 || tickets[0].Title != "a" {
		t.Fatalf("expected only user-a tickets, got %+v", tickets)
	}
}

func TestUpdateTicketStatus(t *testing.T) {
	svc, _, _, dispatcher := newTicketFixture()

	ticket, err := svc.Create(context.Background(), "user-1", TicketCreateInput{Title: "t", Description: "d"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	actor := events.Actor{UserID: "admin-1", Role: domain.RoleAdmin}

	if _, err := svc.UpdateStatus(context.Background(), ticket.ID, "escalated", actor); err == nil {
		t.Fatal("expected validation error for unknown status")
	} else {
		assertErrorCode(t, err, "VALIDATION_FAILED")
	}

	if _, err := svc.UpdateStatus(context.Background(), "missing", domain.TicketStatusClosed, actor); err == nil {
		t.Fatal("expected not found for missing ticket")
	} else {
		assertErrorCode(t, err, "NOT_FOUND")
	}

	updated, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusClosed, actor)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.TicketStatusClosed {
		t.Errorf("expected closed, got %q", updated.Status)
	}

	// closed tickets may be reopened
	reopened, err := svc.UpdateStatus(context.Background(), ticket.ID, domain.TicketStatusOpen, actor)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if reopened.Status != domain.TicketStatusOpen {
		t.Errorf("expected open, got %q", reopened.Status)
	}

	changes := dispatcher.byType(events.EventTicketStatusChanged)
	if len(changes) != 2 {
		t.Fatalf("expected 2 status change events, got %d", len(changes))
	}
	payload, ok := changes[0].Payload.(events.TicketStatusChangedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", changes[0].Payload)
	}
	if payload.OldStatus != domain.TicketStatusOpen || payload.NewStatus != domain.TicketStatusClosed {
		t.Errorf("unexpected transition payload: %+v", payload)
	}
}

func TestTicketStats(t *testing.T) {
	svc, tickets, _, _ := newTicketFixture()

	seed := []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusOpen,
		domain.TicketStatusInProgress,
		domain.TicketStatusResolved,
		domain.TicketStatusClosed,
	}
	for _, status := range seed {
		ticket := &domain.Ticket{OwnerID: "user-1", Title: "t", Description: "d", Status: status, Priority: domain.TicketPriorityLow}
		if err := tickets.Create(context.Background(), ticket); err != nil {
			t.Fatalf("seed failed: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.Total != 5 || stats.Open != 2 || stats.InProgress != 1 || stats.Resolved != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}
