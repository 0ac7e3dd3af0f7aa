package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
)

type stubOrderRepo struct {
	stored   []models.Order
	loadErr  error
	writeErr error

	creates int
	saves   int
	deletes int
	clears  int
}

func (s *stubOrderRepo) ListNewestFirst(ctx context.Context) ([]models.Order, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]models.Order, len(s.stored))
	copy(out, s.stored)
	return out, nil
}

func (s *stubOrderRepo) Create(ctx context.Context, order *models.Order) error {
	s.creates++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.stored = append(s.stored, *order)
	return nil
}

func (s *stubOrderRepo) Save(ctx context.Context, order *models.Order) error {
	s.saves++
	return s.writeErr
}

func (s *stubOrderRepo) Delete(ctx context.Context, id string) error {
	s.deletes++
	return s.writeErr
}

func (s *stubOrderRepo) DeleteAll(ctx context.Context) error {
	s.clears++
	return s.writeErr
}

func sampleOrder(id string, ts time.Time) models.Order {
	return models.Order{
		ID:            id,
		Items:         models.OrderItems{},
		Subtotal:      decimal.RequireFromString("38"),
		TotalDiscount: decimal.RequireFromString("3"),
		FinalTotal:    decimal.RequireFromString("35"),
		Timestamp:     ts,
		Status:        enums.OrderStatusPending,
	}
}

func newTestService(t *testing.T, repo orderRepository) Service {
	t.Helper()
	svc, err := NewService(repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil, nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestListLoadsOnceAndCopies(t *testing.T) {
	repo := &stubOrderRepo{stored: []models.Order{sampleOrder("ORD-B-B", time.Now()), sampleOrder("ORD-A-A", time.Now().Add(-time.Hour))}}
	svc := newTestService(t, repo)

	first := svc.List(context.Background())
	if len(first) != 2 {
		t.Fatalf("got %d orders, want 2", len(first))
	}

	// mutating the returned slice must not touch the log
	first[0].ID = "mangled"
	second := svc.List(context.Background())
	if second[0].ID != "ORD-B-B" {
		t.Fatalf("log mutated through returned slice: %s", second[0].ID)
	}
}

func TestLoadFailureStartsEmpty(t *testing.T) {
	repo := &stubOrderRepo{loadErr: errors.New("disk gone")}
	svc := newTestService(t, repo)

	if got := svc.List(context.Background()); len(got) != 0 {
		t.Fatalf("got %d orders, want empty log after failed load", len(got))
	}
}

func TestAddPrependsNewestFirst(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(t, repo)

	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now().Add(-time.Minute)))
	svc.Add(context.Background(), sampleOrder("ORD-2-B", time.Now()))

	got := svc.List(context.Background())
	if got[0].ID != "ORD-2-B" || got[1].ID != "ORD-1-A" {
		t.Fatalf("order log not newest-first: %s, %s", got[0].ID, got[1].ID)
	}
	if repo.creates != 2 {
		t.Fatalf("creates = %d, want 2", repo.creates)
	}
}

func TestAddSwallowsPersistFailure(t *testing.T) {
	repo := &stubOrderRepo{writeErr: errors.New("quota exceeded")}
	svc := newTestService(t, repo)

	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now()))
	if got := svc.List(context.Background()); len(got) != 1 {
		t.Fatalf("in-memory log lost the order on persist failure: %d entries", len(got))
	}
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(t, repo)
	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now()))

	updated, err := svc.UpdateStatus(context.Background(), "ORD-1-A", enums.OrderStatusPreparing)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != enums.OrderStatusPreparing {
		t.Fatalf("status = %s, want preparing", updated.Status)
	}

	_, err = svc.UpdateStatus(context.Background(), "ORD-1-A", enums.OrderStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("backward transition error = %v, want state conflict", err)
	}

	// same-status update is allowed
	if _, err := svc.UpdateStatus(context.Background(), "ORD-1-A", enums.OrderStatusPreparing); err != nil {
		t.Fatalf("same-status update: %v", err)
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := newTestService(t, &stubOrderRepo{})
	_, err := svc.UpdateStatus(context.Background(), "missing", enums.OrderStatusConfirmed)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	svc := newTestService(t, &stubOrderRepo{})
	_, err := svc.UpdateStatus(context.Background(), "ORD-1-A", enums.OrderStatus("shipped"))
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("error = %v, want validation", err)
	}
}

func TestRemoveUnknownIDIsNoOp(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(t, repo)
	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now()))

	svc.Remove(context.Background(), "missing")
	if got := svc.List(context.Background()); len(got) != 1 {
		t.Fatalf("no-op remove changed the log: %d entries", len(got))
	}

	svc.Remove(context.Background(), "ORD-1-A")
	if got := svc.List(context.Background()); len(got) != 0 {
		t.Fatalf("remove left %d entries", len(got))
	}
}

func TestClearEmptiesLog(t *testing.T) {
	repo := &stubOrderRepo{}
	svc := newTestService(t, repo)
	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now()))
	svc.Add(context.Background(), sampleOrder("ORD-2-B", time.Now()))

	svc.Clear(context.Background())
	if got := svc.List(context.Background()); len(got) != 0 {
		t.Fatalf("clear left %d entries", len(got))
	}
	if repo.clears != 1 {
		t.Fatalf("clears = %d, want 1", repo.clears)
	}
}

func TestFindByID(t *testing.T) {
	svc := newTestService(t, &stubOrderRepo{})
	svc.Add(context.Background(), sampleOrder("ORD-1-A", time.Now()))

	order, err := svc.FindByID(context.Background(), "ORD-1-A")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if order.ID != "ORD-1-A" {
		t.Fatalf("id = %s", order.ID)
	}

	_, err = svc.FindByID(context.Background(), "missing")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want not found", err)
	}
}
