package orders

import (
	"context"
	"fmt"
	"sync"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
	"github.com/leader-akash/pizza-craft/pkg/logger"
)

type orderRepository interface {
	ListNewestFirst(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	Save(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}

// Service exposes the order log. The log is held in memory newest-first and
// written back to storage after every mutation; storage failures are logged
// and swallowed so the storefront keeps working without durable history.
type Service interface {
	List(ctx context.Context) []models.Order
	FindByID(ctx context.Context, id string) (*models.Order, error)
	Add(ctx context.Context, order models.Order)
	UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error)
	Remove(ctx context.Context, id string)
	Clear(ctx context.Context)
}

type service struct {
	repo orderRepository
	log  *logger.Logger

	mu     sync.RWMutex
	loaded bool
	orders []models.Order
}

// NewService builds an order log backed by the provided repository.
func NewService(repo orderRepository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	return &service{repo: repo, log: log}, nil
}

// ensureLoaded reads the log from storage exactly once. A failed or malformed
// read starts the log empty rather than failing the caller.
func (s *service) ensureLoaded(ctx context.Context) {
	if s.loaded {
		return
	}
	orders, err := s.repo.ListNewestFirst(ctx)
	if err != nil {
		if s.log != nil {
			s.log.Error(ctx, "order log load failed, starting empty", err)
		}
		orders = nil
	}
	s.orders = orders
	s.loaded = true
}

func (s *service) List(ctx context.Context) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out
}

func (s *service) FindByID(ctx context.Context, id string) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i := range s.orders {
		if s.orders[i].ID == id {
			order := s.orders[i]
			return &order, nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s *service) Add(ctx context.Context, order models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	// newest first
	s.orders = append([]models.Order{order}, s.orders...)

	if err := s.repo.Create(ctx, &order); err != nil && s.log != nil {
		s.log.Error(s.log.WithOrderID(ctx, order.ID), "order persist failed", err)
	}
}

func (s *service) UpdateStatus(ctx context.Context, id string, status enums.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i := range s.orders {
		if s.orders[i].ID != id {
			continue
		}
		if !s.orders[i].Status.CanTransitionTo(status) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot move order from %s to %s", s.orders[i].Status, status))
		}
		s.orders[i].Status = status

		if err := s.repo.Save(ctx, &s.orders[i]); err != nil && s.log != nil {
			s.log.Error(s.log.WithOrderID(ctx, id), "order status persist failed", err)
		}
		order := s.orders[i]
		return &order, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// Remove drops the order if present. Removing an unknown id succeeds quietly.
func (s *service) Remove(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders = append(s.orders[:i], s.orders[i+1:]...)
			break
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil && s.log != nil {
		s.log.Error(s.log.WithOrderID(ctx, id), "order delete persist failed", err)
	}
}

func (s *service) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded(ctx)

	s.orders = nil

	if err := s.repo.DeleteAll(ctx); err != nil && s.log != nil {
		s.log.Error(ctx, "order log clear persist failed", err)
	}
}
