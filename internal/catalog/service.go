package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
	"github.com/leader-akash/pizza-craft/pkg/logger"
	"github.com/leader-akash/pizza-craft/pkg/redis"
	"github.com/leader-akash/pizza-craft/pkg/types"
)

type pizzaRepository interface {
	List(ctx context.Context) ([]models.Pizza, error)
	FindByID(ctx context.Context, id string) (*models.Pizza, error)
	Create(ctx context.Context, pizza *models.Pizza) error
	Update(ctx context.Context, pizza *models.Pizza) error
	Delete(ctx context.Context, id string) error
}

type catalogCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service exposes catalog operations.
type Service interface {
	All(ctx context.Context) ([]models.Pizza, error)
	List(ctx context.Context, spec FilterSpec) ([]models.Pizza, error)
	GetByID(ctx context.Context, id string) (*models.Pizza, error)
	Create(ctx context.Context, input CreatePizzaInput) (*models.Pizza, error)
	Update(ctx context.Context, id string, input UpdatePizzaInput) (*models.Pizza, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     pizzaRepository
	cache    catalogCache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService builds a catalog service. cache may be nil to disable the
// read-through layer.
func NewService(repo pizzaRepository, cache catalogCache, cacheTTL time.Duration, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}, nil
}

func (s *service) cacheKey() string {
	return redis.CatalogKey("all")
}

// All returns the full catalog, read through the cache when available.
// Cache failures are logged and fall back to the database.
func (s *service) All(ctx context.Context) ([]models.Pizza, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cacheKey())
		if err == nil {
			var pizzas []models.Pizza
			if jsonErr := json.Unmarshal([]byte(raw), &pizzas); jsonErr == nil {
				return pizzas, nil
			}
			// poisoned entry, drop it and reload
			_ = s.cache.Del(ctx, s.cacheKey())
		} else if !redis.IsCacheMiss(err) && s.log != nil {
			s.log.Warn(ctx, "catalog cache read failed")
		}
	}

	pizzas, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list pizzas")
	}

	if s.cache != nil {
		if raw, err := json.Marshal(pizzas); err == nil {
			if err := s.cache.Set(ctx, s.cacheKey(), string(raw), s.cacheTTL); err != nil && s.log != nil {
				s.log.Warn(ctx, "catalog cache write failed")
			}
		}
	}
	return pizzas, nil
}

// List returns the catalog filtered and sorted per spec.
func (s *service) List(ctx context.Context, spec FilterSpec) ([]models.Pizza, error) {
	pizzas, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyFilters(pizzas, spec), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*models.Pizza, error) {
	pizza, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "pizza not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pizza")
	}
	return pizza, nil
}

func (s *service) Create(ctx context.Context, input CreatePizzaInput) (*models.Pizza, error) {
	if err := validateListing(input.Name, input.Price, input.Category, input.SpiceLevel); err != nil {
		return nil, err
	}

	pizza := &models.Pizza{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Price:        input.Price,
		Description:  input.Description,
		Ingredients:  types.StringList(input.Ingredients),
		Category:     input.Category,
		ImageURL:     input.ImageURL,
		IsVegetarian: input.IsVegetarian,
		IsPopular:    input.IsPopular,
		SpiceLevel:   input.SpiceLevel,
	}
	if err := s.repo.Create(ctx, pizza); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create pizza")
	}

	s.invalidate(ctx)
	return pizza, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdatePizzaInput) (*models.Pizza, error) {
	pizza, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		pizza.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		pizza.Price = *input.Price
	}
	if input.Description != nil {
		pizza.Description = *input.Description
	}
	if input.Ingredients != nil {
		pizza.Ingredients = types.StringList(*input.Ingredients)
	}
	if input.Category != nil {
		pizza.Category = *input.Category
	}
	if input.ImageURL != nil {
		pizza.ImageURL = *input.ImageURL
	}
	if input.IsVegetarian != nil {
		pizza.IsVegetarian = *input.IsVegetarian
	}
	if input.IsPopular != nil {
		pizza.IsPopular = *input.IsPopular
	}
	if input.SpiceLevel != nil {
		pizza.SpiceLevel = *input.SpiceLevel
	}

	if err := validateListing(pizza.Name, pizza.Price, pizza.Category, pizza.SpiceLevel); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pizza); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update pizza")
	}

	s.invalidate(ctx)
	return pizza, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "pizza not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pizza")
	}

	s.invalidate(ctx)
	return nil
}

func validateListing(name string, price decimal.Decimal, category enums.PizzaCategory, spiceLevel int) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if !category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if !enums.IsValidSpiceLevel(spiceLevel) {
		return pkgerrors.New(pkgerrors.CodeValidation, "spice level out of range")
	}
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cacheKey()); err != nil && s.log != nil {
		s.log.Warn(ctx, "catalog cache invalidation failed")
	}
}
