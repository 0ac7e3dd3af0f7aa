package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
)

// Repository handles pizza persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the full catalog in insertion order.
func (r *Repository) List(ctx context.Context) ([]models.Pizza, error) {
	var pizzas []models.Pizza
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&pizzas).Error; err != nil {
		return nil, err
	}
	return pizzas, nil
}

// FindByID loads a single listing.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.Pizza, error) {
	var pizza models.Pizza
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&pizza).Error; err != nil {
		return nil, err
	}
	return &pizza, nil
}

// Create persists a new listing.
func (r *Repository) Create(ctx context.Context, pizza *models.Pizza) error {
	if pizza == nil {
		return fmt.Errorf("pizza is required")
	}
	return r.db.WithContext(ctx).Create(pizza).Error
}

// Update saves the provided listing.
func (r *Repository) Update(ctx context.Context, pizza *models.Pizza) error {
	if pizza == nil {
		return fmt.Errorf("pizza is required")
	}
	return r.db.WithContext(ctx).Save(pizza).Error
}

// Delete removes a listing by id. Returns gorm.ErrRecordNotFound when no row
// was deleted.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Pizza{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
