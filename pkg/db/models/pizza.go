package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/enums"
	"github.com/leader-akash/pizza-craft/pkg/types"
)

// Pizza represents the canonical catalog listing.
type Pizza struct {
	ID           string              `gorm:"column:id;primaryKey" json:"id"`
	Name         string              `gorm:"column:name;not null" json:"name"`
	Price        decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	Description  string              `gorm:"column:description;not null" json:"description"`
	Ingredients  types.StringList    `gorm:"column:ingredients;type:text;not null" json:"ingredients"`
	Category     enums.PizzaCategory `gorm:"column:category;not null" json:"category"`
	ImageURL     string              `gorm:"column:image_url;not null" json:"imageUrl"`
	IsVegetarian bool                `gorm:"column:is_vegetarian;not null;default:false" json:"isVegetarian"`
	IsPopular    bool                `gorm:"column:is_popular;not null;default:false" json:"isPopular"`
	SpiceLevel   int                 `gorm:"column:spice_level;not null;default:0" json:"spiceLevel"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
