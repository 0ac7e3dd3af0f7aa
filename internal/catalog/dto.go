package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/enums"
)

// SortBy selects the catalog sort key.
type SortBy string

const (
	SortByName       SortBy = "name"
	SortByPrice      SortBy = "price"
	SortByPopularity SortBy = "popularity"
	SortBySpiceLevel SortBy = "spiceLevel"
)

var validSortKeys = []SortBy{SortByName, SortByPrice, SortByPopularity, SortBySpiceLevel}

// ParseSortBy converts raw input into a SortBy.
func ParseSortBy(value string) (SortBy, error) {
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// SortOrder is the sort direction.
type SortOrder string

const (
	SortOrderAsc  SortOrder = "asc"
	SortOrderDesc SortOrder = "desc"
)

// ParseSortOrder converts raw input into a SortOrder.
func ParseSortOrder(value string) (SortOrder, error) {
	switch SortOrder(value) {
	case SortOrderAsc, SortOrderDesc:
		return SortOrder(value), nil
	}
	return "", fmt.Errorf("invalid sort order %q", value)
}

// FilterSpec holds the active search/filter/sort criteria for a catalog read.
// Nil pointer fields mean unconstrained.
type FilterSpec struct {
	SearchQuery  string
	Category     string
	IsVegetarian *bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	SpiceLevel   *int
	SortBy       SortBy
	SortOrder    SortOrder
}

// DefaultFilterSpec returns the reset state: everything visible, name ascending.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Category:  enums.PizzaCategoryAll,
		SortBy:    SortByName,
		SortOrder: SortOrderAsc,
	}
}

// CreatePizzaInput carries a new catalog listing.
type CreatePizzaInput struct {
	Name         string
	Price        decimal.Decimal
	Description  string
	Ingredients  []string
	Category     enums.PizzaCategory
	ImageURL     string
	IsVegetarian bool
	IsPopular    bool
	SpiceLevel   int
}

// UpdatePizzaInput captures the mutable listing fields; nil leaves a field
// untouched.
type UpdatePizzaInput struct {
	Name         *string
	Price        *decimal.Decimal
	Description  *string
	Ingredients  *[]string
	Category     *enums.PizzaCategory
	ImageURL     *string
	IsVegetarian *bool
	IsPopular    *bool
	SpiceLevel   *int
}
