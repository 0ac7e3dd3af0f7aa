package enums

import "fmt"

// PizzaCategory represents the canonical menu categories supported by the catalog.
type PizzaCategory string

const (
	PizzaCategoryClassic    PizzaCategory = "classic"
	PizzaCategoryMeat       PizzaCategory = "meat"
	PizzaCategoryVegetarian PizzaCategory = "vegetarian"
	PizzaCategorySpecialty  PizzaCategory = "specialty"
)

// PizzaCategoryAll is the filter wildcard, not a storable category.
const PizzaCategoryAll = "all"

var validPizzaCategories = []PizzaCategory{
	PizzaCategoryClassic,
	PizzaCategoryMeat,
	PizzaCategoryVegetarian,
	PizzaCategorySpecialty,
}

// String implements fmt.Stringer.
func (c PizzaCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known PizzaCategory.
func (c PizzaCategory) IsValid() bool {
	for _, candidate := range validPizzaCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParsePizzaCategory converts raw input into a PizzaCategory.
func ParsePizzaCategory(value string) (PizzaCategory, error) {
	for _, candidate := range validPizzaCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pizza category %q", value)
}

// SpiceLevel bounds for pizza heat ratings.
const (
	SpiceLevelMin = 0
	SpiceLevelMax = 3
)

// IsValidSpiceLevel reports whether the level falls in the supported range.
func IsValidSpiceLevel(level int) bool {
	return level >= SpiceLevelMin && level <= SpiceLevelMax
}
