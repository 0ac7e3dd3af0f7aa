package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
)

// ApplyFilters runs the catalog through the filter pipeline and returns the
// visible subset in order. The input slice is never mutated; the result is
// always a fresh slice, empty when everything is filtered out.
func ApplyFilters(pizzas []models.Pizza, spec FilterSpec) []models.Pizza {
	var textQuery string
	queryMin, queryMax := spec.MinPrice, spec.MaxPrice

	if query := strings.TrimSpace(spec.SearchQuery); query != "" {
		qMin, qMax, remainder := ExtractPriceQuery(query)
		if qMin != nil {
			queryMin = tighterMin(queryMin, qMin)
		}
		if qMax != nil {
			queryMax = tighterMax(queryMax, qMax)
		}
		textQuery = strings.ToLower(remainder)
	}

	out := make([]models.Pizza, 0, len(pizzas))
	for _, pizza := range pizzas {
		if textQuery != "" && !matchesText(pizza, textQuery) {
			continue
		}
		if spec.Category != "" && spec.Category != enums.PizzaCategoryAll && pizza.Category.String() != spec.Category {
			continue
		}
		if spec.IsVegetarian != nil && pizza.IsVegetarian != *spec.IsVegetarian {
			continue
		}
		if queryMin != nil && pizza.Price.LessThan(*queryMin) {
			continue
		}
		if queryMax != nil && pizza.Price.GreaterThan(*queryMax) {
			continue
		}
		if spec.SpiceLevel != nil && pizza.SpiceLevel != *spec.SpiceLevel {
			continue
		}
		out = append(out, pizza)
	}

	sortPizzas(out, spec.SortBy, spec.SortOrder)
	return out
}

func matchesText(pizza models.Pizza, query string) bool {
	if strings.Contains(strings.ToLower(pizza.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(pizza.Description), query) {
		return true
	}
	for _, ingredient := range pizza.Ingredients {
		if strings.Contains(strings.ToLower(ingredient), query) {
			return true
		}
	}
	return false
}

func tighterMin(a, b *decimal.Decimal) *decimal.Decimal {
	if a == nil || b.GreaterThan(*a) {
		return b
	}
	return a
}

func tighterMax(a, b *decimal.Decimal) *decimal.Decimal {
	if a == nil || b.LessThan(*a) {
		return b
	}
	return a
}

func sortPizzas(pizzas []models.Pizza, by SortBy, order SortOrder) {
	coll := collate.New(language.English)

	compare := func(a, b models.Pizza) int {
		switch by {
		case SortByPrice:
			return a.Price.Cmp(b.Price)
		case SortByPopularity:
			// Popular entries group first under ascending order. Descending
			// negates this like every other key, which flips the grouping;
			// intentional, pending product confirmation.
			return boolToInt(b.IsPopular) - boolToInt(a.IsPopular)
		case SortBySpiceLevel:
			return a.SpiceLevel - b.SpiceLevel
		default:
			return coll.CompareString(a.Name, b.Name)
		}
	}

	sort.SliceStable(pizzas, func(i, j int) bool {
		c := compare(pizzas[i], pizzas[j])
		if order == SortOrderDesc {
			c = -c
		}
		return c < 0
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
