package validators

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/internal/catalog"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseFilterSpec builds a catalog filter from list query parameters.
// Absent parameters keep their defaults; malformed ones are validation
// errors, never silently ignored.
func ParseFilterSpec(r *http.Request) (catalog.FilterSpec, error) {
	spec := catalog.DefaultFilterSpec()
	query := r.URL.Query()

	spec.SearchQuery = strings.TrimSpace(query.Get("search"))

	if raw := strings.TrimSpace(query.Get("category")); raw != "" && raw != enums.PizzaCategoryAll {
		category, err := enums.ParsePizzaCategory(raw)
		if err != nil {
			return catalog.FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").WithDetails(map[string]any{"field": "category"})
		}
		spec.Category = category.String()
	}

	if raw := strings.TrimSpace(query.Get("isVegetarian")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return catalog.FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a boolean").WithDetails(map[string]any{"field": "isVegetarian"})
		}
		spec.IsVegetarian = &value
	}

	minPrice, err := parseQueryDecimal(query.Get("minPrice"), "minPrice")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	spec.MinPrice = minPrice

	maxPrice, err := parseQueryDecimal(query.Get("maxPrice"), "maxPrice")
	if err != nil {
		return catalog.FilterSpec{}, err
	}
	spec.MaxPrice = maxPrice

	if raw := strings.TrimSpace(query.Get("spiceLevel")); raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil || !enums.IsValidSpiceLevel(level) {
			return catalog.FilterSpec{}, pkgerrors.New(pkgerrors.CodeValidation, "spice level out of range").WithDetails(map[string]any{"field": "spiceLevel", "min": enums.SpiceLevelMin, "max": enums.SpiceLevelMax})
		}
		spec.SpiceLevel = &level
	}

	if raw := strings.TrimSpace(query.Get("sortBy")); raw != "" {
		sortBy, err := catalog.ParseSortBy(raw)
		if err != nil {
			return catalog.FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").WithDetails(map[string]any{"field": "sortBy"})
		}
		spec.SortBy = sortBy
	}

	if raw := strings.TrimSpace(query.Get("sortOrder")); raw != "" {
		sortOrder, err := catalog.ParseSortOrder(raw)
		if err != nil {
			return catalog.FilterSpec{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order").WithDetails(map[string]any{"field": "sortOrder"})
		}
		spec.SortOrder = sortOrder
	}

	return spec, nil
}

func parseQueryDecimal(raw, field string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil || value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a non-negative number").WithDetails(map[string]any{"field": field})
	}
	return &value, nil
}
