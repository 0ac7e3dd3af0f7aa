package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/api/responses"
	"github.com/leader-akash/pizza-craft/api/validators"
	catalogsvc "github.com/leader-akash/pizza-craft/internal/catalog"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
	"github.com/leader-akash/pizza-craft/pkg/logger"
)

// PizzaList serves the catalog with filter/sort query parameters applied.
func PizzaList(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec, err := validators.ParseFilterSpec(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pizzas, err := svc.List(r.Context(), spec)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pizzas)
	}
}

func PizzaDetail(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pizzaID := chi.URLParam(r, "pizzaId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPizzaID(ctx, pizzaID)
		}

		pizza, err := svc.GetByID(ctx, pizzaID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, pizza)
	}
}

type createPizzaRequest struct {
	Name         string          `json:"name" validate:"required"`
	Price        decimal.Decimal `json:"price" validate:"required"`
	Description  string          `json:"description"`
	Ingredients  []string        `json:"ingredients" validate:"omitempty,dive,required"`
	Category     string          `json:"category" validate:"required"`
	ImageURL     string          `json:"imageUrl" validate:"omitempty,url"`
	IsVegetarian bool            `json:"isVegetarian"`
	IsPopular    bool            `json:"isPopular"`
	SpiceLevel   int             `json:"spiceLevel" validate:"gte=0,lte=3"`
}

func (r createPizzaRequest) toCreateInput() (catalogsvc.CreatePizzaInput, error) {
	category, err := enums.ParsePizzaCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return catalogsvc.CreatePizzaInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	return catalogsvc.CreatePizzaInput{
		Name:         r.Name,
		Price:        r.Price,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		Category:     category,
		ImageURL:     r.ImageURL,
		IsVegetarian: r.IsVegetarian,
		IsPopular:    r.IsPopular,
		SpiceLevel:   r.SpiceLevel,
	}, nil
}

// PizzaCreate appends a new listing to the catalog.
func PizzaCreate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createPizzaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pizza, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, pizza)
	}
}

type updatePizzaRequest struct {
	Name         *string          `json:"name,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Ingredients  *[]string        `json:"ingredients,omitempty"`
	Category     *string          `json:"category,omitempty"`
	ImageURL     *string          `json:"imageUrl,omitempty" validate:"omitempty,url"`
	IsVegetarian *bool            `json:"isVegetarian,omitempty"`
	IsPopular    *bool            `json:"isPopular,omitempty"`
	SpiceLevel   *int             `json:"spiceLevel,omitempty" validate:"omitempty,gte=0,lte=3"`
}

func (r updatePizzaRequest) toUpdateInput() (catalogsvc.UpdatePizzaInput, error) {
	input := catalogsvc.UpdatePizzaInput{
		Name:         r.Name,
		Price:        r.Price,
		Description:  r.Description,
		Ingredients:  r.Ingredients,
		ImageURL:     r.ImageURL,
		IsVegetarian: r.IsVegetarian,
		IsPopular:    r.IsPopular,
		SpiceLevel:   r.SpiceLevel,
	}
	if r.Category != nil {
		category, err := enums.ParsePizzaCategory(strings.TrimSpace(*r.Category))
		if err != nil {
			return catalogsvc.UpdatePizzaInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
		}
		input.Category = &category
	}
	return input, nil
}

// PizzaUpdate replaces fields on an existing listing.
func PizzaUpdate(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pizzaID := chi.URLParam(r, "pizzaId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPizzaID(ctx, pizzaID)
		}

		var payload updatePizzaRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pizza, err := svc.Update(ctx, pizzaID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, pizza)
	}
}

func PizzaDelete(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pizzaID := chi.URLParam(r, "pizzaId")
		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithPizzaID(ctx, pizzaID)
		}

		if err := svc.Delete(ctx, pizzaID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"id": pizzaID})
	}
}
