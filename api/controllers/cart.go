package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/api/middleware"
	"github.com/leader-akash/pizza-craft/api/responses"
	"github.com/leader-akash/pizza-craft/api/validators"
	"github.com/leader-akash/pizza-craft/internal/cart"
	catalogsvc "github.com/leader-akash/pizza-craft/internal/catalog"
	"github.com/leader-akash/pizza-craft/pkg/db/models"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
	"github.com/leader-akash/pizza-craft/pkg/logger"
)

type cartResponse struct {
	Lines         []cart.Line        `json:"lines"`
	Items         []models.OrderItem `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TotalDiscount decimal.Decimal    `json:"totalDiscount"`
	FinalTotal    decimal.Decimal    `json:"finalTotal"`
	ItemCount     int                `json:"itemCount"`
}

// buildCartResponse resolves the cart against the catalog. A line whose pizza
// no longer exists fails the whole view rather than dropping the line.
func buildCartResponse(engine *cart.Engine, catalog []models.Pizza) (*cartResponse, error) {
	items, err := engine.OrderLines(catalog)
	if err != nil {
		return nil, err
	}

	subtotal, totalDiscount, finalTotal := decimal.Zero, decimal.Zero, decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.OriginalPrice)
		totalDiscount = totalDiscount.Add(item.DiscountAmount)
		finalTotal = finalTotal.Add(item.FinalPrice)
	}

	return &cartResponse{
		Lines:         engine.Lines(),
		Items:         items,
		Subtotal:      subtotal,
		TotalDiscount: totalDiscount,
		FinalTotal:    finalTotal,
		ItemCount:     engine.ItemCount(),
	}, nil
}

func cartView(r *http.Request, carts *cart.Store, catalog catalogsvc.Service) (*cartResponse, error) {
	pizzas, err := catalog.All(r.Context())
	if err != nil {
		return nil, err
	}

	sessionID := middleware.CartSessionFromContext(r.Context())
	var view *cartResponse
	err = carts.Do(sessionID, func(engine *cart.Engine) error {
		view, err = buildCartResponse(engine, pizzas)
		return err
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// CartFetch returns the session's cart lines with computed totals.
func CartFetch(carts *cart.Store, catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := cartView(r, carts, catalog)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type addCartItemRequest struct {
	PizzaID  string `json:"pizzaId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,min=1"`
}

// CartAddItem merges quantity into the session's cart line for the pizza.
func CartAddItem(carts *cart.Store, catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		err := carts.Do(sessionID, func(engine *cart.Engine) error {
			return engine.AddItem(payload.PizzaID, payload.Quantity)
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := cartView(r, carts, catalog)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

type updateCartItemRequest struct {
	Action   string `json:"action" validate:"required,oneof=set increment decrement"`
	Quantity *int   `json:"quantity,omitempty"`
}

// CartUpdateItem sets, increments, or decrements one cart line.
func CartUpdateItem(carts *cart.Store, catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pizzaID := chi.URLParam(r, "pizzaId")

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Action == "set" && payload.Quantity == nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quantity is required for set"))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		_ = carts.Do(sessionID, func(engine *cart.Engine) error {
			switch payload.Action {
			case "set":
				engine.SetQuantity(pizzaID, *payload.Quantity)
			case "increment":
				engine.Increment(pizzaID)
			case "decrement":
				engine.Decrement(pizzaID)
			}
			return nil
		})

		view, err := cartView(r, carts, catalog)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartRemoveItem deletes one line; removing an absent line succeeds.
func CartRemoveItem(carts *cart.Store, catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pizzaID := chi.URLParam(r, "pizzaId")

		sessionID := middleware.CartSessionFromContext(r.Context())
		_ = carts.Do(sessionID, func(engine *cart.Engine) error {
			engine.RemoveItem(pizzaID)
			return nil
		})

		view, err := cartView(r, carts, catalog)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

// CartClear empties the session's cart.
func CartClear(carts *cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		_ = carts.Do(sessionID, func(engine *cart.Engine) error {
			engine.Clear()
			return nil
		})
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
