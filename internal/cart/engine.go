package cart

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
)

// Discount threshold: 3 or more of the same pizza = 10% off that line.
const DiscountThreshold = 3

// DiscountRate is exactly 0.1; the discount is a step function, never a
// sliding scale.
var DiscountRate = decimal.New(1, -1)

// Line tracks one pizza selection. A line with quantity <= 0 never exists;
// deletion is the represented state.
type Line struct {
	PizzaID  string `json:"pizzaId"`
	Quantity int    `json:"quantity"`
}

// Engine holds the in-progress cart: at most one line per pizza id, in
// insertion order. It is not safe for concurrent use; Store serializes access.
type Engine struct {
	lines []Line
}

// NewEngine returns an empty cart.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) find(pizzaID string) int {
	for i := range e.lines {
		if e.lines[i].PizzaID == pizzaID {
			return i
		}
	}
	return -1
}

// AddItem adds quantity units of the pizza, merging into an existing line.
func (e *Engine) AddItem(pizzaID string, quantity int) error {
	if quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}
	if idx := e.find(pizzaID); idx >= 0 {
		e.lines[idx].Quantity += quantity
		return nil
	}
	e.lines = append(e.lines, Line{PizzaID: pizzaID, Quantity: quantity})
	return nil
}

// RemoveItem deletes the line if present; no-op otherwise.
func (e *Engine) RemoveItem(pizzaID string) {
	if idx := e.find(pizzaID); idx >= 0 {
		e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
	}
}

// SetQuantity sets an existing line to exactly quantity. A non-positive
// quantity removes the line. Absent lines are not created; use AddItem.
func (e *Engine) SetQuantity(pizzaID string, quantity int) {
	if quantity <= 0 {
		e.RemoveItem(pizzaID)
		return
	}
	if idx := e.find(pizzaID); idx >= 0 {
		e.lines[idx].Quantity = quantity
	}
}

// Increment bumps the line quantity by one; no-op if absent.
func (e *Engine) Increment(pizzaID string) {
	if idx := e.find(pizzaID); idx >= 0 {
		e.lines[idx].Quantity++
	}
}

// Decrement lowers the line quantity by one, removing the line at quantity 1;
// no-op if absent.
func (e *Engine) Decrement(pizzaID string) {
	idx := e.find(pizzaID)
	if idx < 0 {
		return
	}
	if e.lines[idx].Quantity > 1 {
		e.lines[idx].Quantity--
		return
	}
	e.lines = append(e.lines[:idx], e.lines[idx+1:]...)
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = nil
}

// QuantityOf returns the current quantity for the pizza, or 0.
func (e *Engine) QuantityOf(pizzaID string) int {
	if idx := e.find(pizzaID); idx >= 0 {
		return e.lines[idx].Quantity
	}
	return 0
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	return len(e.lines) == 0
}

// ItemCount sums all quantities, not the line count.
func (e *Engine) ItemCount() int {
	total := 0
	for _, line := range e.lines {
		total += line.Quantity
	}
	return total
}

// Lines returns a copy of the cart lines in insertion order.
func (e *Engine) Lines() []Line {
	out := make([]Line, len(e.lines))
	copy(out, e.lines)
	return out
}

// OrderLines resolves every cart line against the catalog and computes the
// per-line discount breakdown. A line whose pizza is missing from the catalog
// aborts the whole computation with a NotFound error; no partial result is
// produced.
func (e *Engine) OrderLines(catalog []models.Pizza) ([]models.OrderItem, error) {
	byID := make(map[string]models.Pizza, len(catalog))
	for _, pizza := range catalog {
		byID[pizza.ID] = pizza
	}

	items := make([]models.OrderItem, 0, len(e.lines))
	for _, line := range e.lines {
		pizza, ok := byID[line.PizzaID]
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("pizza not found: %s", line.PizzaID))
		}

		original := pizza.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		discount := decimal.Zero
		if line.Quantity >= DiscountThreshold {
			discount = original.Mul(DiscountRate)
		}

		items = append(items, models.OrderItem{
			Pizza:          pizza,
			Quantity:       line.Quantity,
			OriginalPrice:  original,
			DiscountAmount: discount,
			FinalPrice:     original.Sub(discount),
		})
	}
	return items, nil
}

// Subtotal sums originalPrice over all lines. Derived, never cached.
func (e *Engine) Subtotal(catalog []models.Pizza) (decimal.Decimal, error) {
	items, err := e.OrderLines(catalog)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.OriginalPrice)
	}
	return total, nil
}

// TotalDiscount sums discountAmount over all lines.
func (e *Engine) TotalDiscount(catalog []models.Pizza) (decimal.Decimal, error) {
	items, err := e.OrderLines(catalog)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.DiscountAmount)
	}
	return total, nil
}

// FinalTotal sums finalPrice over all lines.
func (e *Engine) FinalTotal(catalog []models.Pizza) (decimal.Decimal, error) {
	items, err := e.OrderLines(catalog)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.FinalPrice)
	}
	return total, nil
}
