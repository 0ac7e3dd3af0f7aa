package cart

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
)

func testCatalog() []models.Pizza {
	return []models.Pizza{
		{ID: "p1", Name: "Margherita", Price: decimal.RequireFromString("10.00")},
		{ID: "p2", Name: "Pepperoni", Price: decimal.RequireFromString("8.00")},
		{ID: "p3", Name: "Diavola", Price: decimal.RequireFromString("12.50")},
	}
}

func TestAddItemMergesLines(t *testing.T) {
	e := NewEngine()
	if err := e.AddItem("p1", 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := e.AddItem("p1", 3); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if got := e.QuantityOf("p1"); got != 5 {
		t.Fatalf("QuantityOf(p1) = %d, want 5", got)
	}
	if got := len(e.Lines()); got != 1 {
		t.Fatalf("len(Lines) = %d, want 1", got)
	}
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	e := NewEngine()
	for _, qty := range []int{0, -1, -10} {
		err := e.AddItem("p1", qty)
		if err == nil {
			t.Fatalf("AddItem(p1, %d) succeeded, want validation error", qty)
		}
		if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
			t.Fatalf("AddItem(p1, %d) error = %v, want CodeValidation", qty, err)
		}
	}
	if !e.IsEmpty() {
		t.Fatal("cart should stay empty after rejected adds")
	}
}

func TestSetQuantityRemovesAtZero(t *testing.T) {
	e := NewEngine()
	_ = e.AddItem("p1", 4)
	e.SetQuantity("p1", 2)
	if got := e.QuantityOf("p1"); got != 2 {
		t.Fatalf("QuantityOf(p1) = %d, want 2", got)
	}
	e.SetQuantity("p1", 0)
	if !e.IsEmpty() {
		t.Fatal("setting quantity to 0 should remove the line")
	}
	// absent lines are never created
	e.SetQuantity("p2", 3)
	if got := e.QuantityOf("p2"); got != 0 {
		t.Fatalf("SetQuantity on absent line created it, quantity = %d", got)
	}
}

func TestIncrementDecrementSymmetry(t *testing.T) {
	e := NewEngine()
	_ = e.AddItem("p1", 2)
	e.Increment("p1")
	e.Decrement("p1")
	if got := e.QuantityOf("p1"); got != 2 {
		t.Fatalf("QuantityOf(p1) = %d, want 2 after inc/dec", got)
	}

	e.Decrement("p1")
	e.Decrement("p1")
	if !e.IsEmpty() {
		t.Fatal("decrementing through quantity 1 should remove the line")
	}
	// both are no-ops on an absent line
	e.Increment("missing")
	e.Decrement("missing")
	if !e.IsEmpty() {
		t.Fatal("inc/dec on absent lines should not create them")
	}
}

func TestItemCountSumsQuantities(t *testing.T) {
	e := NewEngine()
	_ = e.AddItem("p1", 3)
	_ = e.AddItem("p2", 1)
	if got := e.ItemCount(); got != 4 {
		t.Fatalf("ItemCount = %d, want 4", got)
	}
	e.Clear()
	if got := e.ItemCount(); got != 0 {
		t.Fatalf("ItemCount after Clear = %d, want 0", got)
	}
}

func TestDiscountStepFunction(t *testing.T) {
	catalog := testCatalog()
	cases := []struct {
		qty          int
		wantDiscount string
	}{
		{1, "0"},
		{2, "0"},
		{3, "3"},   // 10.00 * 3 * 0.1
		{5, "5"},   // 10.00 * 5 * 0.1
		{10, "10"}, // still 10%, never a sliding scale
	}
	for _, tc := range cases {
		e := NewEngine()
		_ = e.AddItem("p1", tc.qty)
		items, err := e.OrderLines(catalog)
		if err != nil {
			t.Fatalf("OrderLines(qty=%d): %v", tc.qty, err)
		}
		want := decimal.RequireFromString(tc.wantDiscount)
		if !items[0].DiscountAmount.Equal(want) {
			t.Fatalf("qty=%d discount = %s, want %s", tc.qty, items[0].DiscountAmount, want)
		}
		if !items[0].FinalPrice.Equal(items[0].OriginalPrice.Sub(items[0].DiscountAmount)) {
			t.Fatalf("qty=%d final != original - discount", tc.qty)
		}
	}
}

func TestOrderLinesAbortsOnMissingPizza(t *testing.T) {
	e := NewEngine()
	_ = e.AddItem("p1", 1)
	_ = e.AddItem("ghost", 2)

	items, err := e.OrderLines(testCatalog())
	if err == nil {
		t.Fatal("OrderLines succeeded with an unknown pizza in the cart")
	}
	if items != nil {
		t.Fatal("OrderLines must not return a partial result")
	}
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("error = %v, want CodeNotFound", err)
	}
}

func TestOrderLinesPreserveInsertionOrder(t *testing.T) {
	e := NewEngine()
	_ = e.AddItem("p3", 1)
	_ = e.AddItem("p1", 1)
	_ = e.AddItem("p2", 1)

	items, err := e.OrderLines(testCatalog())
	if err != nil {
		t.Fatalf("OrderLines: %v", err)
	}
	got := []string{items[0].Pizza.ID, items[1].Pizza.ID, items[2].Pizza.ID}
	want := []string{"p3", "p1", "p2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line order = %v, want %v", got, want)
		}
	}
}

func TestTotalsAdditivity(t *testing.T) {
	catalog := testCatalog()
	e := NewEngine()
	_ = e.AddItem("p1", 3) // 30.00, discount 3.00
	_ = e.AddItem("p2", 1) // 8.00, no discount

	subtotal, err := e.Subtotal(catalog)
	if err != nil {
		t.Fatalf("Subtotal: %v", err)
	}
	discount, err := e.TotalDiscount(catalog)
	if err != nil {
		t.Fatalf("TotalDiscount: %v", err)
	}
	final, err := e.FinalTotal(catalog)
	if err != nil {
		t.Fatalf("FinalTotal: %v", err)
	}

	if !subtotal.Equal(decimal.RequireFromString("38")) {
		t.Fatalf("subtotal = %s, want 38", subtotal)
	}
	if !discount.Equal(decimal.RequireFromString("3")) {
		t.Fatalf("discount = %s, want 3", discount)
	}
	if !final.Equal(decimal.RequireFromString("35")) {
		t.Fatalf("final = %s, want 35", final)
	}
	if !final.Equal(subtotal.Sub(discount)) {
		t.Fatal("final != subtotal - discount")
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	s := NewStore()
	err := s.Do("a", func(e *Engine) error { return e.AddItem("p1", 2) })
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	err = s.Do("b", func(e *Engine) error {
		if !e.IsEmpty() {
			t.Fatal("session b should start empty")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got := s.Sessions(); got != 2 {
		t.Fatalf("Sessions = %d, want 2", got)
	}
	s.Drop("a")
	if got := s.Sessions(); got != 1 {
		t.Fatalf("Sessions after Drop = %d, want 1", got)
	}
}
