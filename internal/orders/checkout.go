package orders

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/internal/cart"
	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
	pkgerrors "github.com/leader-akash/pizza-craft/pkg/errors"
)

type catalogReader interface {
	All(ctx context.Context) ([]models.Pizza, error)
}

// CheckoutService confirms carts into persisted orders.
type CheckoutService struct {
	orders  Service
	carts   *cart.Store
	catalog catalogReader
	now     func() time.Time
}

// NewCheckoutService wires the order log, cart store, and catalog together.
func NewCheckoutService(orders Service, carts *cart.Store, catalog catalogReader) (*CheckoutService, error) {
	if orders == nil {
		return nil, fmt.Errorf("order service required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog reader required")
	}
	return &CheckoutService{orders: orders, carts: carts, catalog: catalog, now: time.Now}, nil
}

// Checkout freezes the session's cart into an order: line breakdowns and
// totals are computed against the current catalog, the order is logged, and
// the cart is cleared. An empty cart or a cart line whose pizza no longer
// exists fails the whole checkout; the cart is left untouched on failure.
func (c *CheckoutService) Checkout(ctx context.Context, sessionID string) (*models.Order, error) {
	catalog, err := c.catalog.All(ctx)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = c.carts.Do(sessionID, func(engine *cart.Engine) error {
		if engine.IsEmpty() {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		items, err := engine.OrderLines(catalog)
		if err != nil {
			return err
		}

		subtotal, totalDiscount, finalTotal := decimal.Zero, decimal.Zero, decimal.Zero
		for _, item := range items {
			subtotal = subtotal.Add(item.OriginalPrice)
			totalDiscount = totalDiscount.Add(item.DiscountAmount)
			finalTotal = finalTotal.Add(item.FinalPrice)
		}

		now := c.now()
		order = &models.Order{
			ID:            newOrderID(now),
			Items:         models.OrderItems(items),
			Subtotal:      subtotal,
			TotalDiscount: totalDiscount,
			FinalTotal:    finalTotal,
			Timestamp:     now.UTC(),
			Status:        enums.OrderStatusPending,
		}

		engine.Clear()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.orders.Add(ctx, *order)
	return order, nil
}

// newOrderID builds ids like ORD-MBXK2P1T-A3F9C: a base-36 timestamp segment
// and a random alphanumeric segment, both uppercase.
func newOrderID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
	return fmt.Sprintf("ORD-%s-%s", ts, random)
}
