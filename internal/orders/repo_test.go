package orders

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/leader-akash/pizza-craft/pkg/db/models"
	"github.com/leader-akash/pizza-craft/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:ordersrepo?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  items TEXT NOT NULL DEFAULT '[]',
  subtotal NUMERIC(12,2) NOT NULL,
  total_discount NUMERIC(12,2) NOT NULL,
  final_total NUMERIC(12,2) NOT NULL,
  timestamp DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	require.NoError(t, db.Exec(`DELETE FROM orders`).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, id string, placed time.Time) *models.Order {
	t.Helper()

	order := &models.Order{
		ID: id,
		Items: models.OrderItems{
			{
				Pizza:          models.Pizza{ID: "p1", Name: "Margherita", Price: decimal.RequireFromString("10.00"), Category: enums.PizzaCategoryClassic},
				Quantity:       2,
				OriginalPrice:  decimal.RequireFromString("20.00"),
				DiscountAmount: decimal.Zero,
				FinalPrice:     decimal.RequireFromString("20.00"),
			},
		},
		Subtotal:      decimal.RequireFromString("20.00"),
		TotalDiscount: decimal.Zero,
		FinalTotal:    decimal.RequireFromString("20.00"),
		Timestamp:     placed,
		Status:        enums.OrderStatusPending,
	}
	require.NoError(t, db.Create(order).Error)
	return order
}

func TestRepositoryListNewestFirst(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	seedOrder(t, db, "ORD-A-00001", base)
	seedOrder(t, db, "ORD-B-00002", base.Add(2*time.Minute))
	seedOrder(t, db, "ORD-C-00003", base.Add(time.Minute))

	orders, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "ORD-B-00002", orders[0].ID)
	assert.Equal(t, "ORD-C-00003", orders[1].ID)
	assert.Equal(t, "ORD-A-00001", orders[2].ID)
}

func TestRepositoryRoundTripsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seeded := seedOrder(t, db, "ORD-D-00004", time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	orders, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	got := orders[0]
	require.Len(t, got.Items, 1)
	assert.Equal(t, "p1", got.Items[0].Pizza.ID)
	assert.Equal(t, 2, got.Items[0].Quantity)
	assert.True(t, got.Items[0].OriginalPrice.Equal(seeded.Items[0].OriginalPrice))
	assert.True(t, got.FinalTotal.Equal(seeded.FinalTotal))
	assert.Equal(t, enums.OrderStatusPending, got.Status)
}

func TestRepositorySaveUpdatesStatus(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := seedOrder(t, db, "ORD-E-00005", time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC))
	order.Status = enums.OrderStatusPreparing
	require.NoError(t, repo.Save(ctx, order))

	orders, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, enums.OrderStatusPreparing, orders[0].Status)
}

func TestRepositoryDeleteAbsentIsNoError(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	require.NoError(t, repo.Delete(context.Background(), "ORD-MISSING-00000"))
}

func TestRepositoryDeleteAll(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedOrder(t, db, "ORD-F-00006", time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))
	seedOrder(t, db, "ORD-G-00007", time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC))

	require.NoError(t, repo.DeleteAll(ctx))

	orders, err := repo.ListNewestFirst(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}
