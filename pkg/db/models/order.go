package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/leader-akash/pizza-craft/pkg/enums"
)

// OrderItem is the per-line breakdown frozen into an order at confirmation.
// The pizza snapshot is copied, so later catalog edits never rewrite history.
type OrderItem struct {
	Pizza          Pizza           `json:"pizza"`
	Quantity       int             `json:"quantity"`
	OriginalPrice  decimal.Decimal `json:"originalPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	FinalPrice     decimal.Decimal `json:"finalPrice"`
}

// OrderItems stores the line snapshots as a JSON text column.
type OrderItems []OrderItem

// Value implements driver.Valuer.
func (items OrderItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	raw, err := json.Marshal([]OrderItem(items))
	if err != nil {
		return nil, fmt.Errorf("order items: marshal: %w", err)
	}
	return string(raw), nil
}

// Scan implements sql.Scanner.
func (items *OrderItems) Scan(value interface{}) error {
	if value == nil {
		*items = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("order items: unsupported source type %T", value)
	}

	if len(raw) == 0 {
		*items = OrderItems{}
		return nil
	}

	var out []OrderItem
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("order items: unmarshal: %w", err)
	}
	*items = out
	return nil
}

// Order is a confirmed cart snapshot with computed totals.
type Order struct {
	ID            string            `gorm:"column:id;primaryKey" json:"id"`
	Items         OrderItems        `gorm:"column:items;type:text;not null" json:"items"`
	Subtotal      decimal.Decimal   `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	TotalDiscount decimal.Decimal   `gorm:"column:total_discount;type:numeric(12,2);not null" json:"totalDiscount"`
	FinalTotal    decimal.Decimal   `gorm:"column:final_total;type:numeric(12,2);not null" json:"finalTotal"`
	Timestamp     time.Time         `gorm:"column:timestamp;not null" json:"timestamp"`
	Status        enums.OrderStatus `gorm:"column:status;not null" json:"status"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}
