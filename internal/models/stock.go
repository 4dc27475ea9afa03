package models

import (
	"time"
)

type MovementType string

const (
	MovementIn         MovementType = "in"
	MovementOut        MovementType = "out"
	MovementAdjustment MovementType = "adjustment"
)

// StockMovement is one entry of the append-only stock ledger. Quantity
// is an absolute value for in/out movements; adjustment movements keep
// the signed delta so either direction can be represented. Entries are
// never mutated or deleted once recorded.
type StockMovement struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	ProductName string       `json:"product_name"`
	Type        MovementType `json:"type"`
	Quantity    int          `json:"quantity"`
	Reason      string       `json:"reason"`
	Timestamp   time.Time    `json:"timestamp"`
	OrderID     string       `json:"order_id,omitempty"`
	UserID      string       `json:"user_id,omitempty"`
}
