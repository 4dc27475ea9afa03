package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusAccepted   OrderStatus = "accepted"
	StatusDelivering OrderStatus = "delivering"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// ParseOrderStatus maps a raw string onto the closed status enum.
// Unknown values are rejected at the boundary instead of being
// written into an order verbatim.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(s) {
	case StatusPending, StatusAccepted, StatusDelivering, StatusCompleted, StatusCancelled:
		return OrderStatus(s), true
	}
	return "", false
}

// CanTransitionTo reports whether the state machine allows moving
// from the current status to the target. pending -> accepted ->
// delivering -> completed, with cancelled reachable only from pending.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case StatusPending:
		return target == StatusAccepted || target == StatusCancelled
	case StatusAccepted:
		return target == StatusDelivering
	case StatusDelivering:
		return target == StatusCompleted
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// OrderItem is an immutable value copy taken from the catalog when the
// order is created. ProductName and Price deliberately never re-sync
// with later catalog edits.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

type StatusChange struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// Order carries a point-in-time snapshot of the customer's delivery
// details; the user directory is never consulted again after creation.
type Order struct {
	ID                 string         `json:"id"`
	CustomerID         string         `json:"customer_id"`
	CustomerName       string         `json:"customer_name"`
	CustomerAddress    string         `json:"customer_address"`
	CustomerPhone      string         `json:"customer_phone"`
	CommunityID        string         `json:"community_id"`
	Items              []OrderItem    `json:"items"`
	TotalAmount        float64        `json:"total_amount"`
	Status             OrderStatus    `json:"status"`
	DeliveryTime       string         `json:"delivery_time"`
	CreatedAt          time.Time      `json:"created_at"`
	DeliveryPersonID   string         `json:"delivery_person_id,omitempty"`
	DeliveryPersonName string         `json:"delivery_person_name,omitempty"`
	CancelConfirmed    bool           `json:"cancel_confirmed"`
	StatusHistory      []StatusChange `json:"status_history"`
}
