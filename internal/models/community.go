package models

import (
	"time"
)

// Community is a geographic delivery zone. Delivery staff accounts are
// bound to one community and only see its orders.
type Community struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}
