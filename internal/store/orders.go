package store

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
)

// NewOrderItem names a product and how many units of it the customer
// wants. Name and price are looked up from the catalog at creation
// time, never taken from the client.
type NewOrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// NewOrder is a finished cart submitted for creation.
type NewOrder struct {
	CustomerID      string         `json:"customer_id"`
	CustomerName    string         `json:"customer_name"`
	CustomerAddress string         `json:"customer_address"`
	CustomerPhone   string         `json:"customer_phone"`
	CommunityID     string         `json:"community_id"`
	DeliveryTime    string         `json:"delivery_time"`
	Items           []NewOrderItem `json:"items"`
}

// CreateOrder validates every item against the catalog before touching
// anything, then decrements stock and writes one "out" ledger entry
// per item. The whole operation happens under the write lock, so it is
// all-or-nothing: if any item's product is missing or short on stock,
// no stock moves and no order exists. Items are checked in list order
// and the first failing item decides the error.
func (s *Store) CreateOrder(req NewOrder) (models.Order, error) {
	if err := validateNewOrder(req); err != nil {
		return models.Order{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.communities[req.CommunityID]; !ok {
		return models.Order{}, fmt.Errorf("community %s: %w", req.CommunityID, ErrNotFound)
	}

	// Phase 1: validate everything. Quantities are summed per product
	// so an order listing the same product on several lines is checked
	// against the combined demand, not each line in isolation.
	requested := make(map[string]int, len(req.Items))
	for _, item := range req.Items {
		p, ok := s.products[item.ProductID]
		if !ok {
			return models.Order{}, fmt.Errorf("product %s: %w", item.ProductID, ErrNotFound)
		}
		requested[item.ProductID] += item.Quantity
		if p.Stock < requested[item.ProductID] {
			return models.Order{}, fmt.Errorf("%w: %s has %d in stock, %d requested",
				ErrInsufficientStock, p.Name, p.Stock, requested[item.ProductID])
		}
	}

	now := time.Now()
	s.orderSeq++
	order := &models.Order{
		ID:              fmt.Sprintf("ORD-%s-%04d", now.Format("20060102"), s.orderSeq),
		CustomerID:      req.CustomerID,
		CustomerName:    req.CustomerName,
		CustomerAddress: req.CustomerAddress,
		CustomerPhone:   req.CustomerPhone,
		CommunityID:     req.CommunityID,
		DeliveryTime:    req.DeliveryTime,
		Status:          models.StatusPending,
		CreatedAt:       now,
		StatusHistory:   []models.StatusChange{{Status: models.StatusPending, Timestamp: now}},
	}

	// Phase 2: commit. Reservation-by-deduction: the stock number keeps
	// meaning "sellable right now", at the price of every cancellation
	// path having to restock explicitly.
	for _, item := range req.Items {
		p := s.products[item.ProductID]
		p.Stock -= item.Quantity

		order.Items = append(order.Items, models.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    item.Quantity,
			Price:       p.Price,
		})
		order.TotalAmount += p.Price * float64(item.Quantity)

		s.recordMovement(models.StockMovement{
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        models.MovementOut,
			Quantity:    item.Quantity,
			Reason:      "order stock deduction",
			OrderID:     order.ID,
			UserID:      req.CustomerID,
		})

		s.log.WithFields(logrus.Fields{
			"product":  p.ID,
			"name":     p.Name,
			"quantity": item.Quantity,
			"stock":    p.Stock,
			"order":    order.ID,
		}).Info("stock deducted for order")
	}

	s.orders[order.ID] = order
	s.log.WithFields(logrus.Fields{
		"order":    order.ID,
		"customer": order.CustomerID,
		"total":    order.TotalAmount,
	}).Info("order created")

	return cloneOrder(order), nil
}

// AcceptOrder assigns a pending order to a delivery person. A second
// accept fails and leaves the first assignment untouched.
func (s *Store) AcceptOrder(orderID, staffID, staffName string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status != models.StatusPending {
		return models.Order{}, fmt.Errorf("%w: order %s is %s, not pending", ErrInvalidTransition, orderID, o.Status)
	}

	o.DeliveryPersonID = staffID
	o.DeliveryPersonName = staffName
	s.setStatusLocked(o, models.StatusAccepted)
	return cloneOrder(o), nil
}

func (s *Store) StartDelivery(orderID string) (models.Order, error) {
	return s.transition(orderID, models.StatusAccepted, models.StatusDelivering)
}

func (s *Store) CompleteDelivery(orderID string) (models.Order, error) {
	return s.transition(orderID, models.StatusDelivering, models.StatusCompleted)
}

// CancelOrder is the customer-initiated cancellation. Only pending
// orders can be cancelled; once a delivery person has accepted, the
// customer is too late. Cancelling restores each item's stock and
// writes one "in" ledger entry per item. This is the single point at
// which cancelled stock comes back: ConfirmCancelOrder never touches
// stock again.
func (s *Store) CancelOrder(orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status != models.StatusPending {
		return models.Order{}, fmt.Errorf("%w: order %s is %s, not pending", ErrInvalidTransition, orderID, o.Status)
	}

	s.cancelLocked(o)
	return cloneOrder(o), nil
}

// ConfirmCancelOrder is the delivery-side acknowledgement of a
// cancelled order, so cancellations do not silently vanish from the
// staff's queue. Stock was already restored when the order entered
// cancelled; confirming flips the flag and nothing else. Confirming
// twice fails.
func (s *Store) ConfirmCancelOrder(orderID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status != models.StatusCancelled {
		return models.Order{}, fmt.Errorf("%w: order %s is %s, not cancelled", ErrInvalidTransition, orderID, o.Status)
	}
	if o.CancelConfirmed {
		return models.Order{}, fmt.Errorf("%w: order %s cancellation already confirmed", ErrInvalidTransition, orderID)
	}

	o.CancelConfirmed = true
	s.log.WithField("order", o.ID).Info("order cancellation confirmed")
	return cloneOrder(o), nil
}

func (s *Store) transition(orderID string, from, to models.OrderStatus) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	if o.Status != from {
		return models.Order{}, fmt.Errorf("%w: order %s is %s, not %s", ErrInvalidTransition, orderID, o.Status, from)
	}

	s.setStatusLocked(o, to)
	return cloneOrder(o), nil
}

// cancelLocked moves an order to cancelled and restores its stock.
// Items whose product has since been removed from the catalog are
// skipped, matching the removal semantics elsewhere: the ledger still
// shows the original deduction.
func (s *Store) cancelLocked(o *models.Order) {
	s.setStatusLocked(o, models.StatusCancelled)

	for _, item := range o.Items {
		p, ok := s.products[item.ProductID]
		if !ok {
			s.log.WithFields(logrus.Fields{
				"order":   o.ID,
				"product": item.ProductID,
			}).Warn("cancelled order references removed product, stock not restored")
			continue
		}
		p.Stock += item.Quantity

		s.recordMovement(models.StockMovement{
			ProductID:   p.ID,
			ProductName: p.Name,
			Type:        models.MovementIn,
			Quantity:    item.Quantity,
			Reason:      "order cancelled, stock restored",
			OrderID:     o.ID,
			UserID:      o.CustomerID,
		})

		s.log.WithFields(logrus.Fields{
			"product":  p.ID,
			"name":     p.Name,
			"quantity": item.Quantity,
			"stock":    p.Stock,
			"order":    o.ID,
		}).Info("stock restored from cancelled order")
	}
}

func (s *Store) setStatusLocked(o *models.Order, target models.OrderStatus) {
	from := o.Status
	o.Status = target
	o.StatusHistory = append(o.StatusHistory, models.StatusChange{
		Status:    target,
		Timestamp: time.Now(),
	})
	s.log.WithFields(logrus.Fields{
		"order": o.ID,
		"from":  from,
		"to":    target,
	}).Info("order status changed")
}

// Orders returns every order, newest first.
func (s *Store) Orders() []models.Order {
	return s.filterOrders(func(*models.Order) bool { return true })
}

func (s *Store) Order(id string) (models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return cloneOrder(o), nil
}

func (s *Store) OrdersByCustomer(customerID string) []models.Order {
	return s.filterOrders(func(o *models.Order) bool { return o.CustomerID == customerID })
}

func (s *Store) OrdersByCommunity(communityID string) []models.Order {
	return s.filterOrders(func(o *models.Order) bool { return o.CommunityID == communityID })
}

func (s *Store) PendingOrdersByCommunity(communityID string) []models.Order {
	return s.filterOrders(func(o *models.Order) bool {
		return o.CommunityID == communityID && o.Status == models.StatusPending
	})
}

func (s *Store) OrdersByDeliveryPerson(staffID string) []models.Order {
	return s.filterOrders(func(o *models.Order) bool { return o.DeliveryPersonID == staffID })
}

func (s *Store) OrdersByStatus(status models.OrderStatus) []models.Order {
	return s.filterOrders(func(o *models.Order) bool { return o.Status == status })
}

// OrderStatusHistory returns the recorded transitions of one order,
// oldest first.
func (s *Store) OrderStatusHistory(orderID string) ([]models.StatusChange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[orderID]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	out := make([]models.StatusChange, len(o.StatusHistory))
	copy(out, o.StatusHistory)
	return out, nil
}

// BatchUpdateOrderStatus drives several orders through the same
// transition at once. The target must be part of the closed status
// enum and reachable from each order's current status; orders that
// fail either check land in Failed without blocking the rest. Targets
// that need data a batch cannot carry (accepting needs a delivery
// person) are rejected wholesale, and a batch cancel restores stock
// exactly like CancelOrder.
func (s *Store) BatchUpdateOrderStatus(orderIDs []string, target models.OrderStatus) BatchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := BatchResult{Succeeded: []string{}, Failed: []string{}}

	if target == models.StatusPending || target == models.StatusAccepted {
		res.Failed = append(res.Failed, orderIDs...)
		return res
	}

	for _, id := range orderIDs {
		o, ok := s.orders[id]
		if !ok || !o.Status.CanTransitionTo(target) {
			res.Failed = append(res.Failed, id)
			continue
		}
		if target == models.StatusCancelled {
			s.cancelLocked(o)
		} else {
			s.setStatusLocked(o, target)
		}
		res.Succeeded = append(res.Succeeded, id)
	}
	return res
}

func (s *Store) filterOrders(keep func(*models.Order) bool) []models.Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Order
	for _, o := range s.orders {
		if keep(o) {
			out = append(out, cloneOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func cloneOrder(o *models.Order) models.Order {
	out := *o
	out.Items = make([]models.OrderItem, len(o.Items))
	copy(out.Items, o.Items)
	out.StatusHistory = make([]models.StatusChange, len(o.StatusHistory))
	copy(out.StatusHistory, o.StatusHistory)
	return out
}

func validateNewOrder(req NewOrder) error {
	switch {
	case strings.TrimSpace(req.CustomerID) == "":
		return fmt.Errorf("%w: customer id is required", ErrValidation)
	case strings.TrimSpace(req.CustomerName) == "":
		return fmt.Errorf("%w: customer name is required", ErrValidation)
	case strings.TrimSpace(req.CustomerAddress) == "":
		return fmt.Errorf("%w: delivery address is required", ErrValidation)
	case strings.TrimSpace(req.CustomerPhone) == "":
		return fmt.Errorf("%w: contact phone is required", ErrValidation)
	case strings.TrimSpace(req.CommunityID) == "":
		return fmt.Errorf("%w: community id is required", ErrValidation)
	case strings.TrimSpace(req.DeliveryTime) == "":
		return fmt.Errorf("%w: delivery time is required", ErrValidation)
	case len(req.Items) == 0:
		return fmt.Errorf("%w: order has no items", ErrValidation)
	}
	for i, item := range req.Items {
		if item.ProductID == "" {
			return fmt.Errorf("%w: item %d has no product id", ErrValidation, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrValidation, i)
		}
	}
	return nil
}
