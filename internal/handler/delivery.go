package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
)

// DeliveryHandler serves delivery staff. Every endpoint is scoped to
// the community the account is assigned to.
type DeliveryHandler struct {
	Store *store.Store
}

// ListOrders returns the staff member's work queue: unclaimed pending
// orders in their community plus every order already assigned to them.
func (h *DeliveryHandler) ListOrders(c *gin.Context) {
	staffID := c.GetString("userID")
	communityID := c.GetString("communityID")

	pending := h.Store.PendingOrdersByCommunity(communityID)
	mine := h.Store.OrdersByDeliveryPerson(staffID)

	orders := make([]models.Order, 0, len(pending)+len(mine))
	orders = append(orders, pending...)
	orders = append(orders, mine...)
	c.JSON(http.StatusOK, orders)
}

// CancelledOrders lists cancelled orders in the staff community that
// still await acknowledgement.
func (h *DeliveryHandler) CancelledOrders(c *gin.Context) {
	communityID := c.GetString("communityID")

	var out []models.Order
	for _, o := range h.Store.OrdersByCommunity(communityID) {
		if o.Status == models.StatusCancelled && !o.CancelConfirmed {
			out = append(out, o)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (h *DeliveryHandler) AcceptOrder(c *gin.Context) {
	order, ok := h.communityOrder(c)
	if !ok {
		return
	}

	accepted, err := h.Store.AcceptOrder(order.ID, c.GetString("userID"), c.GetString("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, accepted)
}

func (h *DeliveryHandler) StartDelivery(c *gin.Context) {
	order, ok := h.assignedOrder(c)
	if !ok {
		return
	}

	updated, err := h.Store.StartDelivery(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DeliveryHandler) CompleteDelivery(c *gin.Context) {
	order, ok := h.assignedOrder(c)
	if !ok {
		return
	}

	updated, err := h.Store.CompleteDelivery(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DeliveryHandler) ConfirmCancel(c *gin.Context) {
	order, ok := h.communityOrder(c)
	if !ok {
		return
	}

	confirmed, err := h.Store.ConfirmCancelOrder(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, confirmed)
}

// communityOrder loads the order from the path and checks it belongs
// to the caller's community.
func (h *DeliveryHandler) communityOrder(c *gin.Context) (models.Order, bool) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return models.Order{}, false
	}
	if order.CommunityID != c.GetString("communityID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order belongs to another community"})
		return models.Order{}, false
	}
	return order, true
}

// assignedOrder additionally requires the order to be assigned to the
// calling staff member.
func (h *DeliveryHandler) assignedOrder(c *gin.Context) (models.Order, bool) {
	order, ok := h.communityOrder(c)
	if !ok {
		return models.Order{}, false
	}
	if order.DeliveryPersonID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Order is assigned to another delivery person"})
		return models.Order{}, false
	}
	return order, true
}
