package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/internal/store"
)

// ShopHandler is the customer-facing order surface. The shopping cart
// itself lives entirely in the client; the server only ever sees the
// finished submission.
type ShopHandler struct {
	Store *store.Store
}

type SubmitOrderRequest struct {
	Address      string               `json:"address" binding:"required"`
	Phone        string               `json:"phone" binding:"required"`
	CommunityID  string               `json:"community_id" binding:"required"`
	DeliveryTime string               `json:"delivery_time" binding:"required"`
	Items        []store.NewOrderItem `json:"items" binding:"required"`
}

func (h *ShopHandler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Store.CreateOrder(store.NewOrder{
		CustomerID:      c.GetString("userID"),
		CustomerName:    c.GetString("name"),
		CustomerAddress: req.Address,
		CustomerPhone:   req.Phone,
		CommunityID:     req.CommunityID,
		DeliveryTime:    req.DeliveryTime,
		Items:           req.Items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *ShopHandler) MyOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.OrdersByCustomer(c.GetString("userID")))
}

func (h *ShopHandler) GetOrder(c *gin.Context) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order.CustomerID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CancelOrder lets a customer withdraw an order that nobody has
// accepted yet. Anything past pending is refused by the engine.
func (h *ShopHandler) CancelOrder(c *gin.Context) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if order.CustomerID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	cancelled, err := h.Store.CancelOrder(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}
