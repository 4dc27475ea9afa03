package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/config"
	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
)

type AdminHandler struct {
	Store *store.Store
}

// Users

type CreateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CommunityID string `json:"community_id"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	user, err := h.Store.AddUser(models.User{
		Username:    req.Username,
		Role:        role,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		CommunityID: req.CommunityID,
	}, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	if roleQuery := c.Query("role"); roleQuery != "" {
		role, ok := models.ParseRole(roleQuery)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
			return
		}
		c.JSON(http.StatusOK, h.Store.UsersByRole(role))
		return
	}
	c.JSON(http.StatusOK, h.Store.Users())
}

type UpdateUserRequest struct {
	Username    string `json:"username" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	CommunityID string `json:"community_id"`
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, ok := models.ParseRole(req.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	user, err := h.Store.UpdateUser(models.User{
		ID:          c.Param("id"),
		Username:    req.Username,
		Role:        role,
		Name:        req.Name,
		Phone:       req.Phone,
		Address:     req.Address,
		CommunityID: req.CommunityID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.Store.DeleteUser(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) ResetUserPassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Store.SetPassword(c.Param("id"), req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Communities

type CommunityRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

func (h *AdminHandler) ListCommunities(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Communities())
}

func (h *AdminHandler) CreateCommunity(c *gin.Context) {
	var req CommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	community, err := h.Store.AddCommunity(models.Community{Name: req.Name, Address: req.Address})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

func (h *AdminHandler) UpdateCommunity(c *gin.Context) {
	var req CommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	community, err := h.Store.UpdateCommunity(models.Community{
		ID:      c.Param("id"),
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

func (h *AdminHandler) DeleteCommunity(c *gin.Context) {
	if err := h.Store.DeleteCommunity(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Community deleted"})
}

// Orders

func (h *AdminHandler) ListOrders(c *gin.Context) {
	if statusQuery := c.Query("status"); statusQuery != "" {
		status, ok := models.ParseOrderStatus(statusQuery)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
			return
		}
		c.JSON(http.StatusOK, h.Store.OrdersByStatus(status))
		return
	}
	c.JSON(http.StatusOK, h.Store.Orders())
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	order, err := h.Store.Order(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *AdminHandler) GetOrderHistory(c *gin.Context) {
	history, err := h.Store.OrderStatusHistory(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

type BatchOrderStatusRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
	Status   string   `json:"status" binding:"required"`
}

func (h *AdminHandler) BatchUpdateOrderStatus(c *gin.Context) {
	var req BatchOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	c.JSON(http.StatusOK, h.Store.BatchUpdateOrderStatus(req.OrderIDs, status))
}

func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"orders":   h.Store.OrderStatistics(),
		"products": h.Store.ProductStatistics(config.AppConfig.Defaults.LowStockThreshold),
	})
}
