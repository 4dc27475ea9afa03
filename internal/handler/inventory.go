package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tyabase/FreshDeliverySystem/config"
	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
)

type InventoryHandler struct {
	Store *store.Store
}

func (h *InventoryHandler) ListProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Products())
}

func (h *InventoryHandler) GetProduct(c *gin.Context) {
	product, err := h.Store.Product(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit" binding:"required"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

func (h *InventoryHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.AddProduct(models.Product{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		Description: req.Description,
	}, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *InventoryHandler) UpdateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.UpdateProduct(models.Product{
		ID:          c.Param("id"),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Unit:        req.Unit,
		Stock:       req.Stock,
		Description: req.Description,
	}, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *InventoryHandler) DeleteProduct(c *gin.Context) {
	if err := h.Store.RemoveProduct(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}

type AdjustStockRequest struct {
	NewStock *int   `json:"new_stock" binding:"required"`
	Reason   string `json:"reason"`
}

func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.Store.AdjustStock(c.Param("id"), *req.NewStock, req.Reason, c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type BatchAdjustStockRequest struct {
	Adjustments []store.StockAdjustment `json:"adjustments" binding:"required"`
}

func (h *InventoryHandler) BatchAdjustStock(c *gin.Context) {
	var req BatchAdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.Store.BatchAdjustStock(req.Adjustments, c.GetString("userID"))
	c.JSON(http.StatusOK, result)
}

func (h *InventoryHandler) LowStockAlerts(c *gin.Context) {
	threshold := config.AppConfig.Defaults.LowStockThreshold
	if q := c.Query("threshold"); q != "" {
		parsed, err := strconv.Atoi(q)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid threshold"})
			return
		}
		threshold = parsed
	}
	c.JSON(http.StatusOK, h.Store.LowStock(threshold))
}

func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.OutOfStock())
}

func (h *InventoryHandler) StockMovements(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.StockMovements(c.Query("product_id")))
}
