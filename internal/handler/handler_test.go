package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tyabase/FreshDeliverySystem/config"
	"github.com/tyabase/FreshDeliverySystem/internal/handler"
	"github.com/tyabase/FreshDeliverySystem/internal/middleware"
	"github.com/tyabase/FreshDeliverySystem/internal/models"
	"github.com/tyabase/FreshDeliverySystem/internal/store"
	"github.com/tyabase/FreshDeliverySystem/internal/utils"
)

type testEnv struct {
	router    *gin.Engine
	store     *store.Store
	community models.Community
	tokens    map[string]string
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.ConfigureJWT("test-secret", 1)
	config.AppConfig = &config.Config{
		Defaults: config.DefaultsConfig{LowStockThreshold: 10},
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	st := store.New(logger)

	community, err := st.AddCommunity(models.Community{Name: "Sunshine Court", Address: "12 Sunshine Street"})
	require.NoError(t, err)

	accounts := []struct {
		user     models.User
		password string
	}{
		{models.User{Username: "admin", Role: models.RoleAdmin, Name: "Admin"}, "admin123"},
		{models.User{Username: "delivery1", Role: models.RoleDelivery, Name: "Dana Courier", CommunityID: community.ID}, "delivery123"},
		{models.User{Username: "customer1", Role: models.RoleCustomer, Name: "Lee Shopper", CommunityID: community.ID}, "customer123"},
	}
	tokens := make(map[string]string, len(accounts))
	for _, acc := range accounts {
		u, err := st.AddUser(acc.user, acc.password)
		require.NoError(t, err)
		token, err := utils.GenerateToken(u.ID, string(u.Role), u.Name, u.CommunityID)
		require.NoError(t, err)
		tokens[string(u.Role)] = token
	}

	r := gin.New()

	authHandler := &handler.AuthHandler{Store: st}
	r.POST("/api/v1/auth/login", authHandler.Login)

	inventoryHandler := &handler.InventoryHandler{Store: st}
	r.GET("/api/v1/products", middleware.AuthMiddleware(), inventoryHandler.ListProducts)

	adminHandler := &handler.AdminHandler{Store: st}
	adminRoutes := r.Group("/api/v1/admin")
	adminRoutes.Use(middleware.AuthMiddleware("admin"))
	{
		adminRoutes.POST("/products", inventoryHandler.CreateProduct)
		adminRoutes.PUT("/products/:id/stock", inventoryHandler.AdjustStock)
		adminRoutes.POST("/products/stock/batch", inventoryHandler.BatchAdjustStock)
		adminRoutes.GET("/stock-movements", inventoryHandler.StockMovements)
		adminRoutes.GET("/orders", adminHandler.ListOrders)
		adminRoutes.PUT("/orders/status/batch", adminHandler.BatchUpdateOrderStatus)
		adminRoutes.GET("/dashboard", adminHandler.GetDashboardStats)
	}

	shopHandler := &handler.ShopHandler{Store: st}
	shopRoutes := r.Group("/api/v1/shop")
	shopRoutes.Use(middleware.AuthMiddleware("customer"))
	{
		shopRoutes.POST("/orders", shopHandler.SubmitOrder)
		shopRoutes.GET("/orders", shopHandler.MyOrders)
		shopRoutes.PUT("/orders/:id/cancel", shopHandler.CancelOrder)
	}

	deliveryHandler := &handler.DeliveryHandler{Store: st}
	deliveryRoutes := r.Group("/api/v1/delivery")
	deliveryRoutes.Use(middleware.AuthMiddleware("delivery"))
	{
		deliveryRoutes.GET("/orders", deliveryHandler.ListOrders)
		deliveryRoutes.PUT("/orders/:id/accept", deliveryHandler.AcceptOrder)
		deliveryRoutes.PUT("/orders/:id/start", deliveryHandler.StartDelivery)
		deliveryRoutes.PUT("/orders/:id/complete", deliveryHandler.CompleteDelivery)
		deliveryRoutes.PUT("/orders/:id/confirm-cancel", deliveryHandler.ConfirmCancel)
	}

	return &testEnv{router: r, store: st, community: community, tokens: tokens}
}

func (e *testEnv) do(method, path, role string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		req.Header.Set("Authorization", "Bearer "+e.tokens[role])
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) addProduct(t *testing.T, name string, price float64, stock int) models.Product {
	t.Helper()
	p, err := e.store.AddProduct(models.Product{Name: name, Category: "Fruit", Price: price, Unit: "kg", Stock: stock}, "")
	require.NoError(t, err)
	return p
}

func TestLogin(t *testing.T) {
	env := setupEnv(t)

	w := env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "customer1", "password": "customer123"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "customer", resp["role"])

	w = env.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "customer1", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthAndRoleGuards(t *testing.T) {
	env := setupEnv(t)

	// No token.
	w := env.do(http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong role on an admin route.
	w = env.do(http.MethodGet, "/api/v1/admin/orders", "customer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Right role.
	w = env.do(http.MethodGet, "/api/v1/admin/orders", "admin", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSubmitOrderFlow(t *testing.T) {
	env := setupEnv(t)
	p := env.addProduct(t, "Fresh Apples", 8.5, 10)

	w := env.do(http.MethodPost, "/api/v1/shop/orders", "customer", gin.H{
		"address":       "Building 1, Apt 101",
		"phone":         "555-0102",
		"community_id":  env.community.ID,
		"delivery_time": "today 18:00-19:00",
		"items":         []gin.H{{"product_id": p.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 25.5, order.TotalAmount, 0.0001)
	assert.Equal(t, "Lee Shopper", order.CustomerName)

	got, err := env.store.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	w = env.do(http.MethodGet, "/api/v1/shop/orders", "customer", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 1)
}

func TestSubmitOrderInsufficientStock(t *testing.T) {
	env := setupEnv(t)
	p := env.addProduct(t, "Fresh Apples", 8.5, 2)

	w := env.do(http.MethodPost, "/api/v1/shop/orders", "customer", gin.H{
		"address":       "Building 1, Apt 101",
		"phone":         "555-0102",
		"community_id":  env.community.ID,
		"delivery_time": "today 18:00-19:00",
		"items":         []gin.H{{"product_id": p.ID, "quantity": 5}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	got, err := env.store.Product(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stock)
}

func TestDeliveryFlow(t *testing.T) {
	env := setupEnv(t)
	p := env.addProduct(t, "Fresh Apples", 8.5, 10)

	order, err := env.store.CreateOrder(store.NewOrder{
		CustomerID:      "cust-external",
		CustomerName:    "Walk-in",
		CustomerAddress: "Somewhere",
		CustomerPhone:   "555-0000",
		CommunityID:     env.community.ID,
		DeliveryTime:    "today",
		Items:           []store.NewOrderItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// The pending order shows up in the staff queue.
	w := env.do(http.MethodGet, "/api/v1/delivery/orders", "delivery", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &queue))
	require.Len(t, queue, 1)

	for _, step := range []string{"accept", "start", "complete"} {
		w = env.do(http.MethodPut, fmt.Sprintf("/api/v1/delivery/orders/%s/%s", order.ID, step), "delivery", nil)
		require.Equal(t, http.StatusOK, w.Code, "step %s", step)
	}

	got, err := env.store.Order(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "Dana Courier", got.DeliveryPersonName)

	// Repeating a step is rejected by the state machine.
	w = env.do(http.MethodPut, fmt.Sprintf("/api/v1/delivery/orders/%s/accept", order.ID), "delivery", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeliveryCommunityScoping(t *testing.T) {
	env := setupEnv(t)
	other, err := env.store.AddCommunity(models.Community{Name: "Green Garden", Address: "88 Garden Road"})
	require.NoError(t, err)
	p := env.addProduct(t, "Fresh Apples", 8.5, 10)

	order, err := env.store.CreateOrder(store.NewOrder{
		CustomerID:      "cust-external",
		CustomerName:    "Walk-in",
		CustomerAddress: "Somewhere",
		CustomerPhone:   "555-0000",
		CommunityID:     other.ID,
		DeliveryTime:    "today",
		Items:           []store.NewOrderItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := env.do(http.MethodPut, fmt.Sprintf("/api/v1/delivery/orders/%s/accept", order.ID), "delivery", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomerCancelOwnOrderOnly(t *testing.T) {
	env := setupEnv(t)
	p := env.addProduct(t, "Fresh Apples", 8.5, 10)

	foreign, err := env.store.CreateOrder(store.NewOrder{
		CustomerID:      "someone-else",
		CustomerName:    "Other",
		CustomerAddress: "Elsewhere",
		CustomerPhone:   "555-9999",
		CommunityID:     env.community.ID,
		DeliveryTime:    "today",
		Items:           []store.NewOrderItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	w := env.do(http.MethodPut, fmt.Sprintf("/api/v1/shop/orders/%s/cancel", foreign.ID), "customer", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBatchAdjustStockEndpoint(t *testing.T) {
	env := setupEnv(t)
	p := env.addProduct(t, "Fresh Apples", 8.5, 10)

	w := env.do(http.MethodPost, "/api/v1/admin/products/stock/batch", "admin", gin.H{
		"adjustments": []gin.H{
			{"product_id": p.ID, "new_stock": 5, "reason": "stocktake"},
			{"product_id": "missing-id", "new_stock": 1},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res store.BatchResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, []string{p.ID}, res.Succeeded)
	assert.Equal(t, []string{"missing-id"}, res.Failed)
}

func TestBatchOrderStatusRejectsUnknownStatus(t *testing.T) {
	env := setupEnv(t)

	w := env.do(http.MethodPut, "/api/v1/admin/orders/status/batch", "admin", gin.H{
		"order_ids": []string{"whatever"},
		"status":    "shipped",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardStats(t *testing.T) {
	env := setupEnv(t)
	env.addProduct(t, "Fresh Apples", 8.5, 10)
	env.addProduct(t, "Empty", 1.0, 0)

	w := env.do(http.MethodGet, "/api/v1/admin/dashboard", "admin", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Products store.ProductStatistics `json:"products"`
		Orders   store.OrderStatistics   `json:"orders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Products.Total)
	assert.Equal(t, 1, resp.Products.OutOfStock)
	assert.Equal(t, 0, resp.Orders.Total)
}
