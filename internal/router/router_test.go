package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"storefront.dev/shop/internal/memstore"
	"storefront.dev/shop/internal/services"
	"storefront.dev/shop/pkg/auth"
	"storefront.dev/shop/pkg/cart"
	"storefront.dev/shop/pkg/global"
	"storefront.dev/shop/pkg/models"
)

type testServer struct {
	engine   *gin.Engine
	handler  *Handler
	users    *memstore.Users
	products *memstore.Products
	tokens   *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := memstore.NewProducts(models.Product{
		ID:           bson.NewObjectID(),
		Name:         "Airpods Wireless Bluetooth Headphones",
		Category:     "Electronics",
		Price:        89.99,
		CountInStock: 10,
		Reviews:      []models.Review{},
	})
	users := memstore.NewUsers()
	orders := memstore.NewOrders(products, users)
	tokens := auth.NewTokenIssuer("test-secret")

	cache := memstore.NewCache()
	catalog := services.NewCatalogService(products, cache)
	orderSvc := services.NewOrderService(orders, products, users, cache)
	h := &Handler{
		Catalog:     catalog,
		Orders:      orderSvc,
		Users:       services.NewUserService(users, tokens),
		Admin:       services.NewAdminService(&memstore.Analytics{}),
		Payments:    services.NewPaymentService(nil, orderSvc),
		Carts:       services.NewCartService(cart.NewMemoryStore(), catalog, orderSvc),
		Providers:   map[string]auth.Provider{},
		FrontendURL: "http://localhost:5173",
		Checks: map[string]func(ctx context.Context) error{
			"database": func(context.Context) error { return nil },
		},
	}

	InitEngine(&global.Config{Env: "test", AllowOrigins: []string{"http://localhost:5173"}})
	gin.SetMode(gin.TestMode)
	InitializeRoutes(h)

	return &testServer{engine: Router, handler: h, users: users, products: products, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, global.APIResponse) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var resp global.APIResponse
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func (s *testServer) login(t *testing.T, name string, admin bool) string {
	t.Helper()
	user := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", IsAdmin: admin}
	require.NoError(t, s.users.Create(context.Background(), user))
	token, err := s.tokens.Generate(user.ID)
	require.NoError(t, err)
	return token
}

func dataMap(t *testing.T, resp global.APIResponse) map[string]interface{} {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "expected object data, got %T", resp.Data)
	return data
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "Connected", dataMap(t, resp)["database"])

	s.handler.Checks["cache"] = func(context.Context) error { return errors.New("connection refused") }
	rec, resp = s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Disconnected", dataMap(t, resp)["cache"])
}

func TestRegisterLoginProfile(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Jane Doe", "email": "Jane@Example.com", "password": "123456",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "jane@example.com", dataMap(t, resp)["email"])

	rec, resp = s.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Jane Again", "email": "jane@example.com", "password": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", resp.Message)

	rec, resp = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "jane@example.com", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", resp.Message)

	rec, resp = s.do(t, http.MethodPost, "/api/users/login", "", map[string]string{
		"email": "jane@example.com", "password": "123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := dataMap(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	rec, resp = s.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := dataMap(t, resp)
	assert.Equal(t, "jane@example.com", profile["email"])
	assert.NotContains(t, profile, "password")
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name": "Jane Doe", "email": "not-an-email", "password": "123",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, resp.Errors)

	fields := map[string]bool{}
	for _, e := range resp.Errors {
		fields[e.Field] = true
	}
	assert.True(t, fields["email"])
	assert.True(t, fields["password"])
}

func TestProtectAndAdmin(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/orders/myorders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Not authorized, no token", resp.Message)

	rec, _ = s.do(t, http.MethodGet, "/api/orders/myorders", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	customer := s.login(t, "John", false)
	rec, resp = s.do(t, http.MethodGet, "/api/orders", customer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Not authorized as an admin", resp.Message)

	rec, _ = s.do(t, http.MethodGet, "/api/admin/summary", customer, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreatePlaceholderProduct(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "Admin", true)

	rec, resp := s.do(t, http.MethodPost, "/api/products", admin, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	product := dataMap(t, resp)
	assert.Equal(t, "Sample name", product["name"])
	assert.EqualValues(t, 0, product["price"])
	assert.EqualValues(t, 0, product["countInStock"])
	assert.EqualValues(t, 0, product["numReviews"])
}

func TestProductNotFound(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/products/not-an-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", resp.Message)

	rec, _ = s.do(t, http.MethodGet, "/api/products/"+bson.NewObjectID().Hex(), "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/products?keyword=AIRPODS&pageNumber=abc", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := dataMap(t, resp)
	assert.EqualValues(t, 1, page["page"])
	assert.EqualValues(t, 1, page["pages"])
	assert.Len(t, page["products"], 1)
}

func TestCreateOrderWithoutItems(t *testing.T) {
	s := newTestServer(t)
	customer := s.login(t, "John", false)

	rec, resp := s.do(t, http.MethodPost, "/api/orders", customer, map[string]interface{}{
		"orderItems": []interface{}{},
		"shippingAddress": map[string]string{
			"address": "1 Main St", "city": "Springfield", "postalCode": "12345", "country": "US",
		},
		"paymentMethod": "Midtrans",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No order items", resp.Message)
}

func TestPayMissingOrder(t *testing.T) {
	s := newTestServer(t)
	customer := s.login(t, "John", false)

	rec, resp := s.do(t, http.MethodPut, "/api/orders/"+bson.NewObjectID().Hex()+"/pay", customer, map[string]interface{}{
		"id": "PAY-1", "status": "COMPLETED",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Order not found", resp.Message)
}

func TestCartCheckoutFlow(t *testing.T) {
	s := newTestServer(t)
	customer := s.login(t, "John", false)

	page, err := s.handler.Catalog.List(context.Background(), "", "", 1)
	require.NoError(t, err)
	productID := page.Products[0].ID.Hex()

	rec, resp := s.do(t, http.MethodPost, "/api/cart/session-1/items", "", map[string]interface{}{
		"product": productID, "qty": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 179.98, dataMap(t, resp)["itemsPrice"])

	rec, _ = s.do(t, http.MethodPut, "/api/cart/session-1/shipping", "", map[string]string{
		"address": "1 Main St", "city": "Springfield", "postalCode": "12345", "country": "US",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPut, "/api/cart/session-1/payment-method", "", map[string]string{
		"paymentMethod": "Midtrans",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.do(t, http.MethodPost, "/api/cart/session-1/checkout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, resp = s.do(t, http.MethodPost, "/api/cart/session-1/checkout", customer, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := dataMap(t, resp)
	assert.Equal(t, false, order["isPaid"])
	assert.EqualValues(t, 206.98, order["totalPrice"])

	rec, resp = s.do(t, http.MethodGet, "/api/cart/session-1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, dataMap(t, resp)["cartItems"])
}

func TestPaymentGatewayNotConfigured(t *testing.T) {
	s := newTestServer(t)
	customer := s.login(t, "John", false)

	rec, resp := s.do(t, http.MethodPost, "/api/payment/create-order", customer, map[string]interface{}{
		"amount": 10,
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Payment gateway is not configured", resp.Message)
}

func TestOAuthProviderNotConfigured(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/auth/google", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Google authentication is not configured", resp.Message)

	rec, _ = s.do(t, http.MethodGet, "/api/auth/github/callback?code=abc&state=xyz", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "http://localhost:5173/login?error="))
}

func TestDeleteProduct(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "Admin", true)

	page, err := s.handler.Catalog.List(context.Background(), "", "", 1)
	require.NoError(t, err)
	path := "/api/products/" + page.Products[0].ID.Hex()

	rec, resp := s.do(t, http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product removed", resp.Message)

	rec, _ = s.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCancelOrderRefreshesProductStock(t *testing.T) {
	s := newTestServer(t)
	customer := s.login(t, "John", false)

	page, err := s.handler.Catalog.List(context.Background(), "", "", 1)
	require.NoError(t, err)
	productPath := "/api/products/" + page.Products[0].ID.Hex()

	rec, resp := s.do(t, http.MethodGet, productPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 10, dataMap(t, resp)["countInStock"])

	rec, resp = s.do(t, http.MethodPost, "/api/orders", customer, map[string]interface{}{
		"orderItems": []map[string]interface{}{{"product": page.Products[0].ID.Hex(), "qty": 2}},
		"shippingAddress": map[string]string{
			"address": "1 Main St", "city": "Springfield", "postalCode": "12345", "country": "US",
		},
		"paymentMethod": "Midtrans",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	orderID, _ := dataMap(t, resp)["_id"].(string)
	require.NotEmpty(t, orderID)

	rec, _ = s.do(t, http.MethodPut, "/api/orders/"+orderID+"/cancel", customer, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = s.do(t, http.MethodGet, productPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 12, dataMap(t, resp)["countInStock"])
}

func TestInitEngineWithoutOrigins(t *testing.T) {
	assert.NotPanics(t, func() {
		InitEngine(&global.Config{Env: "test"})
	})
}

func TestListProductsHugePageNumber(t *testing.T) {
	s := newTestServer(t)

	rec, resp := s.do(t, http.MethodGet, "/api/products?pageNumber=4611686018427387904", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	page := dataMap(t, resp)
	assert.Empty(t, page["products"])
	assert.EqualValues(t, 1, page["pages"])
}
