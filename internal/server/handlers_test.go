package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joyeria-system/internal/database/models"
	"joyeria-system/internal/seed"
	"joyeria-system/internal/server"
	"joyeria-system/internal/services/dashboard"
	"joyeria-system/internal/services/products"
	"joyeria-system/internal/store"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}

// newApp builds a router over a freshly seeded memory store.
func newApp(t *testing.T, opts server.Options) (*gin.Engine, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, seed.Run(context.Background(), mem, log))

	router := server.NewRouter(
		products.NewService(mem),
		dashboard.NewService(mem),
		log,
		opts,
	)
	return router, mem
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var envelope map[string]any
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	}
	return rr, envelope
}

func TestListProducts(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, envelope["success"])
	assert.EqualValues(t, 5, envelope["count"])

	data := envelope["data"].([]any)
	require.Len(t, data, 5)
	first := data[0].(map[string]any)
	assert.NotNil(t, first["category"], "relations must be resolved")
	assert.NotNil(t, first["material"], "relations must be resolved")
}

func TestCreateProduct(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	payload := map[string]any{
		"name":        "Gold Band",
		"description": "Plain 18K band",
		"price":       500000,
		"stock":       4,
		"category":    1,
		"material":    1,
		"weight":      2.1,
	}
	rr, envelope := doJSON(t, router, http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Product created successfully", envelope["message"])

	data := envelope["data"].(map[string]any)
	assert.Equal(t, "Gold Band", data["name"])
	assert.Equal(t, true, data["isAvailable"])
	category := data["category"].(map[string]any)
	assert.Equal(t, "Rings", category["name"])
}

func TestCreateProductMissingField(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	payload := map[string]any{
		"name":     "Incomplete",
		"price":    100,
		"category": 1,
		"material": 1,
		"weight":   1.0,
	}
	rr, envelope := doJSON(t, router, http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["message"], "description")
}

func TestCreateProductUnknownReference(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	payload := map[string]any{
		"name":        "Orphan",
		"description": "refs missing category",
		"price":       100,
		"category":    999,
		"material":    1,
		"weight":      1.0,
	}
	rr, envelope := doJSON(t, router, http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, envelope["success"])
	assert.Contains(t, envelope["message"], "category")
}

func TestGetProduct(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := envelope["data"].(map[string]any)
	assert.EqualValues(t, 1, data["id"])

	rr, envelope = doJSON(t, router, http.MethodGet, "/api/products/999", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, false, envelope["success"])

	// A malformed id behaves like a missing one.
	rr, _ = doJSON(t, router, http.MethodGet, "/api/products/not-an-id", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestUpdateProduct(t *testing.T) {
	router, mem := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodPut, "/api/products/1", map[string]any{"stock": 20})
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Product updated successfully", envelope["message"])
	data := envelope["data"].(map[string]any)
	assert.EqualValues(t, 20, data["stock"])

	product, err := mem.ProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, product.Stock)
}

func TestUpdateProductNegativeStock(t *testing.T) {
	router, mem := newApp(t, server.Options{})

	before, err := mem.ProductByID(context.Background(), 1)
	require.NoError(t, err)

	rr, envelope := doJSON(t, router, http.MethodPut, "/api/products/1", map[string]any{"stock": -5})
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, false, envelope["success"])

	after, err := mem.ProductByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, before.Stock, after.Stock)
}

func TestUpdateProductNotFound(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, _ := doJSON(t, router, http.MethodPut, "/api/products/999", map[string]any{"stock": 1})
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeleteProduct(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodDelete, "/api/products/1", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Product deleted successfully", envelope["message"])
	data := envelope["data"].(map[string]any)
	assert.EqualValues(t, 1, data["id"])

	rr, _ = doJSON(t, router, http.MethodGet, "/api/products/1", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSON(t, router, http.MethodDelete, "/api/products/1", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProductsByCategory(t *testing.T) {
	router, mem := newApp(t, server.Options{})
	ctx := context.Background()

	extra := []*models.Category{{Name: "Clearance"}}
	require.NoError(t, mem.CreateCategories(ctx, extra))

	for _, price := range []int64{100, 300, 200} {
		require.NoError(t, mem.CreateProduct(ctx, &models.Product{
			Name:        "sale item",
			Description: "d",
			Price:       decimal.NewFromInt(price),
			CategoryID:  extra[0].ID,
			MaterialID:  1,
			Weight:      1,
			IsAvailable: true,
		}))
	}

	rr, envelope := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/products/category/%d", extra[0].ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Clearance", envelope["category"])
	assert.EqualValues(t, 3, envelope["count"])

	data := envelope["data"].([]any)
	var prices []float64
	for _, item := range data {
		prices = append(prices, item.(map[string]any)["price"].(float64))
	}
	assert.Equal(t, []float64{300, 200, 100}, prices)
}

func TestProductsByCategoryUnknown(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodGet, "/api/products/category/999", nil)
	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, false, envelope["success"])
}

func TestDashboard(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodGet, "/api/dashboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	data := envelope["data"].(map[string]any)
	assert.EqualValues(t, 5, data["totalProducts"])
	assert.EqualValues(t, 5, data["totalCategories"])
	assert.EqualValues(t, 5, data["totalMaterials"])

	// Seeded stocks are 5, 8, 3, 12, 2 -> the 3 and 2 products qualify.
	lowStock := data["lowStock"].([]any)
	require.Len(t, lowStock, 2)
	for _, item := range lowStock {
		stock := item.(map[string]any)["stock"].(float64)
		assert.Less(t, stock, float64(5))
	}
}

func TestPing(t *testing.T) {
	router, _ := newApp(t, server.Options{})

	rr, envelope := doJSON(t, router, http.MethodGet, "/ping", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "pong", envelope["message"])
}

func TestUnmatchedRouteServesHTMLNotFound(t *testing.T) {
	webDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(webDir, "views"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(webDir, "views", "404.html"),
		[]byte("<html><body>404</body></html>"), 0o644))

	router, _ := newApp(t, server.Options{WebDir: webDir})

	req := httptest.NewRequest(http.MethodGet, "/no/such/page", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "404")
}
