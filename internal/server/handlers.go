package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"joyeria-system/internal/errs"
	"joyeria-system/internal/services/dashboard"
	"joyeria-system/internal/services/products"
)

type ProductHandler struct {
	products *products.Service
	log      *slog.Logger
}

func NewProductHandler(svc *products.Service, log *slog.Logger) *ProductHandler {
	return &ProductHandler{products: svc, log: log}
}

func parseIDParam(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"message": message,
	})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

func (h *ProductHandler) storeError(c *gin.Context, action string, err error) {
	h.log.Error(action, "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Failed to " + action,
		"error":   err.Error(),
	})
}

type createProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    uint             `json:"category"`
	Material    uint             `json:"material"`
	Weight      *float64         `json:"weight"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.products.Create(c.Request.Context(), products.CreateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.Category,
		MaterialID:  req.Material,
		Weight:      req.Weight,
	})
	if err != nil {
		// Unresolved references answer 400 on create, unlike the 404 the
		// by-category listing gives for an unknown category.
		if errs.IsValidation(err) || errs.IsNotFound(err) {
			badRequest(c, err.Error())
			return
		}
		h.storeError(c, "create product", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Product created successfully",
		"data":    product,
	})
}

func (h *ProductHandler) List(c *gin.Context) {
	list, err := h.products.List(c.Request.Context())
	if err != nil {
		h.storeError(c, "fetch products", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(list),
		"data":    list,
	})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		notFound(c, "Product not found")
		return
	}

	product, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		if errs.IsNotFound(err) {
			notFound(c, "Product not found")
			return
		}
		h.storeError(c, "fetch product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

type updateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Category    *uint            `json:"category"`
	Material    *uint            `json:"material"`
	Weight      *float64         `json:"weight"`
	IsAvailable *bool            `json:"isAvailable"`
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		notFound(c, "Product not found")
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, products.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.Category,
		MaterialID:  req.Material,
		Weight:      req.Weight,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		if errs.IsValidation(err) {
			badRequest(c, err.Error())
			return
		}
		if errs.IsNotFound(err) {
			notFound(c, "Product not found")
			return
		}
		h.storeError(c, "update product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product updated successfully",
		"data":    product,
	})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		notFound(c, "Product not found")
		return
	}

	product, err := h.products.Delete(c.Request.Context(), id)
	if err != nil {
		if errs.IsNotFound(err) {
			notFound(c, "Product not found")
			return
		}
		h.storeError(c, "delete product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Product deleted successfully",
		"data":    product,
	})
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "categoryId")
	if !ok {
		notFound(c, "Category not found")
		return
	}

	category, list, err := h.products.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		if errs.IsNotFound(err) {
			notFound(c, "Category not found")
			return
		}
		h.storeError(c, "fetch products by category", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"category": category.Name,
		"count":    len(list),
		"data":     list,
	})
}

type DashboardHandler struct {
	dashboard *dashboard.Service
	log       *slog.Logger
}

func NewDashboardHandler(svc *dashboard.Service, log *slog.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: svc, log: log}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("fetch dashboard stats", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch dashboard data",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    stats,
	})
}
