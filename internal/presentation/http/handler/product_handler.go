package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/response"
)

// ProductHandler handles catalog-related HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing catalog products, optionally filtered by a search term
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// Get handles retrieving a single product by SKU
func (h *ProductHandler) Get(c *gin.Context) {
	product := h.productService.GetProduct(c.Request.Context(), c.Param("sku"))
	if product == nil {
		response.ErrorWithCode(c, 404, "Product not found")
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Availability reports whether the requested quantity of a SKU can be sold
func (h *ProductHandler) Availability(c *gin.Context) {
	qty, err := strconv.Atoi(c.DefaultQuery("qty", "1"))
	if err != nil || qty < 1 {
		response.BadRequest(c, "Invalid quantity")
		return
	}

	sku := c.Param("sku")
	available := h.productService.CheckAvailability(c.Request.Context(), sku, qty)
	response.OK(c, "Availability checked", gin.H{
		"sku":       sku,
		"qty":       qty,
		"available": available,
	})
}
