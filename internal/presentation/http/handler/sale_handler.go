package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/internal/domain/repository"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/request"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/response"
	"github.com/schedularhq/schedular-api/pkg/money"
	"github.com/schedularhq/schedular-api/pkg/pagination"
)

// SaleHandler handles sale-related HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles creating a sale directly, outside the wizard. Totals are
// recomputed server-side; client-supplied amounts never reach storage.
func (h *SaleHandler) Create(c *gin.Context) {
	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.CreateSaleInput{
		Customer: req.Customer,
		Items:    request.ToItems(req.Items),
		Delivery: req.Delivery,
		Payment: entity.PaymentSelection{
			Method:          enum.PaymentMethod(req.Payment.Method),
			DepositCents:    money.CentsFromDecimal(req.Payment.Deposit),
			DiscountPercent: req.Payment.DiscountPercent,
		},
		DeliveryFeeCents: money.CentsFromDecimal(req.DeliveryFee),
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// Get handles retrieving a single sale
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// GetByNumber handles retrieving a single sale by its order number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	orderNumber, err := strconv.Atoi(c.Param("number"))
	if err != nil || orderNumber < 1 {
		response.BadRequest(c, "Invalid order number")
		return
	}

	sale, err := h.saleService.GetSaleByNumber(c.Request.Context(), orderNumber)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// List handles listing sales with status and date filters
func (h *SaleHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.OrderStatus(statusStr)
		if status.Valid() {
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	sales, total, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Patch handles a partial sale update
func (h *SaleHandler) Patch(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	input := &service.UpdateSaleInput{
		Customer: req.Customer,
		Delivery: req.Delivery,
	}
	if req.Items != nil {
		input.Items = request.ToItems(req.Items)
	}
	if req.Payment != nil {
		input.Payment = &entity.PaymentSelection{
			Method:          enum.PaymentMethod(req.Payment.Method),
			DepositCents:    money.CentsFromDecimal(req.Payment.Deposit),
			DiscountPercent: req.Payment.DiscountPercent,
		}
	}
	if req.Status != nil {
		status := enum.OrderStatus(*req.Status)
		if !status.Valid() {
			response.BadRequest(c, "Invalid status: "+*req.Status)
			return
		}
		input.Status = &status
	}
	if req.DeliveryFee != nil {
		fee := money.CentsFromDecimal(*req.DeliveryFee)
		input.DeliveryFeeCents = &fee
	}

	sale, err := h.saleService.UpdateSale(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale updated successfully", sale)
}

// Cancel handles cancelling a sale
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.CancelSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale cancelled successfully", sale)
}
