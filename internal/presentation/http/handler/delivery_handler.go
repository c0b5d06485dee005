package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/response"
	"github.com/schedularhq/schedular-api/pkg/money"
)

// DeliveryHandler answers delivery fee quotes and the bookable date window
type DeliveryHandler struct {
	deliveryService *service.DeliveryService
}

// NewDeliveryHandler creates a new delivery handler
func NewDeliveryHandler(deliveryService *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

type quoteItem struct {
	SKU string `json:"sku" binding:"required"`
	Qty int    `json:"qty" binding:"required,min=1"`
}

type quoteRequest struct {
	Postcode string      `json:"postcode" binding:"required"`
	Items    []quoteItem `json:"items" binding:"required,min=1,dive"`
}

// Quote returns the delivery fee for a postcode and cart
func (h *DeliveryHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]entity.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, entity.LineItem{SKU: item.SKU, Qty: item.Qty})
	}

	fee := h.deliveryService.CalculateFee(c.Request.Context(), req.Postcode, lines)
	response.OK(c, "Delivery fee quoted", gin.H{
		"postcode": req.Postcode,
		"fee":      money.DecimalFromCents(fee),
	})
}

// DateWindow returns the earliest and latest bookable delivery dates
func (h *DeliveryHandler) DateWindow(c *gin.Context) {
	earliest, latest := h.deliveryService.DateWindow()
	response.OK(c, "Delivery date window", gin.H{
		"earliest": earliest.Format("2006-01-02"),
		"latest":   latest.Format("2006-01-02"),
	})
}
