package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schedularhq/schedular-api/internal/application/service"
	"github.com/schedularhq/schedular-api/internal/domain/entity"
	"github.com/schedularhq/schedular-api/internal/domain/enum"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/request"
	"github.com/schedularhq/schedular-api/internal/presentation/http/dto/response"
	"github.com/schedularhq/schedular-api/pkg/money"
)

// WizardHandler exposes the create-sale wizard over HTTP. Every endpoint is
// scoped to the terminal named by the X-Terminal-ID header and returns the
// full wizard state snapshot, so the client never has to diff.
type WizardHandler struct {
	wizardService *service.WizardService
}

// NewWizardHandler creates a new wizard handler
func NewWizardHandler(wizardService *service.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

// StartSession opens (or resumes) the wizard session for the terminal
func (h *WizardHandler) StartSession(c *gin.Context) {
	state, err := h.wizardService.StartSession(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Session started", state)
}

// State returns the current wizard snapshot
func (h *WizardHandler) State(c *gin.Context) {
	state, err := h.wizardService.State(GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Wizard state", state)
}

// UpdateCustomer replaces the draft's customer details
func (h *WizardHandler) UpdateCustomer(c *gin.Context) {
	var customer entity.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.UpdateCustomer(c.Request.Context(), GetTerminalID(c), customer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Customer updated", state)
}

// UpdateDelivery replaces the draft's delivery details
func (h *WizardHandler) UpdateDelivery(c *gin.Context) {
	var delivery entity.DeliveryDetails
	if err := c.ShouldBindJSON(&delivery); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.UpdateDelivery(c.Request.Context(), GetTerminalID(c), delivery)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Delivery updated", state)
}

// UpdatePayment replaces the draft's payment selection
func (h *WizardHandler) UpdatePayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	payment := entity.PaymentSelection{
		Method:          enum.PaymentMethod(req.Method),
		DepositCents:    money.CentsFromDecimal(req.Deposit),
		DiscountPercent: req.DiscountPercent,
	}
	state, err := h.wizardService.UpdatePayment(c.Request.Context(), GetTerminalID(c), payment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment updated", state)
}

// SetDiscount sets the order-level discount percent
func (h *WizardHandler) SetDiscount(c *gin.Context) {
	var req request.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.SetDiscount(c.Request.Context(), GetTerminalID(c), req.Percent)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Discount updated", state)
}

// SetDeposit sets the deposit amount
func (h *WizardHandler) SetDeposit(c *gin.Context) {
	var req request.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.SetDeposit(c.Request.Context(), GetTerminalID(c), money.CentsFromDecimal(req.Amount))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Deposit updated", state)
}

// AddLine puts a catalog product in the cart
func (h *WizardHandler) AddLine(c *gin.Context) {
	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.AddLine(c.Request.Context(), GetTerminalID(c), req.SKU, req.Qty, req.Color)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line added", state)
}

// UpdateLine changes a cart line's quantity or overrides its price
func (h *WizardHandler) UpdateLine(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	terminalID := GetTerminalID(c)
	var state *service.WizardState
	if req.Qty != nil {
		state, err = h.wizardService.UpdateLineQty(c.Request.Context(), terminalID, lineID, *req.Qty)
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.Price != nil {
		state, err = h.wizardService.SetLinePrice(c.Request.Context(), terminalID, lineID, money.CentsFromDecimal(*req.Price))
		if err != nil {
			response.Error(c, err)
			return
		}
	}
	if state == nil {
		response.BadRequest(c, "Nothing to update: provide qty or price")
		return
	}
	response.OK(c, "Line updated", state)
}

// RemoveLine takes a line out of the cart
func (h *WizardHandler) RemoveLine(c *gin.Context) {
	lineID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	state, err := h.wizardService.RemoveLine(c.Request.Context(), GetTerminalID(c), lineID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", state)
}

// Next advances to the following step when the active step validates.
// A blocked advance is not an error: the snapshot carries the field hints.
func (h *WizardHandler) Next(c *gin.Context) {
	state, err := h.wizardService.Next(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if state.Validation != nil && !state.Validation.Valid {
		response.Success(c, 422, "Step incomplete", state)
		return
	}
	response.OK(c, "Step advanced", state)
}

// Prev steps back
func (h *WizardHandler) Prev(c *gin.Context) {
	state, err := h.wizardService.Prev(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Step changed", state)
}

// GoTo jumps to an accessible step; inaccessible targets are ignored
func (h *WizardHandler) GoTo(c *gin.Context) {
	var req request.GoToRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	state, err := h.wizardService.GoTo(c.Request.Context(), GetTerminalID(c), req.Step)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Step changed", state)
}

// Complete revalidates every step and submits the order
func (h *WizardHandler) Complete(c *gin.Context) {
	state, err := h.wizardService.Complete(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order submitted", state)
}

// Restart abandons the draft and starts over
func (h *WizardHandler) Restart(c *gin.Context) {
	state, err := h.wizardService.Restart(c.Request.Context(), GetTerminalID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Wizard restarted", state)
}

// EndSession closes the terminal's session. A clean end keeps the draft;
// an unclean end (page unload) marks it for clearing on the next start.
// Unload beacons carry no body, so an empty request means unclean.
func (h *WizardHandler) EndSession(c *gin.Context) {
	var req request.EndSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request body: "+err.Error())
			return
		}
	}

	if err := h.wizardService.EndSession(c.Request.Context(), GetTerminalID(c), req.Clean); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
