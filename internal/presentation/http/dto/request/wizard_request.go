package request

import "github.com/shopspring/decimal"

// AddLineRequest puts a catalog product in the cart.
type AddLineRequest struct {
	SKU   string `json:"sku" binding:"required"`
	Qty   int    `json:"qty" binding:"min=0"`
	Color string `json:"color"`
}

// UpdateLineRequest changes a cart line's quantity or price. Nil fields
// are left untouched; price is decimal dollars.
type UpdateLineRequest struct {
	Qty   *int             `json:"qty"`
	Price *decimal.Decimal `json:"price"`
}

// DiscountRequest sets the discount percent.
type DiscountRequest struct {
	Percent float64 `json:"percent" binding:"min=0"`
}

// DepositRequest sets the deposit; decimal dollars on the wire.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoToRequest names a jump target step.
type GoToRequest struct {
	Step string `json:"step" binding:"required"`
}

// EndSessionRequest reports how the terminal session ended. Clean means
// in-app navigation away (the draft is kept); unclean means a page unload
// (the draft is cleared on the next start).
type EndSessionRequest struct {
	Clean bool `json:"clean"`
}
