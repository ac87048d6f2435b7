package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// SaleFilter is bound from the query string of GET /v1/sales.
type SaleFilter struct {
	Period string `form:"period,default=today"` // today | yesterday | week | month | all
	Seller string `form:"seller"`               // operator username substring
	Status string `form:"status,default=all"`   // PAID | CANCELLED | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=500"`
}

type SaleListItem struct {
	ID            uint            `json:"id"`
	Folio         string          `json:"folio"`
	Status        string          `json:"status"`
	Seller        string          `json:"seller"`
	ClientDisplay string          `json:"client_display"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod string          `json:"payment_method"`
	CreatedAt     string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleListItem `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ─── Detail ─────────────────────────────────────────────────────────────────

type SaleItemResponse struct {
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Qty         int             `json:"qty"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID             uint               `json:"id"`
	Folio          string             `json:"folio"`
	Status         string             `json:"status"`
	Seller         string             `json:"seller"`
	ClientDisplay  string             `json:"client_display"`
	ClientPhone    string             `json:"client_phone"`
	Items          []SaleItemResponse `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountPct    decimal.Decimal    `json:"discount_pct"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	AmountPaid     decimal.Decimal    `json:"amount_paid"`
	ChangeAmount   decimal.Decimal    `json:"change_amount"`
	CreatedAt      string             `json:"created_at"`
}

// EmailReceiptRequest optionally overrides the recipient; default is the
// registered client's email.
type EmailReceiptRequest struct {
	To string `json:"to" validate:"omitempty,email"`
}
