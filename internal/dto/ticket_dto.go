package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// UpdateTicketRequest carries the raw payment inputs from the POS screen.
// Values are normalized by the service (discount clamped, method coerced,
// tendered stored verbatim), so no validator tags beyond presence of the body.
type UpdateTicketRequest struct {
	DiscountPct    string `json:"discount_pct"`
	PaymentMethod  string `json:"payment_method"`
	AmountTendered string `json:"amount_tendered"`
}

type QuickClientRequest struct {
	Name  string `json:"name"  validate:"required"`
	Phone string `json:"phone"`
}

// CheckoutRequest repeats the payment inputs so the ticket reflects exactly
// what the operator saw when pressing charge.
type CheckoutRequest struct {
	DiscountPct    string `json:"discount_pct"`
	PaymentMethod  string `json:"payment_method"`
	AmountTendered string `json:"amount_tendered"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TicketLineResponse struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"line_total"`
	Stock     *int            `json:"stock"`
}

// TicketSummaryResponse is the read-model returned after every ticket
// mutation and on every render of the register screen.
type TicketSummaryResponse struct {
	Items          []TicketLineResponse `json:"items"`
	HasItems       bool                 `json:"has_items"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountPct    decimal.Decimal      `json:"discount_pct"`
	DiscountAmount decimal.Decimal      `json:"discount_amount"`
	Total          decimal.Decimal      `json:"total"`
	PaymentMethod  string               `json:"payment_method"`
	AmountTendered decimal.Decimal      `json:"amount_tendered"`
	// AmountTenderedRaw echoes the operator's input verbatim for re-display.
	AmountTenderedRaw string          `json:"amount_tendered_raw"`
	Change            decimal.Decimal `json:"change"`
	Shortfall         decimal.Decimal `json:"shortfall"`
	CanCharge         bool            `json:"can_charge"`
	ClientDisplay     string          `json:"client_display"`
	// Warning carries non-fatal messages, e.g. quantity capped at stock.
	Warning string `json:"warning,omitempty"`
}
