package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenRegisterRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

// CloseRegisterRequest carries the manual drawer count. Negative amounts are
// rejected by the service (register stays open), not by the validator, so the
// rejection surfaces as a domain message.
type CloseRegisterRequest struct {
	ClosingAmount decimal.Decimal `json:"closing_amount"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type OperatorTotal struct {
	Username string          `json:"username"`
	Total    decimal.Decimal `json:"total"`
}

// RegisterStatusResponse aggregates PAID sales inside the current shift
// window by payment method and by operator.
type RegisterStatusResponse struct {
	ID            uint            `json:"id"`
	OpenedBy      string          `json:"opened_by"`
	OpenedAt      string          `json:"opened_at"`
	OpeningAmount decimal.Decimal `json:"opening_amount"`
	CashTotal     decimal.Decimal `json:"cash_total"`
	CardTotal     decimal.Decimal `json:"card_total"`
	TransferTotal decimal.Decimal `json:"transfer_total"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	ByOperator    []OperatorTotal `json:"by_operator"`
	IsClosed      bool            `json:"is_closed"`
}

type RegisterClosedResponse struct {
	ID            uint             `json:"id"`
	OpenedAt      string           `json:"opened_at"`
	ClosedAt      *string          `json:"closed_at"`
	OpenedBy      string           `json:"opened_by"`
	ClosedBy      string           `json:"closed_by"`
	OpeningAmount decimal.Decimal  `json:"opening_amount"`
	ClosingAmount *decimal.Decimal `json:"closing_amount"`
	CashTotal     decimal.Decimal  `json:"cash_total"`
	CardTotal     decimal.Decimal  `json:"card_total"`
	TransferTotal decimal.Decimal  `json:"transfer_total"`
	TotalSales    decimal.Decimal  `json:"total_sales"`
	Difference    decimal.Decimal  `json:"difference"`
}
