package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sale status machine: OPEN → PAID → CANCELLED. Checkout creates sales
// directly in PAID; CANCELLED is terminal.
const (
	SaleStatusOpen      = "OPEN"
	SaleStatusPaid      = "PAID"
	SaleStatusCancelled = "CANCELLED"
)

const (
	PaymentCash     = "CASH"
	PaymentCard     = "CARD"
	PaymentTransfer = "TRANSFER"
)

// NormalizePaymentMethod coerces arbitrary input to a valid payment method,
// defaulting to CASH.
func NormalizePaymentMethod(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case PaymentCard:
		return PaymentCard
	case PaymentTransfer:
		return PaymentTransfer
	default:
		return PaymentCash
	}
}

// Folio builds the human sale number from a persisted id: "V" + zero-padded
// id, 6 digits minimum. Assigned once the row exists, stable thereafter.
func Folio(id uint) string {
	return fmt.Sprintf("V%06d", id)
}

// Sale is immutable after creation except for status (cancellation) and the
// folio backfill. Exactly one of ClientID / quick-client snapshot is set.
type Sale struct {
	ID     uint   `gorm:"primaryKey"`
	Folio  string `gorm:"type:varchar(32);uniqueIndex"`
	Status string `gorm:"type:varchar(12);not null;default:'OPEN'"`

	UserID *uint
	User   *User `gorm:"foreignKey:UserID"`

	ClientID         *uint
	Client           *Client `gorm:"foreignKey:ClientID"`
	QuickClientName  string  `gorm:"type:varchar(150);not null;default:''"`
	QuickClientPhone string  `gorm:"type:varchar(30);not null;default:''"`

	DiscountPct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	PaymentMethod string          `gorm:"type:varchar(12);not null;default:'CASH'"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ChangeAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
}

// ClientDisplay returns the customer name for receipts and listings,
// regardless of which client representation the sale carries.
func (s *Sale) ClientDisplay() string {
	if s.ClientID != nil && s.Client != nil {
		return s.Client.FullName()
	}
	if name := strings.TrimSpace(s.QuickClientName); name != "" {
		return name
	}
	return "Sin cliente"
}

// SaleItem snapshots the product name and unit price at sale time; later
// catalog edits never alter historical sales. LineTotal is computed at
// creation and stored, not recomputed.
type SaleItem struct {
	ID        uint `gorm:"primaryKey"`
	SaleID    uint `gorm:"index;not null"`
	ProductID uint `gorm:"index;not null"`

	ProductName string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty         int             `gorm:"not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}
