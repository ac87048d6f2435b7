package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegister is one register shift. At most one row system-wide may have
// IsClosed = false (enforced by a partial unique index, see infra.NewDatabase).
// Closing is one-way: a closed register is never reopened or re-closed.
type CashRegister struct {
	ID uint `gorm:"primaryKey"`

	OpenedByID uint  `gorm:"not null"`
	OpenedBy   *User `gorm:"foreignKey:OpenedByID"`
	ClosedByID *uint
	ClosedBy   *User `gorm:"foreignKey:ClosedByID"`

	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	// Computed on close from PAID sales in [OpenedAt, ClosedAt]
	CashTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CardTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TransferTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalSales    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	ClosingAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`
	// Difference = ClosingAmount - CashTotal; zero means the drawer balanced.
	Difference decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	OpenedAt time.Time
	ClosedAt *time.Time

	IsClosed bool `gorm:"not null;default:false"`
}
