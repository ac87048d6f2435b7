package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies products (rings, chains, earrings...).
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Material describes the metal a piece is made of.
type Material struct {
	ID     uint   `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Purity string `gorm:"type:varchar(20)"`
}

// Product is a catalog item. Stock is nullable: nil means the product does
// not track inventory (made-to-order and repair services) and every stock
// check is skipped for it.
type Product struct {
	ID            uint   `gorm:"primaryKey"`
	Code          string `gorm:"uniqueIndex;not null"`
	Name          string `gorm:"index;not null"`
	CategoryID    *uint
	MaterialID    *uint
	PurchasePrice decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	SalePrice     decimal.Decimal  `gorm:"type:decimal(10,2);not null"`
	Weight        *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Stock         *int
	IsActive      bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Material *Material `gorm:"foreignKey:MaterialID"`
}
