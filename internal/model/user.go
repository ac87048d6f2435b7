package model

import "time"

// Operator roles. Admin may additionally cancel sales and see every
// operator's figures in the cash register status.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User is a POS operator.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
