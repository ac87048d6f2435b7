package model

import (
	"strings"
	"time"
)

// Client is a registered customer. Sales may instead carry an unregistered
// "quick client" snapshot, so everything here is optional except the name.
type Client struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"index;not null"`
	LastName       string `gorm:"index"`
	SecondLastName string
	Phone          string `gorm:"type:varchar(30);index"`
	Email          *string
	Address        *string
	IsWholesale    bool `gorm:"not null;default:false"`
	IsActive       bool `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName joins the non-empty name parts.
func (c *Client) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Name, c.LastName, c.SecondLastName} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
