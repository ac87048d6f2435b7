package dto

import "github.com/shopspring/decimal"

// ProductSearchResult is one hit of the POS product search. Stock is nil for
// products that track no inventory.
type ProductSearchResult struct {
	ID    uint            `json:"id"`
	Code  string          `json:"code"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Stock *int            `json:"stock"`
}

// ClientSearchResult is one hit of the POS client search.
type ClientSearchResult struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}
