package models

import (
	"github.com/shopspring/decimal"
)

// CartItem represents an item in the cart
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// ProductID is the id of the product on this line
func (i CartItem) ProductID() int {
	return i.Product.ID
}

// Subtotal is price times quantity for the line
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Quote is the price breakdown shown before an order is placed
type Quote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// CartView is the session cart as returned to clients
type CartView struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Quote
}
