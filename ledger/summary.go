package ledger

import (
	"time"

	"go-storefront/models"
)

// RecentLimit caps the orders listed on the dashboard overview.
const RecentLimit = 5

// Overview backs the dashboard landing page.
type Overview struct {
	TotalOrders    int            `json:"totalOrders"`
	ActiveOrders   int            `json:"activeOrders"`
	PurchasedItems int            `json:"purchasedItems"`
	CartItems      int            `json:"cartItems"`
	RecentOrders   []models.Order `json:"recentOrders"`
}

// Summarize counts a user's orders. Active orders are those not yet
// delivered; purchased items counts lines of delivered orders.
func Summarize(orders []models.Order, cartCount int) Overview {
	ov := Overview{
		TotalOrders:  len(orders),
		CartItems:    cartCount,
		RecentOrders: []models.Order{},
	}
	for i, o := range orders {
		if o.IsActive() {
			ov.ActiveOrders++
		} else {
			ov.PurchasedItems += len(o.Items)
		}
		if i < RecentLimit {
			ov.RecentOrders = append(ov.RecentOrders, o)
		}
	}
	return ov
}

// Purchase is an item from a delivered order.
type Purchase struct {
	models.OrderItem
	OrderID      string    `json:"orderId"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// Purchases flattens the items of delivered orders, keeping order sequence.
func Purchases(orders []models.Order) []Purchase {
	out := []Purchase{}
	for _, o := range orders {
		if o.Status != models.StatusDelivered {
			continue
		}
		for _, it := range o.Items {
			out = append(out, Purchase{OrderItem: it, OrderID: o.ID, PurchaseDate: o.CreatedAt})
		}
	}
	return out
}
