package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a product snapshot frozen into an order at creation time
type OrderItem struct {
	ProductID    int             `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}

// Subtotal is price times quantity for the item
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// TrackingEvent is one entry of an order's delivery history
type TrackingEvent struct {
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
	Description string      `json:"description"`
}

// Order represents a placed order. Status always equals the status of the
// last TrackingHistory entry.
type Order struct {
	ID                string          `json:"id"`
	UserID            *int            `json:"userId,omitempty"`
	IsGuest           bool            `json:"isGuest"`
	Items             []OrderItem     `json:"items"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	Status            OrderStatus     `json:"status"`
	CreatedAt         time.Time       `json:"createdAt"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	TrackingHistory   []TrackingEvent `json:"trackingHistory"`
}

// BelongsTo reports whether the order is owned by the given user
func (o Order) BelongsTo(userID int) bool {
	return o.UserID != nil && *o.UserID == userID
}

// IsActive is true until the order has been delivered
func (o Order) IsActive() bool {
	return o.Status != StatusDelivered
}

// LastEvent returns the most recent history entry
func (o Order) LastEvent() (TrackingEvent, bool) {
	if len(o.TrackingHistory) == 0 {
		return TrackingEvent{}, false
	}
	return o.TrackingHistory[len(o.TrackingHistory)-1], true
}

// EventFor returns the first history entry recorded for status
func (o Order) EventFor(status OrderStatus) (TrackingEvent, bool) {
	for _, ev := range o.TrackingHistory {
		if ev.Status == status {
			return ev, true
		}
	}
	return TrackingEvent{}, false
}

// Clone returns a deep copy of the order
func (o Order) Clone() Order {
	if o.UserID != nil {
		id := *o.UserID
		o.UserID = &id
	}
	o.Items = append([]OrderItem(nil), o.Items...)
	o.TrackingHistory = append([]TrackingEvent(nil), o.TrackingHistory...)
	return o
}

// TrackingStep is one stage of the order tracker with its progress state
type TrackingStep struct {
	StatusInfo
	State string         `json:"state"` // "completed", "current" or "upcoming"
	Event *TrackingEvent `json:"event,omitempty"`
}

// Progress lays the order out over every known status
func (o Order) Progress() []TrackingStep {
	current := o.Status.Rank()
	steps := make([]TrackingStep, 0, len(statusTable))
	for i, info := range statusTable {
		step := TrackingStep{StatusInfo: info, State: "upcoming"}
		switch {
		case i < current:
			step.State = "completed"
		case i == current:
			step.State = "current"
		}
		if ev, ok := o.EventFor(info.Status); ok {
			step.Event = &ev
		}
		steps = append(steps, step)
	}
	return steps
}
