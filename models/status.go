package models

import (
	"fmt"
	"strings"
)

// OrderStatus is the delivery stage of an order. The set is closed: every
// value an order can hold appears in statusTable.
type OrderStatus string

const (
	StatusPlaced         OrderStatus = "Placed"
	StatusPacked         OrderStatus = "Packed"
	StatusShipped        OrderStatus = "Shipped"
	StatusOutForDelivery OrderStatus = "OutForDelivery"
	StatusDelivered      OrderStatus = "Delivered"
)

// StatusInfo carries the presentation data for one status.
type StatusInfo struct {
	Status      OrderStatus `json:"status"`
	Label       string      `json:"label"`
	Icon        string      `json:"icon"`
	Description string      `json:"description"`
}

// statusTable is ordered by progression; the index is the status rank.
var statusTable = [...]StatusInfo{
	{Status: StatusPlaced, Label: "Order Placed", Icon: "check", Description: "Order confirmed and payment received"},
	{Status: StatusPacked, Label: "Packed", Icon: "package", Description: "Items packed and ready for shipment"},
	{Status: StatusShipped, Label: "Shipped", Icon: "truck", Description: "Package handed to courier"},
	{Status: StatusOutForDelivery, Label: "Out for Delivery", Icon: "map-pin", Description: "Package out for delivery"},
	{Status: StatusDelivered, Label: "Delivered", Icon: "home", Description: "Package delivered"},
}

// Statuses returns every status in delivery order.
func Statuses() []StatusInfo {
	out := make([]StatusInfo, len(statusTable))
	copy(out, statusTable[:])
	return out
}

// ParseOrderStatus resolves a status name, ignoring case.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, info := range statusTable {
		if strings.EqualFold(string(info.Status), strings.TrimSpace(value)) {
			return info.Status, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", value)
}

// Rank is the position of s in the delivery progression, or -1 if s is not a
// known status.
func (s OrderStatus) Rank() int {
	for i, info := range statusTable {
		if info.Status == s {
			return i
		}
	}
	return -1
}

func (s OrderStatus) Valid() bool {
	return s.Rank() >= 0
}

// Info returns the table entry for s. Unknown statuses yield a zero value.
func (s OrderStatus) Info() StatusInfo {
	if r := s.Rank(); r >= 0 {
		return statusTable[r]
	}
	return StatusInfo{}
}

// Label is the human readable name, e.g. "Out for Delivery".
func (s OrderStatus) Label() string {
	return s.Info().Label
}

// Before reports whether s comes strictly earlier in the progression than other.
func (s OrderStatus) Before(other OrderStatus) bool {
	return s.Valid() && other.Valid() && s.Rank() < other.Rank()
}

func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered
}

func (s OrderStatus) String() string {
	return string(s)
}
