package ledger

import (
	_ "embed"
	"fmt"
	"time"

	"go-storefront/models"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed data/orders.yaml
var seedData []byte

type seedItem struct {
	ProductID    int    `yaml:"productId"`
	ProductName  string `yaml:"productName"`
	ProductImage string `yaml:"productImage"`
	Quantity     int    `yaml:"quantity"`
	Price        string `yaml:"price"`
}

type seedEvent struct {
	Status      string `yaml:"status"`
	Timestamp   string `yaml:"timestamp"`
	Description string `yaml:"description"`
}

type seedOrder struct {
	ID                string                 `yaml:"id"`
	UserID            *int                   `yaml:"userId"`
	Status            string                 `yaml:"status"`
	TotalAmount       string                 `yaml:"totalAmount"`
	CreatedAt         string                 `yaml:"createdAt"`
	EstimatedDelivery string                 `yaml:"estimatedDelivery"`
	ShippingAddress   models.ShippingAddress `yaml:"shippingAddress"`
	Items             []seedItem             `yaml:"items"`
	TrackingHistory   []seedEvent            `yaml:"trackingHistory"`
}

// DemoOrders decodes the bundled demo orders.
func DemoOrders() ([]models.Order, error) {
	return ParseOrders(seedData)
}

// ParseOrders decodes a YAML list of orders. Invariants are checked when the
// orders are appended, not here.
func ParseOrders(data []byte) ([]models.Order, error) {
	var records []seedOrder
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode seed orders: %w", err)
	}

	orders := make([]models.Order, 0, len(records))
	for _, rec := range records {
		o, err := rec.toOrder()
		if err != nil {
			return nil, fmt.Errorf("seed order %s: %w", rec.ID, err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r seedOrder) toOrder() (models.Order, error) {
	status, err := models.ParseOrderStatus(r.Status)
	if err != nil {
		return models.Order{}, err
	}
	total, err := decimal.NewFromString(r.TotalAmount)
	if err != nil {
		return models.Order{}, fmt.Errorf("total: %w", err)
	}
	created, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return models.Order{}, fmt.Errorf("createdAt: %w", err)
	}
	eta, err := time.Parse(time.RFC3339, r.EstimatedDelivery)
	if err != nil {
		return models.Order{}, fmt.Errorf("estimatedDelivery: %w", err)
	}

	o := models.Order{
		ID:                r.ID,
		UserID:            r.UserID,
		IsGuest:           r.UserID == nil,
		TotalAmount:       total,
		Status:            status,
		CreatedAt:         created,
		EstimatedDelivery: eta,
		ShippingAddress:   r.ShippingAddress,
	}
	for _, it := range r.Items {
		price, err := decimal.NewFromString(it.Price)
		if err != nil {
			return models.Order{}, fmt.Errorf("item %d price: %w", it.ProductID, err)
		}
		o.Items = append(o.Items, models.OrderItem{
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			ProductImage: it.ProductImage,
			Quantity:     it.Quantity,
			Price:        price,
		})
	}
	for _, ev := range r.TrackingHistory {
		st, err := models.ParseOrderStatus(ev.Status)
		if err != nil {
			return models.Order{}, err
		}
		ts, err := time.Parse(time.RFC3339, ev.Timestamp)
		if err != nil {
			return models.Order{}, fmt.Errorf("timestamp: %w", err)
		}
		o.TrackingHistory = append(o.TrackingHistory, models.TrackingEvent{Status: st, Timestamp: ts, Description: ev.Description})
	}
	return o, nil
}

// Seed appends orders in the given sequence, stopping at the first invalid one.
func (l *Ledger) Seed(orders []models.Order) error {
	for _, o := range orders {
		if err := l.Append(o); err != nil {
			return err
		}
	}
	return nil
}
