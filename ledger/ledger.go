// Package ledger is the append-only store of every order the storefront has
// placed or been seeded with.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go-storefront/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	// DeliveryWindow is added to the creation time for the delivery estimate.
	DeliveryWindow = 7 * 24 * time.Hour

	maxIDAttempts = 16
)

var (
	// FreeShippingThreshold is the subtotal from which shipping is free.
	FreeShippingThreshold = decimal.NewFromInt(500)
	// FlatShippingFee applies below FreeShippingThreshold.
	FlatShippingFee = decimal.NewFromInt(49)
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrDuplicateOrder    = errors.New("order id already exists")
	ErrInvalidOrder      = errors.New("invalid order")
)

// Owner tags an order as belonging to a known user or to a guest. The zero
// value is a guest.
type Owner struct {
	userID *int
}

// Guest returns the owner of orders placed without a logged-in user.
func Guest() Owner {
	return Owner{}
}

// Customer returns the owner of orders placed by userID.
func Customer(userID int) Owner {
	return Owner{userID: &userID}
}

func (o Owner) IsGuest() bool {
	return o.userID == nil
}

// UserID returns the owning user, if any.
func (o Owner) UserID() (int, bool) {
	if o.userID == nil {
		return 0, false
	}
	return *o.userID, true
}

// ShippingFee is zero at or above FreeShippingThreshold, FlatShippingFee otherwise.
func ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(FreeShippingThreshold) {
		return decimal.Zero
	}
	return FlatShippingFee
}

// QuoteFor prices a set of cart lines.
func QuoteFor(items []models.CartItem) models.Quote {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Subtotal())
	}
	shipping := ShippingFee(subtotal)
	return models.Quote{Subtotal: subtotal, Shipping: shipping, Total: subtotal.Add(shipping)}
}

// Ledger holds orders in the order they were appended. Orders are never
// removed; only their status and tracking history grow.
type Ledger struct {
	mu     sync.RWMutex
	orders []models.Order
	index  map[string]int

	now    func() time.Time
	newID  func(time.Time) string
	logger *zap.Logger
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithIDGenerator replaces NewOrderID.
func WithIDGenerator(gen func(time.Time) string) Option {
	return func(l *Ledger) { l.newID = gen }
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns an empty ledger.
func New(opts ...Option) *Ledger {
	l := &Ledger{
		index:  make(map[string]int),
		now:    time.Now,
		newID:  NewOrderID,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateOrder snapshots the given cart lines into a new Placed order and
// appends it. An empty cart leaves the ledger untouched.
func (l *Ledger) CreateOrder(items []models.CartItem, shipping models.ShippingAddress, owner Owner) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	snapshot := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return models.Order{}, fmt.Errorf("%w: product %d has quantity %d", ErrInvalidOrder, it.ProductID(), it.Quantity)
		}
		snapshot = append(snapshot, models.OrderItem{
			ProductID:    it.Product.ID,
			ProductName:  it.Product.Name,
			ProductImage: it.Product.Image,
			Quantity:     it.Quantity,
			Price:        it.Product.Price,
		})
	}

	now := l.now().UTC()
	quote := QuoteFor(items)
	order := models.Order{
		IsGuest:           owner.IsGuest(),
		Items:             snapshot,
		TotalAmount:       quote.Total,
		Status:            models.StatusPlaced,
		CreatedAt:         now,
		EstimatedDelivery: now.Add(DeliveryWindow),
		ShippingAddress:   shipping.Normalize(),
		TrackingHistory: []models.TrackingEvent{{
			Status:      models.StatusPlaced,
			Timestamp:   now,
			Description: models.StatusPlaced.Info().Description,
		}},
	}
	if id, ok := owner.UserID(); ok {
		order.UserID = &id
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	id, err := l.uniqueID(now)
	if err != nil {
		return models.Order{}, err
	}
	order.ID = id
	l.append(order)

	l.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.Bool("guest", order.IsGuest),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.TotalAmount.String()),
	)
	return order.Clone(), nil
}

func (l *Ledger) uniqueID(now time.Time) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := l.newID(now)
		if _, taken := l.index[id]; !taken {
			return id, nil
		}
		l.logger.Debug("order id collision", zap.String("order_id", id))
	}
	return "", fmt.Errorf("no unique order id after %d attempts", maxIDAttempts)
}

// Append adds a fully formed order, e.g. seeded demo data. The order must
// satisfy the tracking history invariant and carry an unused id.
func (l *Ledger) Append(order models.Order) error {
	if err := checkOrder(order); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, taken := l.index[order.ID]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateOrder, order.ID)
	}
	l.append(order.Clone())
	return nil
}

func (l *Ledger) append(order models.Order) {
	l.index[order.ID] = len(l.orders)
	l.orders = append(l.orders, order)
}

func checkOrder(o models.Order) error {
	switch {
	case o.ID == "":
		return fmt.Errorf("%w: missing id", ErrInvalidOrder)
	case o.IsGuest == (o.UserID != nil):
		return fmt.Errorf("%w: %s must be either a guest order or have a user", ErrInvalidOrder, o.ID)
	case len(o.Items) == 0:
		return fmt.Errorf("%w: %s has no items", ErrInvalidOrder, o.ID)
	case len(o.TrackingHistory) == 0:
		return fmt.Errorf("%w: %s has no tracking history", ErrInvalidOrder, o.ID)
	}
	prev := -1
	for _, ev := range o.TrackingHistory {
		r := ev.Status.Rank()
		if r < 0 {
			return fmt.Errorf("%w: %s has unknown status %q", ErrInvalidOrder, o.ID, ev.Status)
		}
		if r <= prev {
			return fmt.Errorf("%w: %s history is out of order", ErrInvalidOrder, o.ID)
		}
		prev = r
	}
	if last, _ := o.LastEvent(); last.Status != o.Status {
		return fmt.Errorf("%w: %s status %s does not match history", ErrInvalidOrder, o.ID, o.Status)
	}
	return nil
}

// Order returns the order with the given id.
func (l *Ledger) Order(id string) (models.Order, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[id]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", id, models.ErrNotFound)
	}
	return l.orders[i].Clone(), nil
}

// OrdersForUser returns the user's orders in ledger order.
func (l *Ledger) OrdersForUser(userID int) []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := []models.Order{}
	for _, o := range l.orders {
		if o.BelongsTo(userID) {
			out = append(out, o.Clone())
		}
	}
	return out
}

// All returns every order in ledger order.
func (l *Ledger) All() []models.Order {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Order, 0, len(l.orders))
	for _, o := range l.orders {
		out = append(out, o.Clone())
	}
	return out
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// AdvanceStatus appends a tracking entry moving the order forward to status.
// Steps may be skipped, but an order never moves backwards or repeats a
// status. An empty description uses the status default.
func (l *Ledger) AdvanceStatus(orderID string, status models.OrderStatus, description string) (models.Order, error) {
	if !status.Valid() {
		return models.Order{}, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, status)
	}
	if description == "" {
		description = status.Info().Description
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	i, ok := l.index[orderID]
	if !ok {
		return models.Order{}, fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	order := &l.orders[i]
	if !order.Status.Before(status) {
		return models.Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
	}

	order.TrackingHistory = append(order.TrackingHistory, models.TrackingEvent{
		Status:      status,
		Timestamp:   l.now().UTC(),
		Description: description,
	})
	order.Status = status

	l.logger.Info("order status advanced",
		zap.String("order_id", orderID),
		zap.String("status", status.String()),
	)
	return order.Clone(), nil
}
