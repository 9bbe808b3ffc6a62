// Package checkout turns the session cart into a placed order.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go-storefront/cart"
	"go-storefront/ledger"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/storage"

	"go.uber.org/zap"
)

// DefaultDelay simulates payment processing.
const DefaultDelay = 1500 * time.Millisecond

// ErrCheckoutInProgress rejects a second submit while one is still pending.
var ErrCheckoutInProgress = errors.New("checkout already in progress")

// Notifier delivers the order confirmation. utils.EmailService satisfies it.
type Notifier interface {
	SendOrderConfirmationEmail(toEmail string, order models.Order) error
}

// Service wires the cart, the ledger and the session together.
type Service struct {
	cart    *cart.Cart
	ledger  *ledger.Ledger
	session *session.Store
	kv      storage.KV

	notifier Notifier
	logger   *zap.Logger
	delay    time.Duration
	sleep    func(time.Duration)

	pending atomic.Bool
}

// Option configures a Service.
type Option func(*Service)

func WithDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a new checkout Service
func NewService(c *cart.Cart, l *ledger.Ledger, sess *session.Store, kv storage.KV, opts ...Option) *Service {
	s := &Service{
		cart:    c,
		ledger:  l,
		session: sess,
		kv:      kv,
		logger:  zap.NewNop(),
		delay:   DefaultDelay,
		sleep:   time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote prices the current cart.
func (s *Service) Quote() models.Quote {
	return ledger.QuoteFor(s.cart.Items())
}

// Checkout places an order for the cart contents as they are at submission.
// On success the ordered quantities leave the cart and the order is stored as
// the last order.
func (s *Service) Checkout(ctx context.Context, form models.ShippingAddress) (models.Order, error) {
	if !s.pending.CompareAndSwap(false, true) {
		return models.Order{}, ErrCheckoutInProgress
	}
	defer s.pending.Store(false)

	items := s.cart.Items()
	if len(items) == 0 {
		return models.Order{}, ledger.ErrEmptyCart
	}

	form = form.Normalize()
	if missing := form.Missing(); len(missing) > 0 {
		return models.Order{}, models.NewValidationError("please fill in all required fields", missing...)
	}

	// Always runs to completion, even if the caller goes away.
	if s.delay > 0 {
		s.sleep(s.delay)
	}

	owner := ledger.Guest()
	if user, ok := s.session.CurrentUser(); ok {
		owner = ledger.Customer(user.ID)
	}

	order, err := s.ledger.CreateOrder(items, form, owner)
	if err != nil {
		return models.Order{}, err
	}
	s.cart.Subtract(items)

	if err := s.saveLastOrder(ctx, order); err != nil {
		// the order is already in the ledger; only the confirmation view loses it
		s.logger.Error("failed to store last order", zap.String("order_id", order.ID), zap.Error(err))
	}

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmationEmail(form.Email, order); err != nil {
			s.logger.Warn("order confirmation not sent", zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	s.logger.Info("checkout completed", zap.String("order_id", order.ID), zap.Bool("guest", order.IsGuest))
	return order, nil
}

func (s *Service) saveLastOrder(ctx context.Context, order models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, storage.KeyLastOrder, string(raw))
}

// LastOrder returns the snapshot of the most recently completed checkout.
func (s *Service) LastOrder(ctx context.Context) (models.Order, error) {
	raw, ok, err := s.kv.Get(ctx, storage.KeyLastOrder)
	if err != nil {
		return models.Order{}, err
	}
	if !ok {
		return models.Order{}, fmt.Errorf("last order: %w", models.ErrNotFound)
	}

	var order models.Order
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		return models.Order{}, fmt.Errorf("decode last order: %w", err)
	}
	return order, nil
}
