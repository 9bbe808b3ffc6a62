package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-storefront/cart"
	"go-storefront/ledger"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	cart    *cart.Cart
	ledger  *ledger.Ledger
	session *session.Store
	dir     *session.Directory
	kv      *storage.MemoryKV
	svc     *Service
	slept   []time.Duration
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	ctx := context.Background()

	dir, err := session.DemoDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	kv := storage.NewMemoryKV()
	sess, err := session.NewStore(ctx, kv, dir, nil)
	require.NoError(t, err)

	f := &fixture{cart: cart.New(), ledger: ledger.New(), session: sess, dir: dir, kv: kv}
	f.svc = NewService(f.cart, f.ledger, sess, kv, opts...)
	f.svc.sleep = func(d time.Duration) { f.slept = append(f.slept, d) }
	return f
}

func product(id int, price int64) models.Product {
	return models.Product{
		ID:     id,
		Name:   "Rug",
		Image:  "rug.jpg",
		Price:  decimal.NewFromInt(price),
		Colors: []string{"Red"},
	}
}

func validForm() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Jane Roe",
		Email:   "jane@example.com",
		Phone:   "555-0100",
		Address: "1 Elm St",
		City:    "Springfield",
		State:   "IL",
		Zip:     "62701",
	}
}

type recordingNotifier struct {
	to     []string
	orders []models.Order
	err    error
}

func (n *recordingNotifier) SendOrderConfirmationEmail(to string, order models.Order) error {
	n.to = append(n.to, to)
	n.orders = append(n.orders, order)
	return n.err
}

func TestCheckout_Guest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.cart.Add(product(7, 100), 2))

	order, err := f.svc.Checkout(ctx, validForm())
	require.NoError(t, err)

	assert.True(t, order.IsGuest)
	assert.Nil(t, order.UserID)
	assert.Equal(t, models.StatusPlaced, order.Status)
	assert.True(t, decimal.NewFromInt(249).Equal(order.TotalAmount))
	assert.Equal(t, order.CreatedAt.Add(ledger.DeliveryWindow), order.EstimatedDelivery)
	assert.True(t, f.cart.IsEmpty())
	assert.Equal(t, 1, f.ledger.Len())
	assert.Equal(t, []time.Duration{DefaultDelay}, f.slept)

	last, err := f.svc.LastOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, order.ID, last.ID)
	assert.True(t, order.TotalAmount.Equal(last.TotalAmount))
	assert.Equal(t, order.ShippingAddress, last.ShippingAddress)
}

func TestCheckout_LoggedInOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, err := f.dir.User(1)
	require.NoError(t, err)
	require.NoError(t, f.session.Login(ctx, user))
	require.NoError(t, f.cart.Add(product(1, 600), 1))

	order, err := f.svc.Checkout(ctx, validForm())
	require.NoError(t, err)

	assert.False(t, order.IsGuest)
	require.NotNil(t, order.UserID)
	assert.Equal(t, 1, *order.UserID)
	assert.True(t, decimal.NewFromInt(600).Equal(order.TotalAmount))
	assert.Len(t, f.ledger.OrdersForUser(1), 1)
}

func TestCheckout_EmptyCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), validForm())
	assert.ErrorIs(t, err, ledger.ErrEmptyCart)
	assert.Equal(t, 0, f.ledger.Len())
	assert.Empty(t, f.slept)
}

func TestCheckout_BlankFormNamesEveryField(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	_, err := f.svc.Checkout(context.Background(), models.ShippingAddress{Name: "   "})
	ve, ok := models.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "email", "phone", "address", "city", "state", "zip"}, ve.Fields)

	assert.Equal(t, 0, f.ledger.Len())
	assert.Equal(t, 1, f.cart.Count())
}

func TestCheckout_TrimsForm(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	form := validForm()
	form.City = "  Springfield  "
	order, err := f.svc.Checkout(context.Background(), form)
	require.NoError(t, err)
	assert.Equal(t, "Springfield", order.ShippingAddress.City)
}

func TestCheckout_SnapshotDecoupledFromCart(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(7, 100), 2))

	order, err := f.svc.Checkout(context.Background(), validForm())
	require.NoError(t, err)

	require.NoError(t, f.cart.Add(product(7, 100), 5))
	stored, err := f.ledger.Order(order.ID)
	require.NoError(t, err)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestCheckout_KeepsLinesAddedDuringDelay(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(1, 100), 1))
	f.svc.sleep = func(time.Duration) {
		require.NoError(t, f.cart.Add(product(2, 50), 1))
		require.NoError(t, f.cart.Add(product(1, 100), 1))
	}

	order, err := f.svc.Checkout(context.Background(), validForm())
	require.NoError(t, err)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 1, order.Items[0].Quantity)
	assert.Equal(t, 1, f.cart.Quantity(1))
	assert.Equal(t, 1, f.cart.Quantity(2))
}

func TestCheckout_RejectsConcurrentSubmit(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	entered := make(chan struct{})
	release := make(chan struct{})
	f.svc.sleep = func(time.Duration) {
		close(entered)
		<-release
	}

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Checkout(context.Background(), validForm())
		done <- err
	}()

	<-entered
	_, err := f.svc.Checkout(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrCheckoutInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, f.ledger.Len())
}

func TestCheckout_Notifies(t *testing.T) {
	n := &recordingNotifier{}
	f := newFixture(t, WithNotifier(n))
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	order, err := f.svc.Checkout(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, []string{"jane@example.com"}, n.to)
	require.Len(t, n.orders, 1)
	assert.Equal(t, order.ID, n.orders[0].ID)
}

func TestCheckout_NotifierFailureIsNotFatal(t *testing.T) {
	n := &recordingNotifier{err: errors.New("smtp down")}
	f := newFixture(t, WithNotifier(n))
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	_, err := f.svc.Checkout(context.Background(), validForm())
	require.NoError(t, err)
	assert.True(t, f.cart.IsEmpty())
}

func TestCheckout_CustomDelay(t *testing.T) {
	f := newFixture(t, WithDelay(10*time.Millisecond))
	require.NoError(t, f.cart.Add(product(7, 100), 1))

	_, err := f.svc.Checkout(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, f.slept)
}

func TestLastOrder_Missing(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.LastOrder(context.Background())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestQuote(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.cart.Add(product(7, 100), 2))

	q := f.svc.Quote()
	assert.True(t, decimal.NewFromInt(200).Equal(q.Subtotal))
	assert.True(t, decimal.NewFromInt(49).Equal(q.Shipping))
	assert.True(t, decimal.NewFromInt(249).Equal(q.Total))
}
