package ledger

import (
	"testing"

	"go-storefront/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_DemoOrders(t *testing.T) {
	orders, err := DemoOrders()
	require.NoError(t, err)

	ov := Summarize(orders, 4)

	assert.Equal(t, 3, ov.TotalOrders)
	assert.Equal(t, 2, ov.ActiveOrders)
	assert.Equal(t, 1, ov.PurchasedItems)
	assert.Equal(t, 4, ov.CartItems)
	assert.Len(t, ov.RecentOrders, 3)
}

func TestSummarize_CapsRecentOrders(t *testing.T) {
	l := New()
	for i := 0; i < RecentLimit+3; i++ {
		_, err := l.CreateOrder([]models.CartItem{line(1, 10, 1)}, address(), Customer(1))
		require.NoError(t, err)
	}

	ov := Summarize(l.OrdersForUser(1), 0)
	assert.Equal(t, RecentLimit+3, ov.TotalOrders)
	assert.Equal(t, RecentLimit+3, ov.ActiveOrders)
	assert.Len(t, ov.RecentOrders, RecentLimit)
}

func TestSummarize_Empty(t *testing.T) {
	ov := Summarize(nil, 0)
	assert.Zero(t, ov.TotalOrders)
	assert.NotNil(t, ov.RecentOrders)
}

func TestPurchases_OnlyDeliveredOrders(t *testing.T) {
	orders, err := DemoOrders()
	require.NoError(t, err)

	purchases := Purchases(orders)
	require.Len(t, purchases, 1)
	assert.Equal(t, "ORD-2024-002", purchases[0].OrderID)
	assert.Equal(t, "Geometric Modern Wool Rug", purchases[0].ProductName)
	assert.Equal(t, orders[1].CreatedAt, purchases[0].PurchaseDate)
}
