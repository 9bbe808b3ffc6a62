package cart

import (
	"testing"

	"go-storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, price int64) models.Product {
	return models.Product{
		ID:     id,
		Name:   "Rug",
		Price:  decimal.NewFromInt(price),
		Colors: []string{"Ivory"},
	}
}

func TestAdd_NewLine(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 2))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ProductID())
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAdd_SameProductIncrements(t *testing.T) {
	c := New()
	adds := []int{1, 3, 2, 5}
	sum := 0
	for _, q := range adds {
		require.NoError(t, c.Add(product(7, 10), q))
		sum += q
	}

	assert.Equal(t, 1, c.Len(), "never two lines for one product")
	assert.Equal(t, sum, c.Quantity(7))
	assert.Equal(t, sum, c.Count())
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	c := New()
	for _, q := range []int{0, -1} {
		err := c.Add(product(1, 100), q)
		ve, ok := models.AsValidationError(err)
		require.True(t, ok)
		assert.Equal(t, []string{"quantity"}, ve.Fields)
	}
	assert.True(t, c.IsEmpty())
}

func TestAdd_KeepsInsertionOrder(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(3, 1), 1))
	require.NoError(t, c.Add(product(1, 1), 1))
	require.NoError(t, c.Add(product(2, 1), 1))
	require.NoError(t, c.Add(product(3, 1), 1))

	var ids []int
	for _, it := range c.Items() {
		ids = append(ids, it.ProductID())
	}
	assert.Equal(t, []int{3, 1, 2}, ids)
}

func TestRemove(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 4))
	require.NoError(t, c.Add(product(2, 50), 1))

	c.Remove(1)
	assert.Equal(t, 0, c.Quantity(1))
	assert.Equal(t, 1, c.Len())

	c.Remove(99)
	assert.Equal(t, 1, c.Len())
}

func TestUpdateQuantity(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 1))

	c.UpdateQuantity(1, 5)
	assert.Equal(t, 5, c.Quantity(1))

	c.UpdateQuantity(42, 3)
	assert.Equal(t, 1, c.Len(), "unknown product is a no-op")
	assert.Equal(t, 0, c.Quantity(42))
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		c := New()
		require.NoError(t, c.Add(product(1, 100), 2))
		require.NoError(t, c.Add(product(2, 30), 1))
		require.NoError(t, c.Add(product(3, 75), 4))
		return c
	}

	for _, q := range []int{0, -3} {
		updated := build()
		updated.UpdateQuantity(2, q)

		removed := build()
		removed.Remove(2)

		assert.Equal(t, removed.Items(), updated.Items())
		assert.True(t, removed.Total().Equal(updated.Total()))
		assert.Equal(t, removed.Count(), updated.Count())
	}
}

func TestTotalTracksMutations(t *testing.T) {
	c := New()
	assert.True(t, c.Total().IsZero())

	require.NoError(t, c.Add(product(1, 100), 2))
	assert.Equal(t, "200", c.Total().String())

	require.NoError(t, c.Add(product(2, 600), 1))
	assert.Equal(t, "800", c.Total().String())

	c.UpdateQuantity(1, 1)
	assert.Equal(t, "700", c.Total().String())

	c.Remove(2)
	assert.Equal(t, "100", c.Total().String())

	c.Clear()
	assert.True(t, c.Total().IsZero())
	assert.Equal(t, 0, c.Count())
	assert.False(t, c.Total().IsNegative())
}

func TestTotal_DecimalPrices(t *testing.T) {
	c := New()
	p := product(1, 0)
	p.Price = decimal.RequireFromString("19.99")
	require.NoError(t, c.Add(p, 3))

	assert.Equal(t, "59.97", c.Total().String())
}

func TestItemsAreCopies(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 2))

	items := c.Items()
	items[0].Quantity = 99
	items[0].Product.Colors[0] = "Changed"

	again := c.Items()
	assert.Equal(t, 2, again[0].Quantity)
	assert.Equal(t, "Ivory", again[0].Product.Colors[0])
}

func TestSubtract(t *testing.T) {
	c := New()
	require.NoError(t, c.Add(product(1, 100), 2))
	require.NoError(t, c.Add(product(2, 50), 1))
	snapshot := c.Items()

	require.NoError(t, c.Add(product(2, 50), 3))
	require.NoError(t, c.Add(product(3, 10), 1))
	c.Remove(1)
	require.NoError(t, c.Add(product(1, 100), 1))

	c.Subtract(snapshot)

	assert.Equal(t, 0, c.Quantity(1))
	assert.Equal(t, 3, c.Quantity(2))
	assert.Equal(t, 1, c.Quantity(3))
	assert.Equal(t, 2, c.Len())
}
