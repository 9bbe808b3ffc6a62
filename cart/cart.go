// Package cart manages the line items of the active session cart.
package cart

import (
	"sync"

	"go-storefront/models"

	"github.com/shopspring/decimal"
)

// Cart holds at most one line per product, in insertion order. It is not
// persisted and is not tied to a user.
type Cart struct {
	mu    sync.RWMutex
	order []int
	lines map[int]*models.CartItem
}

// New returns an empty cart
func New() *Cart {
	return &Cart{lines: make(map[int]*models.CartItem)}
}

// Add puts qty units of product into the cart, incrementing an existing line
// instead of adding a second one.
func (c *Cart) Add(product models.Product, qty int) error {
	if qty < 1 {
		return models.NewValidationError("quantity must be at least 1", "quantity")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if line, ok := c.lines[product.ID]; ok {
		line.Quantity += qty
		return nil
	}
	c.lines[product.ID] = &models.CartItem{Product: product.Clone(), Quantity: qty}
	c.order = append(c.order, product.ID)
	return nil
}

// Remove drops the whole line for productID. Unknown ids are ignored.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remove(productID)
}

func (c *Cart) remove(productID int) {
	if _, ok := c.lines[productID]; !ok {
		return
	}
	delete(c.lines, productID)
	for i, id := range c.order {
		if id == productID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// UpdateQuantity sets the quantity of an existing line. qty <= 0 removes the
// line; unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID, qty int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if qty <= 0 {
		c.remove(productID)
		return
	}
	if line, ok := c.lines[productID]; ok {
		line.Quantity = qty
	}
}

// Subtract takes the quantities in items off the cart, removing lines that
// drop to zero. Lines not in items, and units above the listed quantity, stay.
func (c *Cart) Subtract(items []models.CartItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range items {
		line, ok := c.lines[item.Product.ID]
		if !ok {
			continue
		}
		if line.Quantity <= item.Quantity {
			c.remove(item.Product.ID)
			continue
		}
		line.Quantity -= item.Quantity
	}
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.lines = make(map[int]*models.CartItem)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []models.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.CartItem, 0, len(c.order))
	for _, id := range c.order {
		line := *c.lines[id]
		line.Product = line.Product.Clone()
		items = append(items, line)
	}
	return items
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count is the sum of quantities, used for the cart badge.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, line := range c.lines {
		n += line.Quantity
	}
	return n
}

// Len is the number of distinct lines.
func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return c.Len() == 0
}

// Quantity returns the quantity held for productID, zero when absent.
func (c *Cart) Quantity(productID int) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if line, ok := c.lines[productID]; ok {
		return line.Quantity
	}
	return 0
}
