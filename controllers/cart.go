package controllers

import (
	"net/http"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/ledger"
	"go-storefront/models"

	"go.uber.org/zap"
)

// CartController handles the session cart
type CartController struct {
	Cart    *cart.Cart
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

// NewCartController creates a new CartController
func NewCartController(c *cart.Cart, cat *catalog.Catalog, logger *zap.Logger) *CartController {
	return &CartController{Cart: c, Catalog: cat, Logger: loggerOrNop(logger)}
}

func cartView(c *cart.Cart) models.CartView {
	items := c.Items()
	if items == nil {
		items = []models.CartItem{}
	}
	return models.CartView{
		Items: items,
		Count: c.Count(),
		Quote: ledger.QuoteFor(items),
	}
}

// GetCart returns the cart lines with count and price breakdown
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartView(cc.Cart))
}

// AddToCart adds a product to the cart, merging with an existing line
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID int  `json:"productId"`
		Quantity  *int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, cc.Logger, err)
		return
	}

	product, err := cc.Catalog.Product(req.ProductID)
	if err != nil {
		writeError(w, cc.Logger, err)
		return
	}
	if !product.InStock {
		writeError(w, cc.Logger, models.NewValidationError("Product is out of stock", "productId"))
		return
	}

	// Default to a single unit, like the product card button
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if err := cc.Cart.Add(product, qty); err != nil {
		writeError(w, cc.Logger, err)
		return
	}

	writeJSON(w, http.StatusOK, cartView(cc.Cart))
}

// UpdateCartItem sets the quantity of a line; zero or less removes it
func (cc *CartController) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "productId")
	if err != nil {
		writeError(w, cc.Logger, err)
		return
	}

	var req struct {
		Quantity *int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, cc.Logger, err)
		return
	}
	if req.Quantity == nil {
		writeError(w, cc.Logger, models.NewValidationError("Quantity is required", "quantity"))
		return
	}

	cc.Cart.UpdateQuantity(id, *req.Quantity)
	writeJSON(w, http.StatusOK, cartView(cc.Cart))
}

// RemoveFromCart drops a whole line
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := intVar(r, "productId")
	if err != nil {
		writeError(w, cc.Logger, err)
		return
	}
	cc.Cart.Remove(id)
	writeJSON(w, http.StatusOK, cartView(cc.Cart))
}

// ClearCart empties the cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	cc.Cart.Clear()
	writeJSON(w, http.StatusOK, cartView(cc.Cart))
}
