// controllers/order.go
package controllers

import (
	"net/http"

	"go-storefront/checkout"
	"go-storefront/ledger"
	"go-storefront/models"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// OrderController handles checkout and order administration
type OrderController struct {
	Checkout *checkout.Service
	Ledger   *ledger.Ledger
	Logger   *zap.Logger
}

// NewOrderController creates a new OrderController
func NewOrderController(svc *checkout.Service, l *ledger.Ledger, logger *zap.Logger) *OrderController {
	return &OrderController{Checkout: svc, Ledger: l, Logger: loggerOrNop(logger)}
}

// CreateOrder checks out the current cart with the posted shipping details
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var form models.ShippingAddress
	if err := decodeJSON(r, &form); err != nil {
		writeError(w, oc.Logger, err)
		return
	}

	order, err := oc.Checkout.Checkout(r.Context(), form)
	if err != nil {
		writeError(w, oc.Logger, err)
		return
	}

	w.Header().Set("Location", "/order-success")
	writeJSON(w, http.StatusCreated, order)
}

// GetOrderSuccess returns the confirmation for the last completed checkout
func (oc *OrderController) GetOrderSuccess(w http.ResponseWriter, r *http.Request) {
	order, err := oc.Checkout.LastOrder(r.Context())
	if err != nil {
		writeError(w, oc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// UpdateOrderStatus moves an order forward (Admin only)
func (oc *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["orderId"]

	var req struct {
		Status      string `json:"status"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, oc.Logger, err)
		return
	}

	status, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		writeError(w, oc.Logger, models.NewValidationError(err.Error(), "status"))
		return
	}

	order, err := oc.Ledger.AdvanceStatus(orderID, status, req.Description)
	if err != nil {
		writeError(w, oc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
