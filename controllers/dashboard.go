package controllers

import (
	"fmt"
	"net/http"

	"go-storefront/cart"
	"go-storefront/ledger"
	"go-storefront/models"
	"go-storefront/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// DashboardController serves the signed-in customer's views. Every handler
// sits behind middleware.RequireSession.
type DashboardController struct {
	Session *session.Store
	Ledger  *ledger.Ledger
	Cart    *cart.Cart
	Logger  *zap.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(sess *session.Store, l *ledger.Ledger, c *cart.Cart, logger *zap.Logger) *DashboardController {
	return &DashboardController{Session: sess, Ledger: l, Cart: c, Logger: loggerOrNop(logger)}
}

// currentUser writes a 401 when the session ended between the guard and here
func (dc *DashboardController) currentUser(w http.ResponseWriter) (models.User, bool) {
	user, ok := dc.Session.CurrentUser()
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Not logged in"})
	}
	return user, ok
}

func (dc *DashboardController) GetOverview(w http.ResponseWriter, r *http.Request) {
	user, ok := dc.currentUser(w)
	if !ok {
		return
	}
	overview := ledger.Summarize(dc.Ledger.OrdersForUser(user.ID), dc.Cart.Count())
	writeJSON(w, http.StatusOK, struct {
		User models.User `json:"user"`
		ledger.Overview
	}{user, overview})
}

func (dc *DashboardController) GetOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := dc.currentUser(w)
	if !ok {
		return
	}
	orders := dc.Ledger.OrdersForUser(user.ID)
	if orders == nil {
		orders = []models.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

type orderDetail struct {
	Order    models.Order          `json:"order"`
	Progress []models.TrackingStep `json:"progress"`
}

// GetOrder returns one of the user's orders with its tracker. Orders owned
// by someone else, or by a guest, read as not found.
func (dc *DashboardController) GetOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := dc.currentUser(w)
	if !ok {
		return
	}
	orderID := mux.Vars(r)["orderId"]

	order, err := dc.Ledger.Order(orderID)
	if err == nil && !order.BelongsTo(user.ID) {
		err = fmt.Errorf("order %s: %w", orderID, models.ErrNotFound)
	}
	if err != nil {
		writeError(w, dc.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orderDetail{Order: order, Progress: order.Progress()})
}

func (dc *DashboardController) GetPurchases(w http.ResponseWriter, r *http.Request) {
	user, ok := dc.currentUser(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ledger.Purchases(dc.Ledger.OrdersForUser(user.ID)))
}

func (dc *DashboardController) GetCart(w http.ResponseWriter, r *http.Request) {
	if _, ok := dc.currentUser(w); !ok {
		return
	}
	writeJSON(w, http.StatusOK, cartView(dc.Cart))
}

func (dc *DashboardController) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := dc.currentUser(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// NotFound answers dashboard paths with no view of their own
func (dc *DashboardController) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, dc.Logger, fmt.Errorf("dashboard page %q: %w", r.URL.Path, models.ErrNotFound))
}
