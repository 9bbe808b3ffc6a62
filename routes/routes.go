// routes/routes.go
package routes

import (
	"encoding/json"
	"net/http"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/session"

	"github.com/gorilla/mux"
)

// Controllers bundles every handler set the router needs
type Controllers struct {
	User      *controllers.UserController
	Product   *controllers.ProductController
	Cart      *controllers.CartController
	Order     *controllers.OrderController
	Dashboard *controllers.DashboardController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers, sess *session.Store, adminSecret []byte) {
	router.HandleFunc("/", health).Methods("GET")

	// Catalog routes
	router.HandleFunc("/categories", c.Product.GetCategories).Methods("GET")
	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/featured", c.Product.GetFeatured).Methods("GET")
	router.HandleFunc("/products/bestsellers", c.Product.GetBestsellers).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", c.Product.GetProductByID).Methods("GET")

	// Cart Routes
	router.HandleFunc("/cart", c.Cart.GetCart).Methods("GET")
	router.HandleFunc("/cart", c.Cart.ClearCart).Methods("DELETE")
	router.HandleFunc("/cart/items", c.Cart.AddToCart).Methods("POST")
	router.HandleFunc("/cart/items/{productId:[0-9]+}", c.Cart.UpdateCartItem).Methods("PUT")
	router.HandleFunc("/cart/items/{productId:[0-9]+}", c.Cart.RemoveFromCart).Methods("DELETE")

	// Order Routes
	router.HandleFunc("/checkout", c.Order.CreateOrder).Methods("POST")
	router.HandleFunc("/order-success", c.Order.GetOrderSuccess).Methods("GET")

	// Session routes
	router.HandleFunc("/login", c.User.Login).Methods("POST")
	router.HandleFunc("/logout", c.User.Logout).Methods("POST")
	router.HandleFunc("/me", c.User.GetMe).Methods("GET")

	// Protected routes
	dashboard := router.PathPrefix("/dashboard").Subrouter()
	dashboard.Use(middleware.RequireSession(sess))
	dashboard.HandleFunc("", c.Dashboard.GetOverview).Methods("GET")
	dashboard.HandleFunc("/orders", c.Dashboard.GetOrders).Methods("GET")
	dashboard.HandleFunc("/orders/{orderId}", c.Dashboard.GetOrder).Methods("GET")
	dashboard.HandleFunc("/purchases", c.Dashboard.GetPurchases).Methods("GET")
	dashboard.HandleFunc("/cart", c.Dashboard.GetCart).Methods("GET")
	dashboard.HandleFunc("/profile", c.Dashboard.GetProfile).Methods("GET")
	dashboard.PathPrefix("/").HandlerFunc(c.Dashboard.NotFound).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminMiddleware(adminSecret))
	admin.HandleFunc("/orders/{orderId}/status", c.Order.UpdateOrderStatus).Methods("POST")
}

func health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
