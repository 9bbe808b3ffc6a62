// Package app builds the storefront object graph once and hands it to the
// HTTP layer.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go-storefront/cart"
	"go-storefront/catalog"
	"go-storefront/checkout"
	"go-storefront/controllers"
	"go-storefront/ledger"
	"go-storefront/middleware"
	"go-storefront/routes"
	"go-storefront/session"
	"go-storefront/storage"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Options are the knobs that differ between the server and tests
type Options struct {
	KV            storage.KV
	Logger        *zap.Logger
	Notifier      checkout.Notifier
	CheckoutDelay time.Duration
	LoginDelay    time.Duration
	AdminSecret   []byte
	// BcryptCost hashes the demo password; zero means bcrypt.DefaultCost
	BcryptCost int
	// SkipSeed leaves the ledger empty instead of loading the demo orders
	SkipSeed bool
}

// App is the wired storefront
type App struct {
	Catalog  *catalog.Catalog
	Cart     *cart.Cart
	Ledger   *ledger.Ledger
	Session  *session.Store
	Auth     *session.Authenticator
	Checkout *checkout.Service
	Router   *mux.Router
}

// New creates every component, restores the session from opts.KV and
// registers the routes
func New(ctx context.Context, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.KV == nil {
		return nil, fmt.Errorf("app: no storage configured")
	}
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	cat, err := catalog.New()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	l := ledger.New(ledger.WithLogger(logger.Named("ledger")))
	if !opts.SkipSeed {
		demo, err := ledger.DemoOrders()
		if err != nil {
			return nil, fmt.Errorf("load demo orders: %w", err)
		}
		if err := l.Seed(demo); err != nil {
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
	}

	dir, err := session.DemoDirectory(cost)
	if err != nil {
		return nil, err
	}
	sess, err := session.NewStore(ctx, opts.KV, dir, logger.Named("session"))
	if err != nil {
		return nil, err
	}

	a := &App{
		Catalog: cat,
		Cart:    cart.New(),
		Ledger:  l,
		Session: sess,
		Auth:    session.NewAuthenticator(sess, dir, opts.LoginDelay),
	}

	checkoutOpts := []checkout.Option{
		checkout.WithDelay(opts.CheckoutDelay),
		checkout.WithLogger(logger.Named("checkout")),
	}
	if opts.Notifier != nil {
		checkoutOpts = append(checkoutOpts, checkout.WithNotifier(opts.Notifier))
	}
	a.Checkout = checkout.NewService(a.Cart, l, sess, opts.KV, checkoutOpts...)

	httpLogger := logger.Named("http")
	router := mux.NewRouter()
	router.Use(middleware.Logging(httpLogger))
	routes.RegisterRoutes(router, routes.Controllers{
		User:      controllers.NewUserController(a.Auth, sess, httpLogger),
		Product:   controllers.NewProductController(cat, httpLogger),
		Cart:      controllers.NewCartController(a.Cart, cat, httpLogger),
		Order:     controllers.NewOrderController(a.Checkout, l, httpLogger),
		Dashboard: controllers.NewDashboardController(sess, l, a.Cart, httpLogger),
	}, sess, opts.AdminSecret)
	a.Router = router

	return a, nil
}

// ServeHTTP lets the App stand in for its router
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.Router.ServeHTTP(w, r)
}
