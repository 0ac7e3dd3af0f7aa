package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leader-akash/pizza-craft/api/controllers"
	"github.com/leader-akash/pizza-craft/api/middleware"
	"github.com/leader-akash/pizza-craft/internal/cart"
	catalogsvc "github.com/leader-akash/pizza-craft/internal/catalog"
	ordersvc "github.com/leader-akash/pizza-craft/internal/orders"
	"github.com/leader-akash/pizza-craft/pkg/config"
	"github.com/leader-akash/pizza-craft/pkg/db"
	"github.com/leader-akash/pizza-craft/pkg/logger"
	"github.com/leader-akash/pizza-craft/pkg/metrics"
	"github.com/leader-akash/pizza-craft/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	catalogService catalogsvc.Service,
	cartStore *cart.Store,
	orderService ordersvc.Service,
	checkoutService *ordersvc.CheckoutService,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/pizzas", func(r chi.Router) {
			r.Get("/", controllers.PizzaList(catalogService, logg))
			r.Post("/", controllers.PizzaCreate(catalogService, logg))
			r.Get("/{pizzaId}", controllers.PizzaDetail(catalogService, logg))
			r.Put("/{pizzaId}", controllers.PizzaUpdate(catalogService, logg))
			r.Delete("/{pizzaId}", controllers.PizzaDelete(catalogService, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartSession(cfg.Cart.SessionHeader, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartStore, catalogService, logg))
				r.Delete("/", controllers.CartClear(cartStore, logg))
				r.Post("/items", controllers.CartAddItem(cartStore, catalogService, logg))
				r.Patch("/items/{pizzaId}", controllers.CartUpdateItem(cartStore, catalogService, logg))
				r.Delete("/items/{pizzaId}", controllers.CartRemoveItem(cartStore, catalogService, logg))
			})

			r.Post("/checkout", controllers.Checkout(checkoutService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrderList(orderService, logg))
			r.Delete("/", controllers.OrderClear(orderService, logg))
			r.Get("/{orderId}", controllers.OrderDetail(orderService, logg))
			r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(orderService, logg))
			r.Delete("/{orderId}", controllers.OrderRemove(orderService, logg))
		})
	})

	return r
}
