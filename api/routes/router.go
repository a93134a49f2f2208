package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pricewatch/pricewatch-bff/api/controllers"
	"github.com/pricewatch/pricewatch-bff/api/middleware"
	"github.com/pricewatch/pricewatch-bff/internal/products"
	"github.com/pricewatch/pricewatch-bff/pkg/config"
	"github.com/pricewatch/pricewatch-bff/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	productService products.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Post("/", controllers.AddProduct(productService, logg))
			r.Route("/{productID}", func(r chi.Router) {
				r.Get("/", controllers.ProductDetail(productService, logg))
				r.Patch("/", controllers.UpdateTargetPrice(productService, logg))
				r.Delete("/", controllers.DeleteProduct(productService, logg))
				r.Get("/history", controllers.PriceHistory(productService, logg))
			})
		})

		r.Delete("/auth/session", controllers.SessionSignOut(logg))
	})

	return r
}
