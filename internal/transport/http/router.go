package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers groups every HTTP handler served by the router.
type Handlers struct {
	Catalog  *CatalogHandler
	Browse   *BrowseHandler
	Cart     *CartHandler
	Coupon   *CouponHandler
	Checkout *CheckoutHandler
	Session  *SessionHandler
}

// NewRouter builds the storefront HTTP API.
func NewRouter(h Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Catalog.ListProducts)
			r.Get("/filters", h.Catalog.FilterData)
			r.Get("/search", h.Catalog.Search)
			r.Get("/{id}", h.Catalog.GetProduct)
		})

		r.Route("/browse", func(r chi.Router) {
			r.Post("/", h.Browse.Create)
			r.Get("/{id}", h.Browse.Get)
			r.Put("/{id}/filter", h.Browse.SetFilter)
			r.Post("/{id}/more", h.Browse.LoadMore)
			r.Delete("/{id}", h.Browse.Delete)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(CartIDMiddleware)
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Put("/items", h.Cart.UpdateItem)
			r.Delete("/items/{index}", h.Cart.RemoveItem)
		})

		r.Route("/coupons", func(r chi.Router) {
			// Listing works without a cart; the header is read when present.
			r.Get("/mine/{phone}", h.Coupon.MyCoupons)

			r.Group(func(r chi.Router) {
				r.Use(CartIDMiddleware)
				r.Post("/validate", h.Coupon.Validate)
				r.Post("/select", h.Coupon.Select)
				r.Post("/auto-apply", h.Coupon.AutoApply)
				r.Delete("/", h.Coupon.Remove)
			})
		})

		r.Route("/checkout", func(r chi.Router) {
			// bKash is started for an order that is already placed.
			r.Post("/bkash", h.Checkout.StartBkash)

			r.Group(func(r chi.Router) {
				r.Use(CartIDMiddleware)
				r.Post("/reconcile", h.Checkout.Reconcile)
				r.Post("/confirm", h.Checkout.Confirm)
				r.Post("/orders", h.Checkout.PlaceOrder)
			})
		})

		r.Post("/session/end", h.Session.End)
	})

	return otelhttp.NewHandler(r, "storefront-http")
}
