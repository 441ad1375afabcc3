package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/andreasstove999/storefront/internal/address"
	"github.com/andreasstove999/storefront/internal/review"
	"github.com/andreasstove999/storefront/internal/session"
)

func NewRouter(
	logger *log.Logger,
	sessions *session.Manager,
	book *address.Book,
	reviews *review.Store,
	catalogClient CatalogAPI,
	corsAllowOrigins []string,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(Recover(logger))
	r.Use(CORS(corsAllowOrigins))
	r.Use(middleware.Logger)

	r.Get("/health", healthHandler)

	cartHandler := NewCartHandler(sessions)
	checkoutHandler := NewCheckoutHandler(sessions, book)
	addressHandler := NewAddressHandler(book)
	reviewHandler := NewReviewHandler(reviews)
	catalogHandler := NewCatalogHandler(catalogClient)

	r.Route("/api/cart/{sessionId}", func(r chi.Router) {
		r.Get("/", cartHandler.GetCart)
		r.Post("/items", cartHandler.AddItem)
		r.Put("/items/{productId}", cartHandler.SetQuantity)
		r.Delete("/items/{productId}", cartHandler.RemoveItem)
	})

	r.Route("/api/checkout/{sessionId}", func(r chi.Router) {
		r.Post("/open", checkoutHandler.Open)
		r.Post("/close", checkoutHandler.Close)
		r.Get("/", checkoutHandler.State)
		r.Get("/totals", checkoutHandler.Totals)
		r.Patch("/form", checkoutHandler.PatchForm)
		r.Post("/coupon", checkoutHandler.ApplyCoupon)
		r.Post("/submit", checkoutHandler.Submit)
		r.Post("/cancel", checkoutHandler.Cancel)
		r.Post("/confirm", checkoutHandler.Confirm)
		r.Post("/save-address", checkoutHandler.SaveAddress)
		r.Post("/use-address/{addressId}", checkoutHandler.UseAddress)
	})

	r.Route("/api/addresses", func(r chi.Router) {
		r.Get("/", addressHandler.List)
		r.Post("/", addressHandler.Add)
		r.Delete("/{addressId}", addressHandler.Remove)
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", catalogHandler.List)
		r.Post("/", catalogHandler.Create)
		r.Get("/{productId}", catalogHandler.Get)
		r.Put("/{productId}", catalogHandler.Update)
		r.Delete("/{productId}", catalogHandler.Delete)

		r.Route("/{productId}/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.List)
			r.Post("/", reviewHandler.Add)
			r.Put("/{reviewId}", reviewHandler.Update)
			r.Delete("/{reviewId}", reviewHandler.Delete)
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}
