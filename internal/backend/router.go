package backend

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/middleware"
	"github.com/baharkarakas/ypa-web/internal/models"
)

func NewRouter(h *Handler, tm *TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.Logging, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	// ---------- auth ----------
	r.Post("/auth/login", h.Login)
	r.Get("/auth/verify", h.Verify)

	// ---------- public ----------
	r.Post("/bookings", h.CreateBooking)
	r.Post("/contact", h.CreateContact)
	r.Post("/reviews", h.CreateReview)
	r.Get("/reviews", h.ListReviews)
	for _, c := range []string{models.CollectionMenu, models.CollectionEvents, models.CollectionBanners, models.CollectionBlog, models.CollectionMedia} {
		r.Get("/"+c, h.ListContent(c))
	}
	r.Get("/menu/{id}", h.GetMenuItem)

	// ---------- admin ----------
	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(tm), middleware.RequireRole(auth.RoleAdmin))

		r.Get("/bookings", h.ListBookings)
		r.Put("/bookings/{id}", h.UpdateBooking)
		r.Get("/contact", h.ListContact)
		r.Put("/contact/{id}", h.UpdateContact)
		r.Put("/reviews/{id}", h.UpdateReview)
		r.Delete("/reviews/{id}", h.DeleteReview)
	})

	return r
}
