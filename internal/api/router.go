package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/ypa-web/internal/api/handlers"
	"github.com/baharkarakas/ypa-web/internal/auth"
	"github.com/baharkarakas/ypa-web/internal/config"
	"github.com/baharkarakas/ypa-web/internal/metrics"
	"github.com/baharkarakas/ypa-web/internal/middleware"
	"github.com/baharkarakas/ypa-web/internal/models"
	"github.com/baharkarakas/ypa-web/internal/services"
)

const (
	AdminHome = "/admin"
	LoginPath = "/admin/login"
)

type RouterDeps struct {
	Cfg         config.Config
	Authn       *auth.Authenticator
	Submissions *services.SubmissionService
	Catalog     *services.CatalogService
	Admin       *services.AdminService
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.Logging, middleware.HTTPMetrics, middleware.SecurityHeaders)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	catalog := handlers.NewCatalogHandler(d.Catalog)
	subs := handlers.NewSubmissionHandler(d.Submissions)

	// ---------- public ----------
	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: d.Cfg.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}))
		r.Use(middleware.RateLimit(d.Cfg.RateRPS, d.Cfg.RateBurst))

		r.Get("/menu/{id}", catalog.MenuItem)
		r.Get("/{collection}", catalog.List)

		r.Post("/bookings", subs.Booking)
		r.Post("/contact", subs.Contact)
		r.Post("/reviews", subs.Review)
	})

	authH := handlers.NewAuthHandler(d.Authn, LoginPath, AdminHome)
	admin := handlers.NewAdminHandler(d.Admin)

	// ---------- admin ----------
	// Guard covers the whole prefix; it lets the login page through itself.
	r.Route(AdminHome, func(r chi.Router) {
		r.Use(middleware.CSRF([]byte(d.Cfg.CSRFKey), d.Cfg.TrustedOrigins))
		r.Use(middleware.Guard(d.Authn, LoginPath))

		r.Get("/login", authH.LoginPage)
		r.With(middleware.RateLimit(d.Cfg.RateRPS, d.Cfg.RateBurst)).Post("/login", authH.Login)
		r.Post("/logout", authH.Logout)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(auth.RoleAdmin))

			r.Get("/", admin.Dashboard)
			r.Get("/me", admin.Me)
			r.Get("/reports", admin.Reports)

			r.Get("/bookings", admin.Bookings)
			r.Post("/bookings/{id}/status", admin.SetBookingStatus)

			r.Get("/reviews", admin.Reviews)
			r.Post("/reviews/{id}/approve", admin.ApproveReview)
			r.Delete("/reviews/{id}", admin.DeleteReview)

			r.Get("/contact", admin.Contact)
			r.Post("/contact/{id}/read", admin.MarkContactRead)

			for _, c := range []string{models.CollectionMenu, models.CollectionEvents, models.CollectionBanners, models.CollectionBlog, models.CollectionMedia} {
				r.Get("/"+c, admin.Collection(c))
			}
		})
	})

	return r
}
