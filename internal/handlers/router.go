package handlers

import (
	"net/http"

	"github.com/Varun5711/wecare/internal/logger"
	"github.com/Varun5711/wecare/internal/middleware"
	"github.com/Varun5711/wecare/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Users          *service.UserService
	Bookings       *service.BookingService
	Limiter        *middleware.RateLimiter
	AllowedOrigins []string
	Log            *logger.Logger
}

// NewRouter mounts the patient API under /api.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	if cfg.Log != nil {
		r.Use(middleware.RequestLog(cfg.Log))
	}

	authH := NewAuthHandler(cfg.Users)
	profileH := NewProfileHandler(cfg.Users)
	bookingH := NewBookingHandler(cfg.Bookings)
	requireAuth := middleware.NewAuthMiddleware(cfg.Users).RequireAuth

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.Limiter != nil {
					r.Use(cfg.Limiter.Middleware)
				}
				r.Post("/login", authH.Login)
				r.Post("/register", authH.Register)
				r.Post("/forgot-password", authH.ForgotPassword)
				r.Post("/verify-otp", authH.VerifyOTP)
			})
			r.Post("/reset-password", authH.ResetPassword)
			r.With(requireAuth).Get("/getUserData", authH.GetUserData)
		})

		r.Get("/uploads/{name}", profileH.ServeImage)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Put("/profile/{id}", profileH.Update)
			r.Post("/doctors/{id}/upload-image", profileH.UploadImage)

			r.Get("/data/speciality", bookingH.Doctors)
			r.Get("/data/timeslot/{doctorId}", bookingH.TimeSlots)
			r.Post("/data/book-appointment", bookingH.Book)
			r.Get("/data/your-appointment", bookingH.Appointments)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Route not found")
	})

	return r
}
