package router

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nitespot-dev/nitespot/internal/setup"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
	"github.com/nitespot-dev/nitespot/shared/middleware/metrics"
	rl "github.com/nitespot-dev/nitespot/shared/middleware/ratelimiter"
)

// New creates and configures the mux router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that subrouter
func New(deps *setup.Dependencies) *mux.Router {
	r := mux.NewRouter()

	r.Use(handlers.CompressHandler)
	r.Use(metrics.Middleware)

	r.Use(handlers.CORS(
		handlers.AllowedOrigins(deps.Config.Public.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		handlers.AllowCredentials(),
	))

	// JSON API only, no scripts/styles needed
	apiCSP := "default-src 'none'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, apiCSP))

	// Wildcard OPTIONS handler to avoid 404s for preflight requests
	r.Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/ready", h.Ready).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	r.HandleFunc("/media/{path:.*}", h.GetMedia).Methods("GET")

	v1 := r.PathPrefix("/v1").Subrouter()

	// Auth routes
	auth := v1.PathPrefix("/auth").Subrouter()

	authRegister := auth.NewRoute().Subrouter()
	authRegister.Use(mw.RateLimit(rl.New(1.0/10, 1, 1*time.Hour), mw.GetIP)) // 1 per 10s by IP
	authRegister.Use(mw.GlobalRateLimit(rl.Rps100()))
	authRegister.HandleFunc("/register", h.Register).Methods("POST")

	authLogin := auth.NewRoute().Subrouter()
	authLogin.Use(mw.RateLimit(rl.OnceInSecond(), mw.GetIP))
	authLogin.Use(mw.GlobalRateLimit(rl.Rps1000()))
	authLogin.HandleFunc("/login", h.Login).Methods("POST")

	auth.HandleFunc("/logout", h.Logout).Methods("POST")

	// Public discovery routes; OptionalAuth so a logged-in viewer is
	// visible to handlers without requiring one
	public := v1.NewRoute().Subrouter()
	public.Use(authMw.OptionalAuth())
	public.HandleFunc("/venues", h.GetVenues).Methods("GET")
	public.HandleFunc("/venues/{venue}", h.GetVenue).Methods("GET")
	public.HandleFunc("/venues/{venue}/comments", h.GetComments).Methods("GET")
	public.HandleFunc("/events", h.GetEvents).Methods("GET")
	public.HandleFunc("/events/{event}", h.GetEvent).Methods("GET")
	public.HandleFunc("/events/{event}/comments", h.GetComments).Methods("GET")

	// Logged-in routes
	loggedIn := v1.NewRoute().Subrouter()
	loggedIn.Use(authMw.NeedAuth())
	loggedIn.Use(mw.RateLimit(rl.Rps100(), mw.GetUserIDFromContext)) // 100 RPS per user

	loggedIn.HandleFunc("/venues/{venue}/comments", h.CreateComment).Methods("POST")
	loggedIn.HandleFunc("/events/{event}/comments", h.CreateComment).Methods("POST")
	loggedIn.HandleFunc("/venues/{venue}/comments/{comment}", h.UpdateComment).Methods("PUT")
	loggedIn.HandleFunc("/venues/{venue}/comments/{comment}", h.DeleteComment).Methods("DELETE")
	loggedIn.HandleFunc("/events/{event}/comments/{comment}", h.UpdateComment).Methods("PUT")
	loggedIn.HandleFunc("/events/{event}/comments/{comment}", h.DeleteComment).Methods("DELETE")

	loggedIn.HandleFunc("/venues/{venue}/bookings", h.CreateBooking).Methods("POST")
	loggedIn.HandleFunc("/venues/{venue}/bookings", h.GetVenueBookings).Methods("GET")
	loggedIn.HandleFunc("/bookings/{booking}", h.CancelBooking).Methods("DELETE")

	loggedIn.HandleFunc("/events", h.CreateEvent).Methods("POST")
	loggedIn.HandleFunc("/events/{event}", h.UpdateEvent).Methods("PUT")
	loggedIn.HandleFunc("/events/{event}", h.DeleteEvent).Methods("DELETE")

	loggedIn.HandleFunc("/me", h.GetProfile).Methods("GET")
	loggedIn.HandleFunc("/me", h.UpdateProfile).Methods("PUT")
	loggedIn.HandleFunc("/me/avatar", h.UploadAvatar).Methods("POST")
	loggedIn.HandleFunc("/me/bookings", h.GetMyBookings).Methods("GET")
	loggedIn.HandleFunc("/me/bookmarks", h.GetBookmarks).Methods("GET")
	loggedIn.HandleFunc("/me/bookmarks/{event}", h.AddBookmark).Methods("PUT")
	loggedIn.HandleFunc("/me/bookmarks/{event}", h.RemoveBookmark).Methods("DELETE")

	// Admin routes
	admin := v1.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.AdminOnly())
	admin.HandleFunc("/venues", h.CreateVenue).Methods("POST")
	admin.HandleFunc("/venues/{venue}", h.UpdateVenue).Methods("PUT")
	admin.HandleFunc("/venues/{venue}", h.DeleteVenue).Methods("DELETE")
	admin.HandleFunc("/users", h.GetUsers).Methods("GET")
	admin.HandleFunc("/users/{user}/role", h.SetUserRole).Methods("PUT")
	admin.HandleFunc("/users/{user}/venues", h.AssignVenue).Methods("POST")
	admin.HandleFunc("/users/{user}/venues/{venue}", h.UnassignVenue).Methods("DELETE")
	admin.HandleFunc("/bookings", h.GetAllBookings).Methods("GET")
	admin.HandleFunc("/analytics", h.GetAnalytics).Methods("GET")

	return r
}
