package setup

import (
	"github.com/nitespot-dev/nitespot/internal/handler"
	"github.com/nitespot-dev/nitespot/internal/service"
	"github.com/nitespot-dev/nitespot/internal/storage/fs"
	"github.com/nitespot-dev/nitespot/internal/storage/pg"
	"github.com/nitespot-dev/nitespot/shared/config"
	"github.com/nitespot-dev/nitespot/shared/jwt"
	mw "github.com/nitespot-dev/nitespot/shared/middleware"
)

// Dependencies holds everything the router and main need.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *mw.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	files, err := fs.New(cfg.Public.MediaRoot)
	if err != nil {
		storage.Cleanup()
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	venue := service.NewVenue(storage)
	comment := service.NewComment(storage, storage, cfg.Public.CommentsPerPage)
	booking := service.NewBooking(storage, storage, cfg.Public.RecentBookings, cfg.Public.BookingsPerPage)
	event := service.NewEvent(storage, storage)
	user := service.NewUser(storage, storage)
	media := service.NewMedia(files, storage, cfg.Public.MediaBaseURL, cfg.Public.MaxAvatarBytes, cfg.Public.AvatarMaxPixels)
	analytics := service.NewAnalytics(storage, cfg.Public.TopVenues, cfg.Public.RecentBookings)

	h := handler.New(auth, venue, comment, booking, event, user, media, analytics, storage, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: mw.NewAuth(jwtService, cfg.Public.SecureCookies),
	}, nil
}
