package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nitespot-dev/nitespot/shared/domain"
	jwt_internal "github.com/nitespot-dev/nitespot/shared/jwt"
	"github.com/nitespot-dev/nitespot/shared/logger"
	"github.com/nitespot-dev/nitespot/shared/utils"
)

// Key to store the viewer claims in the request context
type key int

const ViewerKey key = 0

// Auth holds dependencies for authentication middleware
type Auth struct {
	jwtService    jwt_internal.JwtService
	secureCookies bool
}

func NewAuth(jwtService jwt_internal.JwtService, secureCookies bool) *Auth {
	return &Auth{jwtService: jwtService, secureCookies: secureCookies}
}

// NeedAuth returns middleware that requires authentication
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return a.auth(false)
}

// AdminOnly returns middleware that requires admin authentication
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return a.auth(true)
}

// OptionalAuth populates the viewer context if a valid token is present but never rejects
func (a *Auth) OptionalAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if viewer, err := a.extractViewer(r); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ViewerKey, viewer))
			}
			next.ServeHTTP(w, r)
		})
	}
}

var (
	errNoToken       = errorString("no token")
	errInvalidClaims = errorString("invalid claims")
)

type errorString string

func (e errorString) Error() string { return string(e) }

// extractViewer extracts and validates the caller from the JWT in the request.
// Cookie first (browser clients), Authorization header second (mobile/API).
func (a *Auth) extractViewer(r *http.Request) (*domain.Viewer, error) {
	var tokenString string
	accessCookie, err := r.Cookie("accessToken")
	if err == nil {
		tokenString = accessCookie.Value
	} else if token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); found {
		tokenString = token
	}

	if tokenString == "" {
		return nil, errNoToken
	}

	token, err := a.jwtService.DecodeToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidClaims
	}

	uid, ok := claims["uid"].(string)
	if !ok || uid == "" {
		return nil, errInvalidClaims
	}
	email, ok := claims["email"].(string)
	if !ok {
		return nil, errInvalidClaims
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, errInvalidClaims
	}

	return &domain.Viewer{Id: uid, Email: email, Role: role}, nil
}

func (a *Auth) auth(adminOnly bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, err := a.extractViewer(r)
			if err != nil {
				switch err {
				case errNoToken:
					http.Error(w, "Please sign-in", http.StatusUnauthorized)
				case errInvalidClaims:
					logger.Log.Error("invalid jwt claims")
					http.Error(w, "Invalid token", http.StatusUnauthorized)
				default:
					utils.WriteErrorAndStatusCode(w, err)
				}
				return
			}

			if adminOnly && !viewer.Admin() {
				http.Error(w, "Access denied. Only for admin", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ViewerKey, viewer)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetViewerFromContext retrieves the authenticated caller from the context
func GetViewerFromContext(r *http.Request) *domain.Viewer {
	viewer, ok := r.Context().Value(ViewerKey).(*domain.Viewer)
	if !ok {
		return nil
	}
	return viewer
}

// WithViewer injects a viewer into the request context; test helper for handlers
func WithViewer(r *http.Request, viewer *domain.Viewer) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), ViewerKey, viewer))
}
