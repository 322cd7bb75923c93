package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/handler"
	"github.com/iliyamo/realestate-listing/internal/middleware"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance. Currently it exposes only a health check, used by
// load balancers to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication endpoints and the protected /v1/me
// routes. Unauthenticated operations live under /v1/auth; everything behind a
// token lives under /v1. The locale middleware runs after JWTAuth inside the
// protected group so the resolver can see the caller's saved language.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, pr *handler.ProfileHandler, jwtSecret string, locale echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", locale)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout accepts either a bearer token (all sessions) or a refresh_token
	// body (one session), so it is mounted outside the JWT middleware.
	g.POST("/logout", a.Logout)
	// Single-shot live validation probe for the signup form.
	g.POST("/check-availability", a.CheckAvailability)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(locale)
	auth.GET("/me", a.Me)
	auth.GET("/me/profile", pr.Get)
	auth.PUT("/me/profile", pr.Update)
	// Switching language always sets the cookie; the profile column is best
	// effort so the switch works even during a database hiccup.
	auth.PUT("/me/language", pr.SetLanguage)

	// Same handler reachable without the auth group, refresh token in body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the anonymous browse endpoints: listing search,
// listing detail and the read side of comments and reviews. These responses
// are localized, so the locale middleware runs before the response cache and
// the cache key varies by language.
func RegisterPublic(e *echo.Echo, pp *handler.PublicPropertyHandler, cm *handler.CommentHandler, rv *handler.ReviewHandler, locale, cache echo.MiddlewareFunc) {
	g := e.Group("/v1", locale, cache)
	g.GET("/properties", pp.Search)
	g.GET("/properties/:id", pp.Detail)
	g.GET("/properties/:id/comments", cm.List)
	g.GET("/properties/:id/reviews", rv.List)
}

// RegisterUser registers the endpoints available to every signed-in account:
// favorites, the notification feed, and the write side of comments and
// reviews.
func RegisterUser(e *echo.Echo, jwtSecret string, locale echo.MiddlewareFunc,
	fv *handler.FavoriteHandler, nt *handler.NotificationHandler,
	cm *handler.CommentHandler, rv *handler.ReviewHandler) {

	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(locale)
	g.Use(middleware.RequireRole(
		repository.RoleClient,
		repository.RoleAgent,
		repository.RolePropertyOwner,
		repository.RoleRealEstateOffice,
		repository.RoleAdmin,
	))

	g.POST("/properties/:id/favorite", fv.Add)
	g.DELETE("/properties/:id/favorite", fv.Remove)
	g.GET("/me/favorites", fv.List)

	g.GET("/me/notifications", nt.List)
	g.GET("/me/notifications/unread-count", nt.UnreadCount)
	g.PUT("/me/notifications/:id/read", nt.MarkRead)
	g.PUT("/me/notifications/read-all", nt.MarkAllRead)

	g.POST("/properties/:id/comments", cm.Create)
	g.POST("/comments/:id/replies", cm.Reply)
	g.DELETE("/comments/:id", cm.Delete)

	g.POST("/properties/:id/reviews", rv.Create)
	g.DELETE("/reviews/:id", rv.Delete)
}
