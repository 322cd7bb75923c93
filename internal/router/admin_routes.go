package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/handler"
	"github.com/iliyamo/realestate-listing/internal/middleware"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// RegisterAdmin registers the moderation and configuration endpoints. Only
// accounts with the ADMIN role pass the role gate.
func RegisterAdmin(e *echo.Echo, ad *handler.AdminHandler, jwtSecret string, locale echo.MiddlewareFunc) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(locale)
	g.Use(middleware.RequireRole(repository.RoleAdmin))

	g.GET("/users", ad.ListUsers)
	g.PUT("/users/:id/active", ad.SetUserActive)

	g.GET("/properties/pending", ad.ListPending)
	g.PUT("/properties/:id/moderate", ad.Moderate)
	g.DELETE("/properties/:id", ad.DeleteProperty)

	g.GET("/stats", ad.Stats)

	g.GET("/languages", ad.ListLanguages)
	g.PUT("/languages/:code/enabled", ad.SetLanguageEnabled)
	g.PUT("/languages/:code/default", ad.SetDefaultLanguage)
	g.PUT("/languages/:code/translations", ad.UpsertTranslation)
	g.DELETE("/languages/:code/translations", ad.DeleteTranslation)
}
