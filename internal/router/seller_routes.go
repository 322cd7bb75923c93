package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/handler"
	"github.com/iliyamo/realestate-listing/internal/middleware"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// RegisterSeller registers the listing management endpoints for seller-like
// accounts (agents, property owners and offices). Clients get a 403 here.
func RegisterSeller(e *echo.Echo, sp *handler.SellerPropertyHandler, jwtSecret string, locale echo.MiddlewareFunc) {
	g := e.Group("/v1/seller")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(locale)
	g.Use(middleware.RequireRole(repository.SellerRoles()...))

	g.POST("/properties", sp.Create)
	g.GET("/properties", sp.List)
	g.GET("/properties/:id", sp.Get)
	g.PUT("/properties/:id", sp.Update)
	g.DELETE("/properties/:id", sp.Delete)
}
