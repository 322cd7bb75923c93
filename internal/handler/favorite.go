package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// FavoriteHandler lets signed-in users save listings for later.
type FavoriteHandler struct {
	Favorites  *repository.FavoriteRepo
	Properties *repository.PropertyRepo
	I18n       *i18n.Store
}

func NewFavoriteHandler(f *repository.FavoriteRepo, p *repository.PropertyRepo, s *i18n.Store) *FavoriteHandler {
	return &FavoriteHandler{Favorites: f, Properties: p, I18n: s}
}

// Add favorites an approved listing. Saving the same listing twice is a no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, propertyID)
	if err != nil || p.Status != repository.StatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}

	if err := h.Favorites.Add(ctx, uid, propertyID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "favorites.add_failed")})
	}
	return c.NoContent(http.StatusNoContent)
}

// Remove unsaves a listing. Removing one that was never saved still succeeds.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Favorites.Remove(ctx, uid, propertyID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "remove failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// List returns the caller's saved listings newest first.
func (h *FavoriteHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, err := h.Favorites.ListByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load favorites failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"favorites": rows})
}
