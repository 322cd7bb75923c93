package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// ReviewHandler serves star ratings on listings. One review per user per
// listing; the unique index makes that stick even under races.
type ReviewHandler struct {
	Reviews    *repository.ReviewRepo
	Properties *repository.PropertyRepo
	I18n       *i18n.Store
}

func NewReviewHandler(r *repository.ReviewRepo, p *repository.PropertyRepo, s *i18n.Store) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Properties: p, I18n: s}
}

type reviewReq struct {
	Stars int    `json:"stars"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Create posts a review on an approved listing.
func (h *ReviewHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Stars < 1 || req.Stars > 5 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "stars must be 1-5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, propertyID)
	if err != nil || p.Status != repository.StatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}

	id, err := h.Reviews.Create(ctx, propertyID, uid, req.Stars, strings.TrimSpace(req.Title), strings.TrimSpace(req.Body))
	if err != nil {
		if err == repository.ErrDuplicate {
			return c.JSON(http.StatusConflict, echo.Map{"error": msg(h.I18n, c, "reviews.duplicate")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "reviews.create_failed")})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// List returns a listing's reviews plus the average rating.
func (h *ReviewHandler) List(c echo.Context) error {
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, avg, err := h.Reviews.ListByProperty(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reviews": rows, "average_rating": avg})
}

// Delete removes the caller's review; admins can remove anyone's.
func (h *ReviewHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	admin := currentRole(c) == repository.RoleAdmin
	if err := h.Reviews.Delete(ctx, id, uid, admin); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your review"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
