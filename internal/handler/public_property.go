package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// PublicPropertyHandler serves the anonymous browse endpoints. Only approved
// listings are visible here.
type PublicPropertyHandler struct {
	Properties *repository.PropertyRepo
	Reviews    *repository.ReviewRepo
	I18n       *i18n.Store
}

func NewPublicPropertyHandler(p *repository.PropertyRepo, r *repository.ReviewRepo, s *i18n.Store) *PublicPropertyHandler {
	return &PublicPropertyHandler{Properties: p, Reviews: r, I18n: s}
}

// propertyResp is the full listing payload shared by public detail and the
// seller dashboard.
type propertyResp struct {
	ID           uint64  `json:"id"`
	OwnerID      uint64  `json:"owner_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	PropertyType string  `json:"property_type"`
	Purpose      string  `json:"purpose"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	City         string  `json:"city"`
	District     string  `json:"district"`
	AreaM2       uint32  `json:"area_m2"`
	Bedrooms     uint8   `json:"bedrooms"`
	Bathrooms    uint8   `json:"bathrooms"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

func toPropertyResp(p repository.Property) propertyResp {
	return propertyResp{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Title:        p.Title,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Purpose:      p.Purpose,
		Price:        p.Price,
		Currency:     p.Currency,
		City:         p.City,
		District:     p.District,
		AreaM2:       p.AreaM2,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Lat:          p.Lat,
		Lng:          p.Lng,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// Search lists approved properties matching the query filters.
func (h *PublicPropertyHandler) Search(c echo.Context) error {
	page, size := pageParams(c, 20, 100)
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)
	bedrooms, _ := strconv.Atoi(c.QueryParam("bedrooms"))

	q := repository.PropertySearchQuery{
		City:     c.QueryParam("city"),
		District: c.QueryParam("district"),
		Type:     c.QueryParam("type"),
		Purpose:  c.QueryParam("purpose"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Bedrooms: bedrooms,
		Page:     page,
		PageSize: size,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, total, err := h.Properties.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":     rows,
		"total":     total,
		"page":      page,
		"page_size": size,
	})
}

// Detail returns one approved listing with its review summary. Pending and
// rejected listings look like they do not exist.
func (h *PublicPropertyHandler) Detail(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil || p.Status != repository.StatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}

	reviews, avg, err := h.Reviews.ListByProperty(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"property":       toPropertyResp(p),
		"reviews":        reviews,
		"average_rating": avg,
	})
}
