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

// SellerPropertyHandler lets seller-like accounts manage their own listings.
// Everything here sits behind JWTAuth plus a seller role check.
type SellerPropertyHandler struct {
	Properties *repository.PropertyRepo
	I18n       *i18n.Store
}

func NewSellerPropertyHandler(p *repository.PropertyRepo, s *i18n.Store) *SellerPropertyHandler {
	return &SellerPropertyHandler{Properties: p, I18n: s}
}

type propertyReq struct {
	Title        string  `json:"title" validate:"required,min=5,max=200"`
	Description  string  `json:"description" validate:"required,min=20"`
	PropertyType string  `json:"property_type" validate:"required,oneof=apartment house villa land office"`
	Purpose      string  `json:"purpose" validate:"required,oneof=sale rent"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Currency     string  `json:"currency" validate:"required,len=3"`
	City         string  `json:"city" validate:"required"`
	District     string  `json:"district"`
	AreaM2       uint32  `json:"area_m2" validate:"required,gt=0"`
	Bedrooms     uint8   `json:"bedrooms"`
	Bathrooms    uint8   `json:"bathrooms"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
}

func (req propertyReq) toProperty(ownerID uint64) repository.Property {
	return repository.Property{
		OwnerID:      ownerID,
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		PropertyType: req.PropertyType,
		Purpose:      req.Purpose,
		Price:        req.Price,
		Currency:     strings.ToUpper(req.Currency),
		City:         strings.TrimSpace(req.City),
		District:     strings.TrimSpace(req.District),
		AreaM2:       req.AreaM2,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Lat:          req.Lat,
		Lng:          req.Lng,
	}
}

// Create submits a new listing. It starts in pending state and shows up
// publicly only after an admin approves it.
func (h *SellerPropertyHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	id, err := h.Properties.Create(ctx, req.toProperty(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "status": repository.StatusPending})
}

// List returns the caller's own listings in every state.
func (h *SellerPropertyHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	page, size := pageParams(c, 20, 100)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, err := h.Properties.ListByOwner(ctx, uid, size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listings failed"})
	}
	out := make([]propertyResp, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPropertyResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "page": page, "page_size": size})
}

// Get returns one of the caller's listings regardless of moderation state.
func (h *SellerPropertyHandler) Get(c echo.Context) error {
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

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}
	if p.OwnerID != uid {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
	}
	return c.JSON(http.StatusOK, toPropertyResp(p))
}

// Update edits one of the caller's listings. Edits send the listing back to
// pending so changed content gets re-moderated.
func (h *SellerPropertyHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req propertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Properties.Update(ctx, id, uid, req.toProperty(uid)); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": repository.StatusPending})
}

// Delete removes one of the caller's listings.
func (h *SellerPropertyHandler) Delete(c echo.Context) error {
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

	if err := h.Properties.Delete(ctx, id, uid, false); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your listing"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
