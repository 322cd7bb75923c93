package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// ProfileHandler serves the signed-in user's own profile.
type ProfileHandler struct {
	Users *repository.UserRepo
	I18n  *i18n.Store
}

func NewProfileHandler(u *repository.UserRepo, s *i18n.Store) *ProfileHandler {
	return &ProfileHandler{Users: u, I18n: s}
}

type profileResp struct {
	ID        uint64 `json:"id"`
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Whatsapp  string `json:"whatsapp,omitempty"`
	Role      string `json:"role"`
	Language  string `json:"language,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	CreatedAt string `json:"created_at"`
}

type profileUpdateReq struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Whatsapp  *string `json:"whatsapp"`
	AvatarURL *string `json:"avatar_url"`
}

type languageReq struct {
	Language string `json:"language"`
}

// Get returns the caller's profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	return c.JSON(http.StatusOK, profileResp{
		ID:        u.ID,
		FullName:  u.FullName,
		Username:  u.Username,
		Email:     u.Email,
		Phone:     u.Phone,
		Whatsapp:  u.Whatsapp.String,
		Role:      u.Role,
		Language:  u.Language.String,
		AvatarURL: u.AvatarURL.String,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// Update edits the caller's profile fields. Absent fields stay untouched.
func (h *ProfileHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req profileUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	err = h.Users.UpdateProfile(ctx, uid, repository.ProfileUpdate{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Whatsapp:  req.Whatsapp,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			field := dup.Field
			if field == "" {
				field = "phone"
			}
			return c.JSON(http.StatusConflict, echo.Map{"error": field + " already in use"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// SetLanguage switches the caller's language. The cookie is always set so the
// choice takes effect immediately; persisting it on the profile is best
// effort and a failure only costs cross-device stickiness.
func (h *ProfileHandler) SetLanguage(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req languageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	lang := strings.ToLower(strings.TrimSpace(req.Language))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if res, ready := h.I18n.Resolver(ctx); !ready || !res.IsEnabled(lang) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "language not available"})
	}

	c.SetCookie(&http.Cookie{
		Name:     "lang",
		Value:    lang,
		Path:     "/",
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	if err := h.Users.SetLanguage(ctx, uid, lang); err != nil {
		log.Printf("profile: persist language for user %d failed: %v", uid, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"language":  lang,
		"direction": i18n.Dir(lang),
		"message":   h.I18n.T(ctx, lang, "language.updated"),
	})
}
