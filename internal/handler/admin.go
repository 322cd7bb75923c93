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

// AdminHandler bundles the moderation and configuration endpoints. All of it
// sits behind JWTAuth plus RequireRole(ADMIN).
type AdminHandler struct {
	Users      *repository.UserRepo
	Properties *repository.PropertyRepo
	Comments   *repository.CommentRepo
	Reviews    *repository.ReviewRepo
	Languages  *repository.LanguageRepo
	I18n       *i18n.Store
}

func NewAdminHandler(u *repository.UserRepo, p *repository.PropertyRepo, cm *repository.CommentRepo, rv *repository.ReviewRepo, l *repository.LanguageRepo, s *i18n.Store) *AdminHandler {
	return &AdminHandler{Users: u, Properties: p, Comments: cm, Reviews: rv, Languages: l, I18n: s}
}

// ----- users -----

type adminUserResp struct {
	ID       uint64 `json:"id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
	Created  string `json:"created_at"`
}

// ListUsers pages through accounts, optionally filtered by role.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	page, size := pageParams(c, 50, 200)
	role := strings.ToUpper(strings.TrimSpace(c.QueryParam("role")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, err := h.Users.List(ctx, role, size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	out := make([]adminUserResp, 0, len(rows))
	for _, u := range rows {
		out = append(out, adminUserResp{
			ID:       u.ID,
			FullName: u.FullName,
			Username: u.Username,
			Email:    u.Email,
			Phone:    u.Phone,
			Role:     u.Role,
			IsActive: u.IsActive,
			Created:  u.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out, "page": page, "page_size": size})
}

// SetUserActive enables or disables an account. Disabled accounts cannot log
// in but their listings and comments stay.
func (h *AdminHandler) SetUserActive(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, req.Active); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ----- listing moderation -----

// ListPending returns listings waiting for moderation, oldest first.
func (h *AdminHandler) ListPending(c echo.Context) error {
	page, size := pageParams(c, 50, 200)

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, err := h.Properties.ListByStatus(ctx, repository.StatusPending, size, (page-1)*size)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load listings failed"})
	}
	out := make([]propertyResp, 0, len(rows))
	for _, p := range rows {
		out = append(out, toPropertyResp(p))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "page": page, "page_size": size})
}

// Moderate approves or rejects a pending listing.
func (h *AdminHandler) Moderate(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Decision string `json:"decision"` // approve | reject
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var status string
	switch strings.ToLower(strings.TrimSpace(req.Decision)) {
	case "approve":
		status = repository.StatusApproved
	case "reject":
		status = repository.StatusRejected
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "decision must be approve or reject"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Properties.SetStatus(ctx, id, status); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": status})
}

// DeleteProperty removes any listing regardless of owner.
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Properties.Delete(ctx, id, 0, true); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Stats summarizes platform activity for the dashboard.
func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	byRole, err := h.Users.CountByRole(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	byStatus, err := h.Properties.CountByStatus(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	comments, err := h.Comments.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}
	reviews, err := h.Reviews.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "stats failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"users_by_role":        byRole,
		"properties_by_status": byStatus,
		"comments":             comments,
		"reviews":              reviews,
	})
}

// ----- language configuration -----

// ListLanguages returns every configured language row, enabled or not.
func (h *AdminHandler) ListLanguages(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	rows, err := h.Languages.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load languages failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"languages": rows})
}

// SetLanguageEnabled toggles a language on or off. Changes take effect for
// new requests as soon as the resolver cache refreshes.
func (h *AdminHandler) SetLanguageEnabled(c echo.Context) error {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))
	var req struct {
		Enabled bool `json:"enabled"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Languages.SetEnabled(ctx, code, req.Enabled); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown language"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.I18n.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// SetDefaultLanguage changes the site-wide fallback language.
func (h *AdminHandler) SetDefaultLanguage(c echo.Context) error {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Languages.SetDefault(ctx, code); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown language"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	h.I18n.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// UpsertTranslation overrides one catalog message for a language.
func (h *AdminHandler) UpsertTranslation(c echo.Context) error {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))
	var req struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Key) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key and value required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Languages.UpsertTranslation(ctx, code, strings.TrimSpace(req.Key), req.Value); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "save failed"})
	}
	h.I18n.Invalidate()
	return c.NoContent(http.StatusNoContent)
}

// DeleteTranslation drops an override, falling back to the builtin message.
func (h *AdminHandler) DeleteTranslation(c echo.Context) error {
	code := strings.ToLower(strings.TrimSpace(c.Param("code")))
	key := strings.TrimSpace(c.QueryParam("key"))
	if key == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "key required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	if err := h.Languages.DeleteTranslation(ctx, code, key); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	h.I18n.Invalidate()
	return c.NoContent(http.StatusNoContent)
}
