package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/queue"
	"github.com/iliyamo/realestate-listing/internal/repository"
	queue_publisher "github.com/iliyamo/realestate-listing/internal/service"
	"github.com/iliyamo/realestate-listing/internal/utils"
)

// previewRunes is how much of a comment body ends up in the owner's
// notification preview.
const previewRunes = 42

// CommentHandler serves the discussion thread under a listing.
type CommentHandler struct {
	Comments   *repository.CommentRepo
	Properties *repository.PropertyRepo
	Users      *repository.UserRepo
	I18n       *i18n.Store
}

func NewCommentHandler(cm *repository.CommentRepo, p *repository.PropertyRepo, u *repository.UserRepo, s *i18n.Store) *CommentHandler {
	return &CommentHandler{Comments: cm, Properties: p, Users: u, I18n: s}
}

type commentReq struct {
	Body string `json:"body"`
}

// cleanBody applies the content policy: digits are stripped everywhere so
// comments cannot smuggle phone numbers past the contact flow. Returns the
// cleaned body and the catalog key of the rejection, if any.
func cleanBody(raw string) (string, string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "comments.empty"
	}
	if !utils.ContainsDigits(trimmed) {
		return trimmed, ""
	}
	cleaned := strings.TrimSpace(utils.StripDigits(trimmed))
	if cleaned == "" {
		// The body was nothing but digits.
		return "", "comments.digits"
	}
	return cleaned, ""
}

// List returns the property's comments as a nested forest, replies under
// their parents, ordered oldest first at every level.
func (h *CommentHandler) List(c echo.Context) error {
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

	rows, err := h.Comments.ListByProperty(ctx, propertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load comments failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"comments": repository.BuildForest(rows)})
}

// Create posts a top-level comment on an approved listing and notifies the
// owner unless they are commenting on their own property.
func (h *CommentHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body, rejectKey := cleanBody(req.Body)
	if rejectKey != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg(h.I18n, c, rejectKey)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, propertyID)
	if err != nil || p.Status != repository.StatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}

	id, err := h.Comments.Create(ctx, propertyID, uid, body)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "comments.create_failed")})
	}

	h.notifyOwner(ctx, id, propertyID, p.OwnerID, uid, body)

	return c.JSON(http.StatusCreated, echo.Map{"id": id, "body": body})
}

// Reply posts a nested reply under an existing comment. The reply inherits
// the parent's property, and the listing must still be approved: a reply on
// a parent whose listing was since rejected or archived is refused the same
// way a fresh comment would be. Owner notification works the same as for
// top-level comments.
func (h *CommentHandler) Reply(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	parentID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req commentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	body, rejectKey := cleanBody(req.Body)
	if rejectKey != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg(h.I18n, c, rejectKey)})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeoutSec*time.Second)
	defer cancel()

	propertyID, err := h.Comments.PropertyOf(ctx, parentID)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "comments.parent_missing")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "comments.create_failed")})
	}
	p, err := h.Properties.GetByID(ctx, propertyID)
	if err != nil || p.Status != repository.StatusApproved {
		return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "properties.not_found")})
	}

	id, _, err := h.Comments.CreateReply(ctx, parentID, uid, body)
	if err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": msg(h.I18n, c, "comments.parent_missing")})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "comments.create_failed")})
	}

	h.notifyOwner(ctx, id, propertyID, p.OwnerID, uid, body)

	return c.JSON(http.StatusCreated, echo.Map{"id": id, "body": body})
}

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(c echo.Context) error {
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

	if err := h.Comments.Delete(ctx, id, uid); err != nil {
		switch err {
		case repository.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "comment not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your comment"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": msg(h.I18n, c, "comments.delete_failed")})
	}
	return c.NoContent(http.StatusNoContent)
}

// notifyOwner publishes a comment.posted event unless the commenter owns the
// listing. Publish failures only cost the notification, never the comment.
func (h *CommentHandler) notifyOwner(ctx context.Context, commentID, propertyID, ownerID, actorID uint64, body string) {
	if ownerID == actorID {
		return
	}
	actorName := ""
	if u, err := h.Users.GetByID(ctx, actorID); err == nil {
		actorName = u.FullName
	}
	_ = queue_publisher.PublishCommentPosted(ctx, queue.CommentPostedEvent{
		CommentID:  commentID,
		PropertyID: propertyID,
		OwnerID:    ownerID,
		ActorID:    actorID,
		ActorName:  actorName,
		Preview:    utils.TruncateRunes(body, previewRunes),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	})
}
