package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
	"github.com/iliyamo/realestate-listing/internal/repository"
)

// langCookie persists the visitor's language choice across anonymous visits.
const langCookie = "lang"

// ResolveLocale picks the response language for every request and stores it
// under "lang" in the echo context. The chain, strongest first: the signed-in
// user's saved profile language, the lang cookie, the site default, then the
// Accept-Language header. Responses advertise the outcome via Content-Language
// and X-Text-Direction so clients can flip layout for Arabic, and the cookie
// is rewritten on every request to keep it fresh.
//
// Until the language table has been loaded once the request passes through
// untranslated rather than guessing at a half-configured locale set.
func ResolveLocale(store *i18n.Store, users *repository.UserRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			res, ready := store.Resolver(c.Request().Context())
			if !ready {
				return next(c)
			}

			var profileLang string
			if uid, ok := localeUserID(c); ok && users != nil {
				if l, err := users.Language(c.Request().Context(), uid); err == nil {
					profileLang = l
				}
			}

			var cookieLang string
			if ck, err := c.Cookie(langCookie); err == nil {
				cookieLang = ck.Value
			}

			lang := res.Resolve(profileLang, cookieLang, c.Request().Header.Get("Accept-Language"))

			c.Set("lang", lang)
			c.Response().Header().Set("Content-Language", lang)
			c.Response().Header().Set("X-Text-Direction", i18n.Dir(lang))
			c.SetCookie(&http.Cookie{
				Name:     langCookie,
				Value:    lang,
				Path:     "/",
				Expires:  time.Now().Add(365 * 24 * time.Hour),
				HttpOnly: false,
				SameSite: http.SameSiteLaxMode,
			})

			return next(c)
		}
	}
}

// localeUserID reads the user_id claim set by JWTAuth, if any.
func localeUserID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v > 0 {
			return uint64(v), true
		}
	case uint64:
		if v > 0 {
			return v, true
		}
	case int64:
		if v > 0 {
			return uint64(v), true
		}
	}
	return 0, false
}
