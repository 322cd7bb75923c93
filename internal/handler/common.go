package handler // handler defines http handlers

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/realestate-listing/internal/i18n"
)

// dbTimeout bounds every repository call made from a handler.
const dbTimeoutSec = 5

// getUserID extracts the user_id claim from echo.Context and converts it to uint64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentRole returns the role claim set by the auth middleware.
func currentRole(c echo.Context) string {
	r, _ := c.Get("role").(string)
	return r
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// requestLang returns the language resolved by the locale middleware,
// falling back to English when the middleware did not run.
func requestLang(c echo.Context) string {
	if l, ok := c.Get("lang").(string); ok && l != "" {
		return l
	}
	return i18n.LangEnglish
}

// msg translates a catalog key into the request language.
func msg(store *i18n.Store, c echo.Context, key string) string {
	return store.T(c.Request().Context(), requestLang(c), key)
}

// pageParams reads page/page_size query parameters with sane bounds.
func pageParams(c echo.Context, defSize, maxSize int) (page, size int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	size, _ = strconv.Atoi(c.QueryParam("page_size"))
	if size < 1 {
		size = defSize
	}
	if size > maxSize {
		size = maxSize
	}
	return page, size
}
