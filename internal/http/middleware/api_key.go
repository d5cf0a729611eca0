package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	echo "github.com/labstack/echo/v4"
)

// OperatorKeyFromCtx extracts the authenticated operator key set by APIKeyMiddleware.
func OperatorKeyFromCtx(c echo.Context) (string, bool) {
	v := c.Get("operator_key")
	key, ok := v.(string)
	return key, ok
}

// APIKeyMiddleware authenticates trigger calls using the X-API-Key header
// against the configured operator keys. The run endpoint mutates reminder
// state, so unauthenticated invocation is never allowed.
func APIKeyMiddleware(keys []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			got := strings.TrimSpace(c.Request().Header.Get("X-API-Key"))
			if got == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing api key"})
			}
			for _, k := range keys {
				if len(k) == len(got) && subtle.ConstantTimeCompare([]byte(k), []byte(got)) == 1 {
					c.Set("operator_key", k)
					return next(c)
				}
			}
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid api key"})
		}
	}
}
