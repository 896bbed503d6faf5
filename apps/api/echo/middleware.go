package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// scopeMiddleware gates a route on the caller's token carrying the scope.
func scopeMiddleware(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			if claims.HasScope(scope) {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
