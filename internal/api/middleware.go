package api

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"storefront/internal/service"
)

// AdminTokenMiddleware gates the admin group behind the session token.
// A missing token answers 401, a present-but-invalid or expired one 403.
func AdminTokenMiddleware(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(service.JwtCustomClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return c.JSON(401, map[string]string{"error": "unauthorized"})
			}
			return c.JSON(403, map[string]string{"error": "invalid token"})
		},
	})
}
