package auth

import (
	"errors"
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "taskboard/internal/errors"
)

// ContextKey is where the gate stores verified *Claims on the echo context.
const ContextKey = "user"

// bearerPrefix is matched case-sensitively.
const bearerPrefix = "Bearer "

// Middleware returns the bearer-token gate for protected routes. Requests
// without an "Authorization: Bearer <token>" header are rejected with
// ErrNoToken; tokens that fail verification, including an empty one, with
// ErrInvalidToken.
func Middleware(verifier TokenVerifier) echo.MiddlewareFunc {
	gate := echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":" + bearerPrefix,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return verifier.Verify(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var extractErr *echojwt.TokenExtractionError
			if errors.As(err, &extractErr) {
				return reject(apperrors.ErrNoToken)
			}
			return reject(apperrors.ErrInvalidToken)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		verified := gate(next)
		return func(c echo.Context) error {
			token, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), bearerPrefix)
			if !ok {
				return reject(apperrors.ErrNoToken)
			}
			if token == "" {
				return reject(apperrors.ErrInvalidToken)
			}
			return verified(c)
		}
	}
}

func reject(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(http.StatusUnauthorized, httpErr.ToErrorResponse())
}

// ClaimsFromContext returns the claims placed by Middleware.
func ClaimsFromContext(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ContextKey).(*Claims)
	return claims, ok && claims != nil
}
