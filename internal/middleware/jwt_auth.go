package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/LackyKannauje/college-updates/internal/apperrors"
)

const userIDKey = "userID"

// Authenticator resolves a session token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// JWTAuthMiddleware rejects requests without a valid session token and stores
// the caller's user id in the context.
//
// The token is read from "Authorization: Bearer <token>", then the
// x-auth-token header, then the token cookie.
func JWTAuthMiddleware(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := auth.Authenticate(c.Request().Context(), tokenFromRequest(c))
			if err != nil {
				return apperrors.ToHTTP(err)
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller's id set by JWTAuthMiddleware.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

func tokenFromRequest(c echo.Context) string {
	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if token := c.Request().Header.Get("x-auth-token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}
