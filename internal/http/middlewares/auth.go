package middleware

import (
	"github.com/labstack/echo/v4"

	"kanban-board.com/kanban-board/internal/auth"
)

const userIDKey = "userID"

type TokenVerifier interface {
	Verify(token string) (string, error)
}

// Authenticate rejects requests without a valid bearer token and stores the
// caller's id for UserID.
func Authenticate(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := auth.BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return err
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				return err
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated caller, or "" on public routes.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
