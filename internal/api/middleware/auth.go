package middleware

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Auth validates the identity token and injects the username and email
// claims into the request context. The token is the raw value of the
// Authorization header; there is no Bearer scheme. A missing, malformed or
// expired token uniformly yields 401 — token verification never reaches the
// handler with a partial identity.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := c.Request().Header.Get("Authorization")
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}

			username, _ := claims["username"].(string)
			if username == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not logged in")
			}
			email, _ := claims["email"].(string)

			c.Set("username", username)
			c.Set("email", email)

			return next(c)
		}
	}
}
