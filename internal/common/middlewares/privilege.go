package middlewares

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kliniksentosa/klinik-backend/pkg/utils"
)

// RequireRole memeriksa apakah role pada klaim JWT termasuk salah satu role
// yang diizinkan. Admin selalu lolos.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawClaims := c.Get(string(ContextKeyClaims))
			if rawClaims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Missing or invalid JWT claims",
					"data":    nil,
				})
			}
			claims, ok := rawClaims.(*utils.Claims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"status":  http.StatusUnauthorized,
					"message": "Invalid JWT claims format",
					"data":    nil,
				})
			}

			if claims.Role == "admin" {
				return next(c)
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"status":  http.StatusForbidden,
				"message": "Role " + claims.Role + " tidak memiliki akses",
				"data":    nil,
			})
		}
	}
}
