package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	cfgpkg "github.com/waoafrica/backoffice/pkg/config"
	"github.com/waoafrica/backoffice/pkg/logctx"
	"github.com/waoafrica/backoffice/pkg/response"
)

// AdminAuthMiddleware guards admin routes with a bearer JWT issued by the
// identity service. Only HS256 tokens signed with the shared secret pass; the
// subject claim is exposed as "user_id" for request-scoped logging.
func AdminAuthMiddleware(cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "missing bearer token"))
			return
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(cfg.Auth.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorT[any](response.APIResponseCodeUnauthorized, "invalid token"))
			return
		}

		if sub, err := token.Claims.GetSubject(); err == nil && sub != "" {
			c.Set("user_id", sub)
			c.Request = c.Request.WithContext(logctx.WithUserID(c.Request.Context(), sub))
		}
		c.Next()
	}
}
