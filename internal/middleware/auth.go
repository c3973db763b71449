package middleware

import (
	"net/http"
	"strings"

	"multilazos/internal/apierror"
	"multilazos/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ClaimsKey = "claims"
	ActorKey  = "actor"
)

// Sesion reads the session token from the cookie or a Bearer header and sets
// the actor. Requests without a valid session are not rejected: they act as
// defaultActor.
func Sesion(secret, cookie, defaultActor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ActorKey, defaultActor)

		tokenStr := ""
		if v, err := c.Cookie(cookie); err == nil {
			tokenStr = v
		}
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenStr = strings.TrimPrefix(header, "Bearer ")
		}
		if tokenStr == "" {
			c.Next()
			return
		}

		claims, err := service.LeerSesion(secret, tokenStr)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ClaimsKey, claims)
		c.Set(ActorKey, claims.Username)
		c.Next()
	}
}

// RequireSesion rejects requests that carry no valid session.
func RequireSesion() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetClaims(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Autenticacion requerida"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the session claims, or nil for anonymous requests.
func GetClaims(c *gin.Context) *service.SesionClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.SesionClaims)
	return claims
}

// Actor returns the username stamped on writes made by this request.
func Actor(c *gin.Context) string {
	return c.GetString(ActorKey)
}
