package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GinAuthenticate adapts the net/http Authenticate middleware to Gin so
// the principal is available to handlers through the request context.
func GinAuthenticate(auth *AuthMiddleware) gin.HandlerFunc {
	return func(c *gin.Context) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
		})

		auth.Authenticate(next).ServeHTTP(c.Writer, c.Request)
	}
}

// GinRequireUser aborts with 401 when no authenticated principal is
// attached to the request. It belongs behind GinAuthenticate.
func GinRequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := PrincipalFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    "INVALID_TOKEN",
				"message": "authentication required",
			})
			return
		}
		c.Next()
	}
}
