package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// Identity extracts the caller identity placed on the request by the
// upstream auth layer. Token verification happens there; by the time a
// request reaches this service the X-User-ID header is trusted.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing caller identity"})
			return
		}
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid caller identity"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the caller id stored by Identity. Routes behind the
// middleware can rely on it being present.
func UserID(c *gin.Context) uint64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(uint64)
	return userID
}
