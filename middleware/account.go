package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AccountKey is the gin context key holding the authenticated account ID.
const AccountKey = "accountID"

// AccountMiddleware extracts the account identity from the X-Account-ID
// header set by the upstream auth layer. Authentication itself happens
// outside this service; here the ID is an opaque, trusted value.
func AccountMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := c.GetHeader("X-Account-ID")
		if accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing account identity"})
			return
		}
		c.Set(AccountKey, accountID)
		c.Next()
	}
}

// AccountID returns the account ID set by AccountMiddleware.
func AccountID(c *gin.Context) string {
	return c.GetString(AccountKey)
}
