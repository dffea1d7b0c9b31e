package middleware

import "github.com/gin-gonic/gin"

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. It returns the user ID and whether it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}

	// The auth middleware stores the ID on the request context
	if userIDVal := c.Request.Context().Value(userIDKey); userIDVal != nil {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	return "", false
}
