// utils/response.go
package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with a JSON error envelope.
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
