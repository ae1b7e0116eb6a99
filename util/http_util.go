// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/imdes/console/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"success": false, "error": message})
}

// FormatAPIError maps common upstream errors to user-facing messages.
func FormatAPIError(err string) string {
	errorMap := map[string]string{
		"Network request failed": "Unable to connect to the server. Please check your internet connection.",
		"Invalid credentials":    "Invalid username or password. Please try again.",
		"Unauthorized":           "Your session has expired. Please log in again.",
		"Forbidden":              "You do not have permission to perform this action.",
		"Not found":              "The requested resource was not found.",
		"Internal server error":  "A server error occurred. Please try again later.",
	}

	if msg, ok := errorMap[err]; ok {
		return msg
	}
	if err == "" {
		return "An unexpected error occurred."
	}
	return err
}
