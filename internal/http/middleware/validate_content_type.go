package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidateContentType rejects requests whose body is not one of the given
// media types.
func ValidateContentType(allowed ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		contentType := strings.ToLower(ctx.GetHeader("Content-Type"))

		for _, mediaType := range allowed {
			if strings.HasPrefix(contentType, mediaType) {
				ctx.Next()
				return
			}
		}

		ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
			"success": false,
			"error":   "Unsupported content type: " + contentType,
		})
	}
}
