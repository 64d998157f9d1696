package middleware

import (
	"log/slog"
	"net/http"

	"orderpilot/internal/auth"

	"github.com/gin-gonic/gin"
)

// Rejecter is told about every refused webhook call.
type Rejecter interface {
	WebhookRejected()
}

// WebhookAuth checks the voice platform's shared-secret bearer token. A
// rejected request never reaches the handler.
func WebhookAuth(secret string, rejected Rejecter, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.CheckWebhook(c.GetHeader("Authorization"), secret); err != nil {
			if rejected != nil {
				rejected.WebhookRejected()
			}
			if log != nil {
				log.Warn("webhook rejected", "remote", c.ClientIP(), "path", c.FullPath())
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}
