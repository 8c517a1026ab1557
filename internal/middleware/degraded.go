package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"go.uber.org/zap"
)

// DegradedMessage is returned with 503 responses while writes are refused
const DegradedMessage = "Serviço temporariamente indisponível. Tente novamente em instantes."

// DegradedState reports whether the service is running without its database
type DegradedState interface {
	IsActive() bool
	GetReason() string
}

// RejectWhenDegraded answers 503 instead of running the handler while state is active
func RejectWhenDegraded(state DegradedState) gin.HandlerFunc {
	return func(c *gin.Context) {
		if state == nil || !state.IsActive() {
			c.Next()
			return
		}

		observability.Logger().Warn("request rejected in degraded mode",
			zap.String("path", c.FullPath()),
			zap.String("reason", state.GetReason()))
		c.Header("Retry-After", "10")
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": DegradedMessage})
	}
}
