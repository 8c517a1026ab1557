package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
)

// RateLimitMessage is returned with 429 responses
const RateLimitMessage = "Muitas tentativas de cadastro. Tente novamente em instantes."

// KeyLimiter decides per client key whether a request may proceed
type KeyLimiter interface {
	Allow(key string) bool
}

// RateLimit rejects requests once the client IP exhausts its allowance
func RateLimit(limiter KeyLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow(c.ClientIP()) {
			c.Next()
			return
		}

		observability.RateLimited.WithLabelValues(c.FullPath()).Inc()
		c.Header("Retry-After", "60")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": RateLimitMessage})
	}
}
