package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-cadastro/internal/observability"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// HealthCheckFunc reports whether one dependency is reachable
type HealthCheckFunc func(ctx context.Context) error

// HealthCheck godoc
// @Summary Verificar saúde do serviço
// @Description Verifica a conexão com o MongoDB e o Redis
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthCheck(checks map[string]HealthCheckFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
		defer span.End()

		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		health := HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now(),
			Services:  make(map[string]string, len(checks)),
		}

		for name, check := range checks {
			_, checkSpan := utils.TraceExternalService(ctx, name, "ping")
			if err := check(ctx); err != nil {
				utils.RecordErrorInSpan(checkSpan, err, map[string]interface{}{"service.name": name})
				observability.Logger().Warn("health check failed", zap.String("service", name), zap.Error(err))
				health.Status = "unhealthy"
				health.Services[name] = "unhealthy"
			} else {
				health.Services[name] = "healthy"
			}
			checkSpan.End()
		}

		if health.Status != "healthy" {
			c.JSON(http.StatusServiceUnavailable, health)
			return
		}
		c.JSON(http.StatusOK, health)
	}
}
